// Package config reads and writes lamp parameter files.
//
// A parameter file is a YAML document. Every union (footprint, extrusion,
// heights, processing methods) is discriminated by a kind key; parameters a
// file leaves out take the stock values of that kind, and a partial base
// overlays the stock base. Documents are checked
// against an embedded JSON schema before they are decoded.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	lamp "github.com/JonasWard/para-slim-shady"
	"github.com/JonasWard/para-slim-shady/extrusion"
	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/profile"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for documents that fail schema validation.
var ErrInvalid = errors.New("invalid lamp config")

//go:embed lamp.schema.json
var schemaJSON []byte

const schemaURL = "lamp.schema.json"

var compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func schema() (*jsonschema.Schema, error) {
	compiled.once.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compiled.err = err
			return
		}
		compiled.schema, compiled.err = c.Compile(schemaURL)
	})
	return compiled.schema, compiled.err
}

// Config is a decoded parameter file. A zero Tolerance selects the default
// enclosure merge distance. A document sets base to null to drop the stock
// base.
type Config struct {
	Method         lamp.RenderMethod
	Tolerance      float64
	Footprint      footprint.Spec
	Extrusion      extrusion.Spec
	Heights        profile.HeightGenerator
	PreProcessing  *profile.PreProcessing
	PostProcessing *profile.PostProcessing
	Base           *lamp.Base
}

// Default returns the stock lamp: a seven story MalculmiusOne tower 150
// high with incrementally growing stories and gothic openings, standing on
// a 20 high base with a cable hole of radius 5.
func Default() Config {
	fs, err := footprint.Defaults(footprint.KindMalculmiusOne)
	if err != nil {
		panic(err)
	}
	es, err := extrusion.Defaults(extrusion.KindGothic)
	if err != nil {
		panic(err)
	}
	return Config{
		Method:    lamp.Normal,
		Footprint: fs,
		Extrusion: es,
		Heights:   profile.NewRelative(7, 150, profile.IncrementalMethod(5, 20)),
		Base:      &lamp.Base{SideHeight: 20, SideInnerRadius: 5},
	}
}

// Parameters returns the build parameters described by c.
func (c Config) Parameters() lamp.Parameters {
	return lamp.Parameters{
		Footprint:      c.Footprint,
		Extrusion:      c.Extrusion,
		Heights:        c.Heights,
		PreProcessing:  c.PreProcessing,
		PostProcessing: c.PostProcessing,
		Base:           c.Base,
	}
}

// Options returns the build options described by c.
func (c Config) Options() []lamp.Option {
	if c.Tolerance > 0 {
		return []lamp.Option{lamp.WithTolerance(c.Tolerance)}
	}
	return nil
}

// Load reads the parameter file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates and decodes a YAML parameter document over Default.
func Parse(raw []byte) (Config, error) {
	if err := Validate(raw); err != nil {
		return Config{}, err
	}
	d := toDocument(Default())
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Config{}, err
	}
	return d.config(), nil
}

// Validate checks a YAML parameter document against the lamp schema.
func Validate(raw []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v == nil {
		// Empty documents select every default.
		return nil
	}
	// The validator wants JSON values; round trip through encoding/json.
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Marshal encodes c as a YAML parameter document that Parse accepts.
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(toDocument(c))
}

// Save writes c to path.
func Save(path string, c Config) error {
	b, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

type document struct {
	Method         lamp.RenderMethod       `yaml:"method,omitempty"`
	Tolerance      float64                 `yaml:"tolerance,omitempty"`
	Footprint      footprintNode           `yaml:"footprint"`
	Extrusion      extrusionNode           `yaml:"extrusion"`
	Heights        heightsNode             `yaml:"heights"`
	PreProcessing  *profile.PreProcessing  `yaml:"preProcessing,omitempty"`
	PostProcessing *profile.PostProcessing `yaml:"postProcessing,omitempty"`
	Base           *lamp.Base              `yaml:"base"`
}

func toDocument(c Config) document {
	return document{
		Method:         c.Method,
		Tolerance:      c.Tolerance,
		Footprint:      footprintNode(c.Footprint),
		Extrusion:      extrusionNode(c.Extrusion),
		Heights:        heightsNode(c.Heights),
		PreProcessing:  c.PreProcessing,
		PostProcessing: c.PostProcessing,
		Base:           c.Base,
	}
}

func (d document) config() Config {
	return Config{
		Method:         d.Method,
		Tolerance:      d.Tolerance,
		Footprint:      footprint.Spec(d.Footprint),
		Extrusion:      extrusion.Spec(d.Extrusion),
		Heights:        profile.HeightGenerator(d.Heights),
		PreProcessing:  d.PreProcessing,
		PostProcessing: d.PostProcessing,
		Base:           d.Base,
	}
}

type kindHead[K any] struct {
	Kind K `yaml:"kind"`
}

// footprintNode flattens the parameter record of a footprint next to its
// kind.
type footprintNode footprint.Spec

func (f *footprintNode) UnmarshalYAML(n *yaml.Node) error {
	var head kindHead[footprint.Kind]
	if err := n.Decode(&head); err != nil {
		return err
	}
	s, err := footprint.Defaults(head.Kind)
	if err != nil {
		return err
	}
	rec, err := record(s)
	if err != nil {
		return err
	}
	if err := n.Decode(rec); err != nil {
		return err
	}
	*f = footprintNode(s)
	return nil
}

func (f footprintNode) MarshalYAML() (any, error) {
	rec, err := record(footprint.Spec(f))
	if err != nil {
		return nil, err
	}
	var n yaml.Node
	if err := n.Encode(rec); err != nil {
		return nil, err
	}
	var head yaml.Node
	if err := head.Encode(kindHead[footprint.Kind]{Kind: f.Kind}); err != nil {
		return nil, err
	}
	n.Content = append(head.Content, n.Content...)
	return &n, nil
}

// record returns the parameter record s.Kind reads.
func record(s footprint.Spec) (any, error) {
	var rec any
	switch s.Kind {
	case footprint.KindSquare:
		if s.Square != nil {
			rec = s.Square
		}
	case footprint.KindSquareGrid, footprint.KindTriangleGrid, footprint.KindHexGrid:
		if s.Grid != nil {
			rec = s.Grid
		}
	case footprint.KindCylinder:
		if s.Cylinder != nil {
			rec = s.Cylinder
		}
	case footprint.KindMalculmiusOne:
		if s.MalculmiusOne != nil {
			rec = s.MalculmiusOne
		}
	default:
		return nil, fmt.Errorf("%w: %v", footprint.ErrUnknownKind, s.Kind)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %v spec has no parameters", footprint.ErrDegenerate, s.Kind)
	}
	return rec, nil
}

// extrusionNode overlays a document's extrusion on the stock profile of
// its kind.
type extrusionNode extrusion.Spec

func (e *extrusionNode) UnmarshalYAML(n *yaml.Node) error {
	var head kindHead[extrusion.Kind]
	if err := n.Decode(&head); err != nil {
		return err
	}
	s, err := extrusion.Defaults(head.Kind)
	if err != nil {
		return err
	}
	if err := n.Decode(&s); err != nil {
		return err
	}
	*e = extrusionNode(s)
	return nil
}

// heightsNode replaces the stock generator outright, since the fields a
// generator reads depend on its kind.
type heightsNode profile.HeightGenerator

func (h *heightsNode) UnmarshalYAML(n *yaml.Node) error {
	var g profile.HeightGenerator
	if err := n.Decode(&g); err != nil {
		return err
	}
	*h = heightsNode(g)
	return nil
}
