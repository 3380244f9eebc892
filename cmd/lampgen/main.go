// Command lampgen builds a lamp from a parameter file and writes its
// geometry to disk.
//
//	lampgen -config lamp.yaml -method Enclosure -o lamp.stl.zst -preview lamp.png
//
// Run with -init to write the stock parameter file and exit.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	lamp "github.com/JonasWard/para-slim-shady"
	"github.com/JonasWard/para-slim-shady/extrusion"
	"github.com/JonasWard/para-slim-shady/internal/config"
	"github.com/JonasWard/para-slim-shady/render"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "YAML parameter file; stock parameters when empty")
		initPath    = flag.String("init", "", "write the stock parameter file to this path and exit")
		method      = flag.String("method", "", "render method, overrides the parameter file")
		stlPath     = flag.String("o", "lamp.stl", "STL output, zstd compressed when ending in "+render.ZstdSuffix+"; empty to skip")
		weld        = flag.Float64("weld", 0, "merge STL vertices closer than this distance; 0 disables")
		previewPath = flag.String("preview", "", "PNG preview output")
		profilePath = flag.String("profile", "", "PNG plot of story elevations")
		outlinePath = flag.String("outline", "", "PNG plot of one window opening")
		verbose     = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *initPath != "" {
		if err := config.Save(*initPath, config.Default()); err != nil {
			log.Error("write parameter file", "error", err)
			os.Exit(1)
		}
		log.Info("parameter file written", "path", *initPath)
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Error("load parameter file", "error", err)
			os.Exit(1)
		}
	}
	if *method != "" {
		m, err := lamp.ParseRenderMethod(*method)
		if err != nil {
			log.Error("parse method", "error", err)
			os.Exit(1)
		}
		cfg.Method = m
	}

	res, err := lamp.Build(cfg.Parameters(), cfg.Method, append(cfg.Options(), lamp.WithLogger(log))...)
	if err != nil {
		var be *lamp.BuildError
		if errors.As(err, &be) {
			log.Debug("build panic", "stack", be.Stack)
		}
		log.Error("build lamp", "error", err)
		os.Exit(1)
	}

	if err := write(log, cfg, res, outputs{
		stl: *stlPath, weld: *weld, preview: *previewPath, profile: *profilePath, outline: *outlinePath,
	}); err != nil {
		log.Error("write output", "error", err)
		os.Exit(1)
	}
}

type outputs struct {
	stl                       string
	weld                      float64
	preview, profile, outline string
}

func write(log *slog.Logger, cfg config.Config, res *lamp.Result, out outputs) error {
	tris := res.Triangles()
	if out.stl != "" {
		if len(tris) == 0 {
			log.Warn("method yields no surface, skipping STL", "method", string(res.Method))
		} else {
			if out.weld > 0 {
				m := render.NewMesh(tris, out.weld)
				log.Debug("mesh welded", "vertices", m.VertexCount(), "triangles", m.TriangleCount())
				tris = m.Triangles()
			}
			if err := render.CreateSTL(out.stl, render.NewMeshRenderer(tris)); err != nil {
				return err
			}
			log.Info("STL written", "path", out.stl, "triangles", len(tris))
		}
	}
	if out.preview != "" {
		view := render.DefaultView()
		view.Wireframe = res.Wireframe
		if err := render.SavePreview(out.preview, tris, res.Lines(), view); err != nil {
			return err
		}
		log.Info("preview written", "path", out.preview)
	}
	if out.profile != "" {
		if err := render.SaveProfilePlot(out.profile, res.Elevations); err != nil {
			return err
		}
		log.Info("profile plot written", "path", out.profile)
	}
	if out.outline != "" {
		ext := cfg.Extrusion
		loops, err := extrusion.Outline(ext, 1, 2, 16)
		if err != nil {
			return err
		}
		if err := render.SaveOutlinePlot(out.outline, ext.Kind.String(), loops); err != nil {
			return err
		}
		log.Info("outline plot written", "path", out.outline)
	}
	return nil
}
