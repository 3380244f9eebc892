package extrusion

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultsValid(t *testing.T) {
	for k := KindSquare; k <= KindNested; k++ {
		s, err := Defaults(k)
		if err != nil {
			t.Fatal(k, err)
		}
		ins, err := s.Insets()
		if err != nil {
			t.Fatal(k, err)
		}
		if ins != (Insets{Top: 0.25, Bottom: 0.25, Sides: 0.25}) {
			t.Errorf("%v: got insets %+v", k, ins)
		}
	}
	if _, err := Defaults(Kind(9)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}

func TestInsetsRejects(t *testing.T) {
	for _, s := range []Spec{
		{Kind: KindArc, Inset: Insets{Top: 0.5}},
		{Kind: KindArc, Inset: Insets{Bottom: -0.1}},
		{Kind: KindArc, Inset: Insets{Sides: math.NaN()}},
	} {
		if _, err := s.Insets(); !errors.Is(err, ErrInvalidInset) {
			t.Errorf("%+v: got %v, want ErrInvalidInset", s.Inset, err)
		}
	}
	if _, err := (Spec{Kind: -1}).Insets(); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}

func TestOutline(t *testing.T) {
	const w, h, tol = 10.0, 20.0, 1e-9
	for k := KindSquare; k <= KindNested; k++ {
		s, _ := Defaults(k)
		loops, err := Outline(s, w, h, 8)
		if err != nil {
			t.Fatal(k, err)
		}
		wantLoops := 1
		if k == KindNested {
			wantLoops = s.DivisionCount + 2
		}
		if len(loops) != wantLoops {
			t.Fatalf("%v: got %d loops, want %d", k, len(loops), wantLoops)
		}
		top := math.Inf(-1)
		for _, loop := range loops {
			if a := loop.SignedArea(); a <= 0 || a > w*h+tol {
				t.Errorf("%v: loop area %v outside (0, %v]", k, a, w*h)
			}
			for _, p := range loop {
				if p.X < -w/2-tol || p.X > w/2+tol || p.Y < -tol || p.Y > h+tol {
					t.Errorf("%v: point %+v outside the wall", k, p)
				}
				top = math.Max(top, p.Y)
			}
		}
		if math.Abs(top-h) > tol {
			t.Errorf("%v: apex at %v, want %v", k, top, h)
		}
	}
}

func TestPointedArchApex(t *testing.T) {
	// An equilateral arch over a unit span rises sqrt(3)/2.
	arch := pointedArch(1, 1, 16)
	if len(arch) != 33 {
		t.Fatalf("got %d points, want 33", len(arch))
	}
	apex := arch[16]
	if math.Abs(apex.X) > 1e-12 || math.Abs(apex.Y-math.Sqrt(3)/2) > 1e-12 {
		t.Errorf("apex %+v", apex)
	}
}

func TestOutlineErrors(t *testing.T) {
	if _, err := Outline(Spec{Kind: Kind(7)}, 1, 1, 4); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
	if _, err := Outline(Spec{}, 0, 1, 4); err == nil {
		t.Error("zero width outline did not fail")
	}
}

func TestSection(t *testing.T) {
	sq, _ := Defaults(KindSquare)
	sec, err := sq.Section(8)
	if err != nil {
		t.Fatal(err)
	}
	if len(sec.Profile) != 2 || sec.Profile[0].X != 1 || sec.Profile[1].X != 1 || sec.Profile[1].Y != 1 {
		t.Errorf("square profile %v, want full width over the whole height", sec.Profile)
	}
	if sec.Insets != sq.Inset {
		t.Errorf("insets %+v, want %+v", sec.Insets, sq.Inset)
	}
	for k := KindArc; k <= KindNested; k++ {
		s, _ := Defaults(k)
		sec, err := s.Section(8)
		if err != nil {
			t.Fatal(k, err)
		}
		p := sec.Profile
		if p[0].Y != 0 || math.Abs(p[len(p)-1].Y-1) > 1e-12 {
			t.Errorf("%v: profile spans %v..%v", k, p[0].Y, p[len(p)-1].Y)
		}
		for i := 1; i < len(p); i++ {
			if p[i].Y <= p[i-1].Y || p[i].X > p[i-1].X+1e-9 || p[i].X > 1+1e-9 {
				t.Errorf("%v: profile not narrowing upwards at %d: %v", k, i, p)
				break
			}
		}
		if p[len(p)-1].X > 0.5 {
			t.Errorf("%v: crown width %v", k, p[len(p)-1].X)
		}
	}
	g, _ := Defaults(KindGothic)
	sec, _ = g.Section(8)
	if w := sec.Profile[len(sec.Profile)-1].X; w > 1e-9 {
		t.Errorf("gothic apex width %v, want 0", w)
	}
	bad := sq
	bad.Inset.Top = 0.5
	if _, err := bad.Section(8); !errors.Is(err, ErrInvalidInset) {
		t.Errorf("bad inset: got %v", err)
	}
}
