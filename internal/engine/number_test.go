package engine_test

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/keycalc/internal/engine"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{7, "7"},
		{-1.5, "-1.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-2.5e-8, "-2.5e-8"},
		{123.456, "123.456"},
		{math.Pi, "3.141592653589793"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(engine.FormatNumber(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"0.", 0},
		{"12.5", 12.5},
		{".5", 0.5},
		{"-3", -3},
		{"1e+21", 1e21},
		{"1e+21.", 1e21},
		{"2.5e-8", 2.5e-8},
		{"12abc", 12},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"Infinity7", math.Inf(1)},
		{"1e999", math.Inf(1)},
	} {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(engine.ParseNumber(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestParseNumber_NoPrefixIsNaN(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, in := range []string{"", "NaN", "NaN5", "-", ".", "abc"} {
		g.Expect(math.IsNaN(engine.ParseNumber(in))).To(BeTrue(), "input %q", in)
	}
}

// TestFormatParse_RoundTrip_Property proves every float64 survives being
// shown on the display and read back.
func TestFormatParse_RoundTrip_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Float64().Draw(rt, "v")
		got := engine.ParseNumber(engine.FormatNumber(v))

		if math.IsNaN(v) {
			if !math.IsNaN(got) {
				rt.Fatalf("NaN came back as %v", got)
			}

			return
		}

		if got != v {
			rt.Fatalf("%v formatted as %q parsed back as %v", v, engine.FormatNumber(v), got)
		}
	})
}

func TestClassOf(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(engine.ClassOf(1)).To(Equal(engine.Finite))
	g.Expect(engine.ClassOf(math.Inf(-1))).To(Equal(engine.Infinite))
	g.Expect(engine.ClassOf(math.NaN())).To(Equal(engine.NotANumber))
	g.Expect(engine.NotANumber.String()).To(Equal("nan"))
}

func TestPower_MatchesMathPowEdgeCases(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(math.IsNaN(engine.Power.Apply(1, math.NaN()))).To(BeTrue())
	g.Expect(math.IsNaN(engine.Power.Apply(-1, math.Inf(1)))).To(BeTrue())
	g.Expect(math.IsNaN(engine.Power.Apply(1, math.Inf(-1)))).To(BeTrue())
	g.Expect(engine.Power.Apply(math.NaN(), 0)).To(Equal(1.0))
	g.Expect(math.IsNaN(engine.Root.Apply(-8, 3))).To(BeTrue())
}
