/*
 * units_test.go, part of forcefield-utilities.
 *
 * Copyright 2023 The MoSDeF development team
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be
 * included in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
 * NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS
 * BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN
 * ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestParseNamed(t *testing.T) {
	cases := []struct {
		in     string
		factor float64
		dims   Dimension
	}{
		{"K", 1, Dimension{dimTemperature: 1}},
		{"nm", 1e-9, Dimension{dimLength: 1}},
		{"amu", 1.66053906660e-27, Dimension{dimMass: 1}},
		{"kJ", 1e3, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
		{"elementary_charge", 1.602176634e-19, Dimension{dimCharge: 1}},
		{"degree", math.Pi / 180, Dimension{dimAngle: 1}},
		{"dimensionless", 1, Dimension{}},
	}
	for _, c := range cases {
		u, err := Parse(c.in)
		require.NoError(t, err, "parsing %q", c.in)
		assert.InDelta(t, c.factor, u.Factor(), c.factor*1e-12)
		assert.Equal(t, c.dims, u.Dims())
		assert.Equal(t, c.in, u.String())
	}
}

func TestParseCompound(t *testing.T) {
	u, err := Parse("kJ/mol/nm**2")
	require.NoError(t, err)
	want := Dimension{dimMass: 1, dimTime: -2, dimAmount: -1}
	assert.Equal(t, want, u.Dims())
	assert.InDelta(t, 1e3/1e-18, u.Factor(), 1e3)

	v, err := Parse("kJ/(mol*nm**2)")
	require.NoError(t, err)
	assert.True(t, u.Equal(v), "both spellings should denote the same unit")

	w, err := Parse("amu*angstrom**2/ps**2")
	require.NoError(t, err)
	assert.Equal(t, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}, w.Dims())

	scaled, err := Parse("4.184*J")
	require.NoError(t, err)
	cal := MustParse("cal")
	assert.True(t, scaled.Equal(cal))
}

func TestParseNegativeExponent(t *testing.T) {
	u, err := Parse("nm**-1")
	require.NoError(t, err)
	assert.Equal(t, Dimension{dimLength: -1}, u.Dims())
	assert.InDelta(t, 1e9, u.Factor(), 1)
}

func TestParseUnknownUnit(t *testing.T) {
	_, err := Parse("kb")
	require.Error(t, err)
	var unknown *UnknownUnitError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "kb", unknown.Name)

	// The constants table picks up where the unit table stops.
	u, ok := Constant("kb")
	require.True(t, ok)
	assert.InDelta(t, 1.380649e-23, u.Factor(), 1e-35)
	assert.False(t, u.Dims().IsDimensionless())
}

func TestParseRejectsNonIntegerExponent(t *testing.T) {
	_, err := Parse("nm**0.5")
	require.Error(t, err)
	_, err = Parse("nm + m")
	require.Error(t, err)
	_, err = Parse("")
	require.Error(t, err)
}

func TestConstantIsBareNameOnly(t *testing.T) {
	_, ok := Constant("kb/mol")
	assert.False(t, ok)
	_, ok = Constant("avogadro_constant")
	assert.True(t, ok)
}

func TestQuantityConversion(t *testing.T) {
	q := NewQuantity(1, MustParse("kcal/mol"))
	r, err := q.In(MustParse("kJ/mol"))
	require.NoError(t, err)
	assert.InDelta(t, 4.184, r.Float(), 1e-12)

	deg := NewQuantity(180, MustParse("degree"))
	rad, err := deg.In(MustParse("rad"))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, rad.Float(), 1e-12)

	_, err = q.In(MustParse("nm"))
	var conv *ConversionError
	require.True(t, errors.As(err, &conv))
}

func TestQuantitySeries(t *testing.T) {
	q := NewSeries([]float64{0, 25.1, 0}, MustParse("kJ/mol"))
	assert.True(t, q.IsSeries())
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []float64{0, 25.1, 0}, q.Floats())
	assert.Panics(t, func() { q.Float() })

	r, err := q.In(MustParse("J/mol"))
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox([]float64{0, 25100, 0}, r.Floats(), 1e-12))

	s := NewQuantity(0.3, MustParse("nm"))
	assert.False(t, s.IsSeries())
	assert.Equal(t, 1, s.Len())
	assert.InDelta(t, 0.3, s.Float(), 0)
}

func TestUnitArithmetic(t *testing.T) {
	kj := MustParse("kJ")
	mol := MustParse("mol")
	nm := MustParse("nm")
	built := kj.Div(mol).Div(nm.Pow(2))
	parsed := MustParse("kJ/mol/nm**2")
	assert.True(t, built.Equal(parsed))
	assert.True(t, built.Compatible(parsed))
	assert.False(t, built.Equal(kj))

	assert.Equal(t, Dimensionless, nm.Pow(0))
	inv := nm.Pow(-1)
	assert.InDelta(t, 1e9, inv.Factor(), 1)
}

func TestDimensionString(t *testing.T) {
	assert.Equal(t, "dimensionless", Dimension{}.String())
	d := Dimension{dimMass: 1, dimLength: 2, dimTime: -2}
	assert.Equal(t, "mass*length**2*time**-2", d.String())
}
