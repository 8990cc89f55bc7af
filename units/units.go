/*
 * units.go, part of forcefield-utilities.
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

// Package units implements the small unit system used by force-field
// parameters. A Unit is a conversion factor to SI base units plus a vector
// of dimension exponents, a Quantity is one value, or a series of values,
// tagged with a Unit. Units are parsed from the compound strings found in
// force-field files ("kJ/mol/nm**2", "amu", "K") and never silently
// converted; attaching a unit to a number keeps the number as written.
package units

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Base dimensions tracked for every unit. Charge is a base dimension here
// (as in electrostatic unit systems) so elementary_charge does not drag
// time into Coulomb parameters, and angle is tracked explicitly so radians
// and degrees stay distinguishable from dimensionless numbers.
const (
	dimMass = iota
	dimLength
	dimTime
	dimTemperature
	dimAmount
	dimCharge
	dimAngle
	numDims
)

var dimNames = [numDims]string{"mass", "length", "time", "temperature", "amount", "charge", "angle"}

// Dimension holds the exponent of each base dimension of a unit.
// The zero value is dimensionless.
type Dimension [numDims]int

// String returns a product form such as "mass*length**2*time**-2",
// or "dimensionless" when all exponents are zero.
func (d Dimension) String() string {
	var parts []string
	for i, exp := range d {
		switch exp {
		case 0:
			continue
		case 1:
			parts = append(parts, dimNames[i])
		default:
			parts = append(parts, fmt.Sprintf("%s**%d", dimNames[i], exp))
		}
	}
	if len(parts) == 0 {
		return "dimensionless"
	}
	return strings.Join(parts, "*")
}

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimension{}
}

// Unit is a named multiplicative factor to SI base units together with its
// dimension exponents. Units are value types and safe to copy and compare.
type Unit struct {
	name   string
	factor float64
	dims   Dimension
}

// Dimensionless is the neutral unit, factor one with no dimensions.
var Dimensionless = Unit{name: "dimensionless", factor: 1}

// String returns the spelling the unit was parsed from, or a synthesized
// product form for units built with Mul, Div or Pow.
func (u Unit) String() string {
	if u.name == "" {
		return "dimensionless"
	}
	return u.name
}

// Factor returns the multiplicative factor to SI base units.
func (u Unit) Factor() float64 { return u.factor }

// Dims returns the dimension exponents of the unit.
func (u Unit) Dims() Dimension { return u.dims }

// Compatible reports whether two units measure the same dimension and can
// therefore be converted into each other.
func (u Unit) Compatible(v Unit) bool {
	return u.dims == v.dims
}

// Equal reports whether two units denote the same physical unit, possibly
// under different spellings ("kJ/(mol*nm**2)" and "kJ/mol/nm**2" are equal).
func (u Unit) Equal(v Unit) bool {
	return u.dims == v.dims &&
		scalar.EqualWithinAbsOrRel(u.factor, v.factor, 1e-300, 1e-12)
}

// Mul returns the product unit u*v.
func (u Unit) Mul(v Unit) Unit {
	var d Dimension
	for i := range d {
		d[i] = u.dims[i] + v.dims[i]
	}
	return Unit{
		name:   fmt.Sprintf("%s*%s", u.parenName(), v.parenName()),
		factor: u.factor * v.factor,
		dims:   d,
	}
}

// Div returns the quotient unit u/v.
func (u Unit) Div(v Unit) Unit {
	var d Dimension
	for i := range d {
		d[i] = u.dims[i] - v.dims[i]
	}
	return Unit{
		name:   fmt.Sprintf("%s/%s", u.parenName(), v.parenName()),
		factor: u.factor / v.factor,
		dims:   d,
	}
}

// Pow returns the unit raised to an integer power. Pow(0) is dimensionless
// with factor one.
func (u Unit) Pow(n int) Unit {
	if n == 0 {
		return Dimensionless
	}
	factor := 1.0
	m := n
	if m < 0 {
		m = -m
	}
	for i := 0; i < m; i++ {
		factor *= u.factor
	}
	if n < 0 {
		factor = 1 / factor
	}
	var d Dimension
	for i := range d {
		d[i] = u.dims[i] * n
	}
	return Unit{
		name:   fmt.Sprintf("%s**%d", u.parenName(), n),
		factor: factor,
		dims:   d,
	}
}

// parenName wraps compound spellings in parentheses so synthesized names
// stay unambiguous.
func (u Unit) parenName() string {
	s := u.String()
	if strings.ContainsAny(s, "*/+- ") {
		return "(" + s + ")"
	}
	return s
}

// ConversionError is returned when a Quantity is asked to convert between
// incompatible units.
type ConversionError struct {
	From, To Unit
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("units: can't convert %s (%s) to %s (%s)",
		e.From, e.From.dims, e.To, e.To.dims)
}

// Quantity is one value or a series of values tagged with a Unit. The zero
// value is a dimensionless scalar zero.
type Quantity struct {
	vals   []float64
	unit   Unit
	series bool
}

// NewQuantity returns a scalar quantity. The numeric value is kept exactly
// as given; the unit is only a tag.
func NewQuantity(v float64, u Unit) Quantity {
	return Quantity{vals: []float64{v}, unit: u}
}

// NewSeries returns a multi-valued quantity. The slice is copied.
func NewSeries(vals []float64, u Unit) Quantity {
	c := make([]float64, len(vals))
	copy(c, vals)
	return Quantity{vals: c, unit: u, series: true}
}

// Unit returns the unit tag of the quantity.
func (q Quantity) Unit() Unit { return q.unit }

// IsSeries reports whether the quantity holds a series of values rather
// than one scalar.
func (q Quantity) IsSeries() bool { return q.series }

// Len returns the number of values held, 1 for a scalar.
func (q Quantity) Len() int {
	if q.vals == nil {
		return 1
	}
	return len(q.vals)
}

// Float returns the scalar value. It panics when called on a series, as
// that is always a programming error, not a data error.
func (q Quantity) Float() float64 {
	if q.series {
		panic("units: Float called on a series quantity")
	}
	if q.vals == nil {
		return 0
	}
	return q.vals[0]
}

// Floats returns a copy of the values held, a one-element slice for a
// scalar.
func (q Quantity) Floats() []float64 {
	if q.vals == nil {
		return []float64{0}
	}
	c := make([]float64, len(q.vals))
	copy(c, q.vals)
	return c
}

// In converts the quantity to another unit of the same dimension.
func (q Quantity) In(target Unit) (Quantity, error) {
	if !q.unit.Compatible(target) {
		return Quantity{}, &ConversionError{From: q.unit, To: target}
	}
	vals := q.Floats()
	floats.Scale(q.unit.factor/target.factor, vals)
	return Quantity{vals: vals, unit: target, series: q.series}, nil
}

// String renders the quantity the way force-field files spell it,
// "502416.0 kJ/(mol*nm**2)" or "[0.0 25.1 0.0] kJ/mol".
func (q Quantity) String() string {
	if q.series {
		elems := make([]string, len(q.vals))
		for i, v := range q.vals {
			elems[i] = fmt.Sprintf("%g", v)
		}
		return fmt.Sprintf("[%s] %s", strings.Join(elems, " "), q.unit)
	}
	return fmt.Sprintf("%g %s", q.Float(), q.unit)
}
