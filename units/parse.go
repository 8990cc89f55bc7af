/*
 * parse.go, part of forcefield-utilities.
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
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// namedUnits maps every unit name accepted in force-field files to its
// factor to SI base units. SI values from the 2019 redefinition, CODATA
// 2018 for the rest (DOI:10.1103/RevModPhys.93.025010). Compound strings
// ("kJ/mol/nm**2") are built from these by Parse.
var namedUnits = map[string]Unit{
	// mass
	"kg":      {"kg", 1, Dimension{dimMass: 1}},
	"g":       {"g", 1e-3, Dimension{dimMass: 1}},
	"amu":     {"amu", 1.66053906660e-27, Dimension{dimMass: 1}},
	"dalton":  {"dalton", 1.66053906660e-27, Dimension{dimMass: 1}},
	"Da":      {"Da", 1.66053906660e-27, Dimension{dimMass: 1}},
	// length
	"m":        {"m", 1, Dimension{dimLength: 1}},
	"cm":       {"cm", 1e-2, Dimension{dimLength: 1}},
	"nm":       {"nm", 1e-9, Dimension{dimLength: 1}},
	"angstrom": {"angstrom", 1e-10, Dimension{dimLength: 1}},
	"bohr":     {"bohr", 5.29177210903e-11, Dimension{dimLength: 1}},
	// time
	"s":  {"s", 1, Dimension{dimTime: 1}},
	"ns": {"ns", 1e-9, Dimension{dimTime: 1}},
	"ps": {"ps", 1e-12, Dimension{dimTime: 1}},
	"fs": {"fs", 1e-15, Dimension{dimTime: 1}},
	// temperature
	"K": {"K", 1, Dimension{dimTemperature: 1}},
	// amount
	"mol": {"mol", 1, Dimension{dimAmount: 1}},
	// charge
	"C":                 {"C", 1, Dimension{dimCharge: 1}},
	"coulomb":           {"coulomb", 1, Dimension{dimCharge: 1}},
	"elementary_charge": {"elementary_charge", 1.602176634e-19, Dimension{dimCharge: 1}},
	// angle
	"rad":    {"rad", 1, Dimension{dimAngle: 1}},
	"radian": {"radian", 1, Dimension{dimAngle: 1}},
	"deg":    {"deg", 0.017453292519943295, Dimension{dimAngle: 1}},
	"degree": {"degree", 0.017453292519943295, Dimension{dimAngle: 1}},
	// energy
	"J":       {"J", 1, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	"kJ":      {"kJ", 1e3, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	"cal":     {"cal", 4.184, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	"kcal":    {"kcal", 4184, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	"eV":      {"eV", 1.602176634e-19, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	"hartree": {"hartree", 4.3597447222071e-18, Dimension{dimMass: 1, dimLength: 2, dimTime: -2}},
	// neutral
	"dimensionless": Dimensionless,
	"1":             Dimensionless,
}

// UnknownUnitError is returned when a unit expression names something not
// in the unit table. Callers that want the physical-constants fallback
// check for this with errors.As and then try Constant.
type UnknownUnitError struct {
	Name string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("units: unknown unit %q", e.Name)
}

// Named returns the unit with the given name from the unit table.
func Named(name string) (Unit, bool) {
	u, ok := namedUnits[name]
	return u, ok
}

// Parse evaluates a unit expression such as "kJ/mol/nm**2", "K",
// "amu*angstrom**2/ps**2" or "4.184*J" against the unit table. Names not
// in the table yield an UnknownUnitError. Exponents must be integers.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unit{}, fmt.Errorf("units: empty unit string")
	}
	if u, ok := namedUnits[s]; ok {
		return u, nil
	}
	tree, err := parser.Parse(s)
	if err != nil {
		return Unit{}, fmt.Errorf("units: can't parse unit %q: %w", s, err)
	}
	u, err := evalUnit(tree.Node)
	if err != nil {
		return Unit{}, err
	}
	u.name = s
	return u, nil
}

// MustParse is Parse for unit spellings known at compile time. It panics
// on error.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// evalUnit folds a parsed unit expression into a Unit. Only the arithmetic
// subset of the expression grammar is meaningful for units; anything else
// is rejected.
func evalUnit(node ast.Node) (Unit, error) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		u, ok := namedUnits[n.Value]
		if !ok {
			return Unit{}, &UnknownUnitError{Name: n.Value}
		}
		return u, nil
	case *ast.IntegerNode:
		return Unit{name: fmt.Sprintf("%d", n.Value), factor: float64(n.Value)}, nil
	case *ast.FloatNode:
		return Unit{name: fmt.Sprintf("%g", n.Value), factor: n.Value}, nil
	case *ast.UnaryNode:
		u, err := evalUnit(n.Node)
		if err != nil {
			return Unit{}, err
		}
		switch n.Operator {
		case "-":
			u.factor = -u.factor
			return u, nil
		case "+":
			return u, nil
		}
		return Unit{}, fmt.Errorf("units: operator %q not allowed in a unit", n.Operator)
	case *ast.BinaryNode:
		left, err := evalUnit(n.Left)
		if err != nil {
			return Unit{}, err
		}
		switch n.Operator {
		case "*", "/":
			right, err := evalUnit(n.Right)
			if err != nil {
				return Unit{}, err
			}
			if n.Operator == "*" {
				return left.Mul(right), nil
			}
			return left.Div(right), nil
		case "**", "^":
			exp, ok := n.Right.(*ast.IntegerNode)
			if !ok {
				if neg, isNeg := n.Right.(*ast.UnaryNode); isNeg && neg.Operator == "-" {
					if inner, innerOK := neg.Node.(*ast.IntegerNode); innerOK {
						return left.Pow(-inner.Value), nil
					}
				}
				return Unit{}, fmt.Errorf("units: non-integer exponent in unit expression")
			}
			return left.Pow(exp.Value), nil
		}
		return Unit{}, fmt.Errorf("units: operator %q not allowed in a unit", n.Operator)
	default:
		return Unit{}, fmt.Errorf("units: unsupported construct %T in unit expression", node)
	}
}
