/*
 * transform.go, part of forcefield-utilities.
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

package foyer

import (
	"fmt"

	"github.com/mosdef-hub/forcefield-utilities/units"
)

// Names of the potential templates each force block maps to.
const (
	LennardJonesPotential             = "LennardJonesPotential"
	HarmonicBondPotential             = "HarmonicBondPotential"
	HarmonicAnglePotential            = "HarmonicAnglePotential"
	RyckaertBellemansTorsionPotential = "RyckaertBellemansTorsionPotential"
	PeriodicTorsionPotential          = "PeriodicTorsionPotential"
)

// Expressions of the potential templates, written in the sink's
// parameter vocabulary.
const (
	ExprLennardJones      = "4*epsilon*((sigma/r)**12 - (sigma/r)**6)"
	ExprHarmonicBond      = "0.5*k*(r - r_eq)**2"
	ExprHarmonicAngle     = "0.5*k*(theta - theta_eq)**2"
	ExprRyckaertBellemans = "c0 + c1*cos(phi) + c2*cos(phi)**2 + c3*cos(phi)**3 + c4*cos(phi)**4 + c5*cos(phi)**5"
	ExprPeriodicTorsion   = "k*(1 + cos(n*phi - phi_eq))"
)

// TransformationError reports a potential template no parameter
// transformation is defined for.
type TransformationError struct {
	Template string
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("no parameter transformation defined for %s", e.Template)
}

// The fixed units of the dialect.
var (
	unitEnergy   = units.MustParse("kJ/mol")
	unitDistance = units.MustParse("nm")
	unitBondK    = units.MustParse("kJ/(mol*nm**2)")
	unitAngleK   = units.MustParse("kJ/(mol*rad**2)")
	unitAngle    = units.MustParse("rad")
	unitCharge   = units.MustParse("elementary_charge")
	unitMass     = units.MustParse("amu")
)

// paramRule renames one source parameter into the template vocabulary
// and fixes its unit.
type paramRule struct {
	from, to string
	unit     units.Unit
}

var transformations = map[string][]paramRule{
	LennardJonesPotential: {
		{"epsilon", "epsilon", unitEnergy},
		{"sigma", "sigma", unitDistance},
	},
	HarmonicBondPotential: {
		{"k", "k", unitBondK},
		{"length", "r_eq", unitDistance},
	},
	HarmonicAnglePotential: {
		{"k", "k", unitAngleK},
		{"angle", "theta_eq", unitAngle},
	},
	RyckaertBellemansTorsionPotential: {
		{"c0", "c0", unitEnergy},
		{"c1", "c1", unitEnergy},
		{"c2", "c2", unitEnergy},
		{"c3", "c3", unitEnergy},
		{"c4", "c4", unitEnergy},
		{"c5", "c5", unitEnergy},
	},
	PeriodicTorsionPotential: {
		{"k", "k", unitEnergy},
		{"phase", "phi_eq", unitAngle},
		{"periodicity", "n", units.Dimensionless},
	},
}

// Transform attaches the dialect's fixed units to the raw parameters of
// one record and renames them into the template's vocabulary: length
// becomes r_eq, angle becomes theta_eq, phase and periodicity become
// phi_eq and n.
func Transform(template string, params map[string]float64) (map[string]units.Quantity, error) {
	rules, ok := transformations[template]
	if !ok {
		return nil, &TransformationError{Template: template}
	}
	out := make(map[string]units.Quantity, len(rules))
	for _, r := range rules {
		v, ok := params[r.from]
		if !ok {
			return nil, fmt.Errorf("Couldn't transform %s parameters: missing %s", template, r.from)
		}
		out[r.to] = units.NewQuantity(v, r.unit)
	}
	return out, nil
}

// TransformPeriodic is the multi-term form of the periodic-torsion
// transformation. The parallel term series come back as series
// quantities under the template names n, phi_eq and k.
func TransformPeriodic(periodicity, phase, k []float64) map[string]units.Quantity {
	return map[string]units.Quantity{
		"n":      units.NewSeries(periodicity, units.Dimensionless),
		"phi_eq": units.NewSeries(phase, unitAngle),
		"k":      units.NewSeries(k, unitEnergy),
	}
}
