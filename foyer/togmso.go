/*
 * togmso.go, part of forcefield-utilities.
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
	"strconv"
	"strings"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
	"github.com/mosdef-hub/forcefield-utilities/units"
)

// ToFF converts the per-force document into the dialect-independent
// force-field model. Atom types merge the AtomTypes chemistry with the
// NonbondedForce parameters by type name; every record gets its
// template's expression, independent variable and fixed units attached.
func (f *ForceField) ToFF() (*ffutils.ForceField, error) {
	ff := ffutils.NewForceField()
	ff.Name = f.Name
	ff.Version = f.Version
	ff.CombiningRule = f.CombiningRule
	ff.Units = map[string]units.Unit{
		ffutils.UnitSlotEnergy:   unitEnergy,
		ffutils.UnitSlotDistance: unitDistance,
		ffutils.UnitSlotMass:     unitMass,
		ffutils.UnitSlotCharge:   unitCharge,
		ffutils.UnitSlotAngle:    unitAngle,
	}
	if f.Nonbonded != nil {
		ff.ScalingFactors[ffutils.ScaleElectrostatics14] = f.Nonbonded.Coulomb14Scale
		ff.ScalingFactors[ffutils.ScaleNonBonded14] = f.Nonbonded.LJ14Scale
	}
	if err := f.atomTypesTo(ff); err != nil {
		return nil, err
	}
	if err := f.bondsTo(ff); err != nil {
		return nil, err
	}
	if err := f.anglesTo(ff); err != nil {
		return nil, err
	}
	if err := f.torsionsTo(ff); err != nil {
		return nil, err
	}
	return ff, nil
}

func (f *ForceField) atomTypesTo(ff *ffutils.ForceField) error {
	nonbonded := map[string]*NBAtom{}
	if f.Nonbonded != nil {
		for _, at := range f.Nonbonded.Atoms {
			nonbonded[at.Type] = at
		}
	}
	for _, t := range f.Types {
		nb, ok := nonbonded[t.Name]
		if !ok {
			return fmt.Errorf("Couldn't convert atom type %s: no NonbondedForce entry", t.Name)
		}
		params, err := Transform(LennardJonesPotential, map[string]float64{
			"sigma":   nb.Sigma,
			"epsilon": nb.Epsilon,
		})
		if err != nil {
			return err
		}
		charge := units.NewQuantity(nb.Charge, unitCharge)
		mass := units.NewQuantity(t.Mass, unitMass)
		ff.AtomTypes[t.Name] = &ffutils.AtomType{
			Potential: ffutils.Potential{
				Name:                 t.Name,
				Expression:           ExprLennardJones,
				IndependentVariables: ffutils.NewStringSet("r"),
				Parameters:           params,
			},
			AtomClass:   t.Class,
			Element:     t.Element,
			Definition:  t.Definition,
			Description: t.Description,
			Doi:         t.Doi,
			Overrides:   overridesSet(t.Overrides),
			Charge:      &charge,
			Mass:        &mass,
		}
	}
	return nil
}

func (f *ForceField) bondsTo(ff *ffutils.ForceField) error {
	for _, b := range f.HarmonicBonds {
		params, err := Transform(HarmonicBondPotential, map[string]float64{
			"k":      b.K,
			"length": b.Length,
		})
		if err != nil {
			return err
		}
		bt := &ffutils.BondType{
			Potential: ffutils.Potential{
				Name:                 HarmonicBondPotential,
				Expression:           ExprHarmonicBond,
				IndependentVariables: ffutils.NewStringSet("r"),
				Parameters:           params,
			},
		}
		if b.ByType {
			bt.MemberTypes = b.Members
		} else {
			bt.MemberClasses = b.Members
		}
		ff.BondTypes[ffutils.MemberKey(b.Members)] = bt
	}
	return nil
}

func (f *ForceField) anglesTo(ff *ffutils.ForceField) error {
	for _, a := range f.HarmonicAngles {
		params, err := Transform(HarmonicAnglePotential, map[string]float64{
			"k":     a.K,
			"angle": a.Angle,
		})
		if err != nil {
			return err
		}
		at := &ffutils.AngleType{
			Potential: ffutils.Potential{
				Name:                 HarmonicAnglePotential,
				Expression:           ExprHarmonicAngle,
				IndependentVariables: ffutils.NewStringSet("theta"),
				Parameters:           params,
			},
		}
		if a.ByType {
			at.MemberTypes = a.Members
		} else {
			at.MemberClasses = a.Members
		}
		ff.AngleTypes[ffutils.MemberKey(a.Members)] = at
	}
	return nil
}

func (f *ForceField) torsionsTo(ff *ffutils.ForceField) error {
	for _, t := range f.RBPropers {
		pot, err := rbPotential(t)
		if err != nil {
			return err
		}
		dt := &ffutils.DihedralType{Potential: pot}
		if t.ByType {
			dt.MemberTypes = t.Members
		} else {
			dt.MemberClasses = t.Members
		}
		ff.DihedralTypes[ffutils.MemberKey(t.Members)] = dt
	}
	for _, t := range f.RBImpropers {
		pot, err := rbPotential(t)
		if err != nil {
			return err
		}
		it := &ffutils.ImproperType{Potential: pot}
		if t.ByType {
			it.MemberTypes = t.Members
		} else {
			it.MemberClasses = t.Members
		}
		ff.ImproperTypes[ffutils.MemberKey(t.Members)] = it
	}
	for _, t := range f.PeriodicPropers {
		dt := &ffutils.DihedralType{Potential: periodicPotential(t)}
		if t.ByType {
			dt.MemberTypes = t.Members
		} else {
			dt.MemberClasses = t.Members
		}
		ff.DihedralTypes[ffutils.MemberKey(t.Members)] = dt
	}
	for _, t := range f.PeriodicImpropers {
		it := &ffutils.ImproperType{Potential: periodicPotential(t)}
		if t.ByType {
			it.MemberTypes = t.Members
		} else {
			it.MemberClasses = t.Members
		}
		ff.ImproperTypes[ffutils.MemberKey(t.Members)] = it
	}
	return nil
}

func rbPotential(t *RBTorsion) (ffutils.Potential, error) {
	raw := make(map[string]float64, len(t.C))
	for i, c := range t.C {
		raw["c"+strconv.Itoa(i)] = c
	}
	params, err := Transform(RyckaertBellemansTorsionPotential, raw)
	if err != nil {
		return ffutils.Potential{}, err
	}
	return ffutils.Potential{
		Name:                 RyckaertBellemansTorsionPotential,
		Expression:           ExprRyckaertBellemans,
		IndependentVariables: ffutils.NewStringSet("phi"),
		Parameters:           params,
	}, nil
}

func periodicPotential(t *PeriodicTorsion) ffutils.Potential {
	return ffutils.Potential{
		Name:                 PeriodicTorsionPotential,
		Expression:           ExprPeriodicTorsion,
		IndependentVariables: ffutils.NewStringSet("phi"),
		Parameters:           TransformPeriodic(t.Periodicity, t.Phase, t.K),
	}
}

// overridesSet parses the comma-separated overrides attribute into a
// set of type names.
func overridesSet(s string) ffutils.StringSet {
	set := ffutils.NewStringSet()
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			set.Add(tok)
		}
	}
	return set
}
