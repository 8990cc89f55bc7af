/*
 * forcefield.go, part of forcefield-utilities.
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

package ffutils

import (
	"fmt"

	"github.com/mosdef-hub/forcefield-utilities/units"
)

// Keys of ForceField.ScalingFactors. These are the 1-4 interaction
// scalings every biomolecular force field defines.
const (
	ScaleElectrostatics14 = "electrostatics14Scale"
	ScaleNonBonded14      = "nonBonded14Scale"
)

// Keys of ForceField.Units, the physical slots a force field declares
// default units for.
const (
	UnitSlotEnergy      = "energy"
	UnitSlotDistance    = "distance"
	UnitSlotMass        = "mass"
	UnitSlotCharge      = "charge"
	UnitSlotTemperature = "temperature"
	UnitSlotAngle       = "angle"
	UnitSlotTime        = "time"
)

// ForceField is the materialized force field: every typed potential of
// the source file keyed by its canonical identifier, plus the global
// simulation metadata. Identifiers of multi-member types are the member
// names joined with "~"; atom types and virtual sites are keyed by name.
type ForceField struct {
	Name    string
	Version string
	// CombiningRule names the mixing rule for non-bonded cross
	// interactions, "geometric" or "lorentz".
	CombiningRule  string
	ScalingFactors map[string]float64
	// Units holds the default unit of each physical slot declared by the
	// source file (energy, distance, mass, charge, temperature, angle,
	// time).
	Units map[string]units.Unit

	AtomTypes          map[string]*AtomType
	BondTypes          map[string]*BondType
	AngleTypes         map[string]*AngleType
	DihedralTypes      map[string]*DihedralType
	ImproperTypes      map[string]*ImproperType
	PairPotentialTypes map[string]*PairPotentialType
	VirtualSiteTypes   map[string]*VirtualSiteType
}

// NewForceField returns an empty force field with every table ready for
// use and the customary defaults for the global metadata.
func NewForceField() *ForceField {
	return &ForceField{
		Name:          "ForceField",
		Version:       "1.0.0",
		CombiningRule: "geometric",
		ScalingFactors: map[string]float64{
			ScaleElectrostatics14: 0.5,
			ScaleNonBonded14:      0.5,
		},
		Units:              map[string]units.Unit{},
		AtomTypes:          map[string]*AtomType{},
		BondTypes:          map[string]*BondType{},
		AngleTypes:         map[string]*AngleType{},
		DihedralTypes:      map[string]*DihedralType{},
		ImproperTypes:      map[string]*ImproperType{},
		PairPotentialTypes: map[string]*PairPotentialType{},
		VirtualSiteTypes:   map[string]*VirtualSiteType{},
	}
}

// TypeCount returns the total number of typed potentials held.
func (ff *ForceField) TypeCount() int {
	return len(ff.AtomTypes) + len(ff.BondTypes) + len(ff.AngleTypes) +
		len(ff.DihedralTypes) + len(ff.ImproperTypes) +
		len(ff.PairPotentialTypes) + len(ff.VirtualSiteTypes)
}

func (ff *ForceField) String() string {
	return fmt.Sprintf("ForceField %s (v %s): %d atom, %d bond, %d angle, %d dihedral, %d improper, %d pair, %d virtual-site types",
		ff.Name, ff.Version, len(ff.AtomTypes), len(ff.BondTypes),
		len(ff.AngleTypes), len(ff.DihedralTypes), len(ff.ImproperTypes),
		len(ff.PairPotentialTypes), len(ff.VirtualSiteTypes))
}
