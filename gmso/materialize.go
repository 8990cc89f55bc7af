/*
 * materialize.go, part of forcefield-utilities.
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

package gmso

import (
	"strings"
	"unicode"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
	"github.com/mosdef-hub/forcefield-utilities/sym"
	"github.com/mosdef-hub/forcefield-utilities/units"
)

// resolveUnit resolves one unit spelling, trying the unit table first and
// falling back to the physical-constants table for bare names like "kb".
func resolveUnit(spelling string) (units.Unit, error) {
	u, err := units.Parse(spelling)
	if err == nil {
		return u, nil
	}
	if c, ok := units.Constant(spelling); ok {
		return c, nil
	}
	return units.Unit{}, err
}

// resolveUnitDefs resolves every ParametersUnitDef of a group into a
// parameter-to-unit mapping. A later declaration for the same parameter
// replaces an earlier one.
func resolveUnitDefs(defs []*ParametersUnitDef) (map[string]units.Unit, error) {
	out := make(map[string]units.Unit, len(defs))
	for _, def := range defs {
		u, err := resolveUnit(def.Unit)
		if err != nil {
			return nil, &UnitError{What: "parameter " + def.Parameter, Unit: def.Unit, Err: err}
		}
		out[def.Parameter] = u
	}
	return out, nil
}

// attachParams turns the raw parameters of a record into unit-tagged
// quantities using the group's declared units. The record's first
// parameter group is used; a record without one has no parameters. A
// supplied parameter without a declared unit is an error. A nil declared
// map asks for the raw values, which come back tagged dimensionless.
func attachParams(tag, name string, groups []*Parameters, declared map[string]units.Unit) (map[string]units.Quantity, error) {
	if len(groups) == 0 {
		return map[string]units.Quantity{}, nil
	}
	ps := groups[0]
	out := make(map[string]units.Quantity, len(ps.list))
	for _, p := range ps.list {
		u, ok := declared[p.name]
		if !ok {
			if declared != nil {
				return nil, &UnitError{What: "parameter " + p.name + " of " + tag + " " + name}
			}
			u = units.Dimensionless
		}
		if p.series {
			out[p.name] = units.NewSeries(p.vals, u)
		} else {
			out[p.name] = units.NewQuantity(p.vals[0], u)
		}
	}
	return out, nil
}

// independentVars computes the independent variables of an expression
// given its parameters, or parses an explicit comma- or space-separated
// declaration when the record carries one.
func independentVars(expression, explicit string, params map[string]units.Quantity) (ffutils.StringSet, error) {
	if explicit != "" {
		return ffutils.NewStringSet(splitNameList(explicit)...), nil
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	indep, err := sym.IndependentVars(expression, names)
	if err != nil {
		return nil, &ExpressionError{Expression: expression, Err: err}
	}
	return ffutils.NewStringSet(indep...), nil
}

func splitNameList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ambientUnit returns the default unit declared for a physical slot,
// dimensionless when the document declares none.
func ambientUnit(defaults map[string]units.Unit, slot string) units.Unit {
	if u, ok := defaults[slot]; ok {
		return u
	}
	return units.Dimensionless
}

// potentials is the materialized output of one group: per-category tables
// keyed by canonical identifier. A torsion group can fill both the
// dihedral and the improper table.
type potentials struct {
	atomTypes          map[string]*ffutils.AtomType
	bondTypes          map[string]*ffutils.BondType
	angleTypes         map[string]*ffutils.AngleType
	dihedralTypes      map[string]*ffutils.DihedralType
	improperTypes      map[string]*ffutils.ImproperType
	pairPotentialTypes map[string]*ffutils.PairPotentialType
	virtualSiteTypes   map[string]*ffutils.VirtualSiteType
}

func newPotentials() *potentials {
	return &potentials{
		atomTypes:          map[string]*ffutils.AtomType{},
		bondTypes:          map[string]*ffutils.BondType{},
		angleTypes:         map[string]*ffutils.AngleType{},
		dihedralTypes:      map[string]*ffutils.DihedralType{},
		improperTypes:      map[string]*ffutils.ImproperType{},
		pairPotentialTypes: map[string]*ffutils.PairPotentialType{},
		virtualSiteTypes:   map[string]*ffutils.VirtualSiteType{},
	}
}

// applyTo merges the tables into a force field. Existing entries under
// the same key are overwritten, so document order decides who wins.
func (p *potentials) applyTo(ff *ffutils.ForceField) {
	for k, v := range p.atomTypes {
		ff.AtomTypes[k] = v
	}
	for k, v := range p.bondTypes {
		ff.BondTypes[k] = v
	}
	for k, v := range p.angleTypes {
		ff.AngleTypes[k] = v
	}
	for k, v := range p.dihedralTypes {
		ff.DihedralTypes[k] = v
	}
	for k, v := range p.improperTypes {
		ff.ImproperTypes[k] = v
	}
	for k, v := range p.pairPotentialTypes {
		ff.PairPotentialTypes[k] = v
	}
	for k, v := range p.virtualSiteTypes {
		ff.VirtualSiteTypes[k] = v
	}
}

// potentialSource is a document child that materializes typed potentials.
type potentialSource interface {
	Child
	toPotentials(defaults map[string]units.Unit) (*potentials, error)
}

func (g *AtomTypes) toPotentials(defaults map[string]units.Unit) (*potentials, error) {
	declared, err := resolveUnitDefs(g.unitDefs)
	if err != nil {
		return nil, err
	}
	out := newPotentials()
	for _, rec := range g.records {
		expr := rec.Expression
		if expr == "" {
			expr = g.Expression
		}
		if expr == "" {
			return nil, &MalformedRecordError{Tag: "AtomType", Name: rec.Name,
				Reason: "no potential expression on the record or its group"}
		}
		params, err := rec.Parameters(declared)
		if err != nil {
			return nil, err
		}
		indep, err := independentVars(expr, rec.IndependentVariables, params)
		if err != nil {
			return nil, err
		}
		at := &ffutils.AtomType{
			Potential: ffutils.Potential{
				Name:                 rec.Name,
				Expression:           expr,
				IndependentVariables: indep,
				Parameters:           params,
			},
			AtomClass:   rec.AtomClass,
			Element:     rec.Element,
			Definition:  rec.Definition,
			Description: rec.Description,
			Doi:         rec.Doi,
			Overrides:   ffutils.NewStringSet(splitNameList(rec.Overrides)...),
		}
		if rec.Charge != nil {
			q := units.NewQuantity(*rec.Charge, ambientUnit(defaults, ffutils.UnitSlotCharge))
			at.Charge = &q
		}
		if rec.Mass != nil {
			m := units.NewQuantity(*rec.Mass, ambientUnit(defaults, ffutils.UnitSlotMass))
			at.Mass = &m
		}
		out.atomTypes[rec.Name] = at
	}
	return out, nil
}

func (g *TypeGroup) toPotentials(defaults map[string]units.Unit) (*potentials, error) {
	declared, err := resolveUnitDefs(g.unitDefs)
	if err != nil {
		return nil, err
	}
	out := newPotentials()
	for _, rec := range g.records {
		tag := rec.category.recordTag()
		expr := rec.Expression
		if expr == "" {
			expr = g.Expression
		}
		if expr == "" {
			return nil, &MalformedRecordError{Tag: tag, Name: rec.Name,
				Reason: "no potential expression on the record or its group"}
		}
		params, err := rec.Parameters(declared)
		if err != nil {
			return nil, err
		}
		indep, err := independentVars(expr, "", params)
		if err != nil {
			return nil, err
		}
		members, byType := rec.identification()
		var memberTypes, memberClasses []string
		if byType {
			memberTypes = members
		} else {
			memberClasses = members
		}
		pot := ffutils.Potential{
			Name:                 rec.Name,
			Expression:           expr,
			IndependentVariables: indep,
			Parameters:           params,
		}
		key := rec.CanonicalIdentifier()
		switch rec.category {
		case CategoryBondTypes:
			out.bondTypes[key] = &ffutils.BondType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		case CategoryAngleTypes:
			out.angleTypes[key] = &ffutils.AngleType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		case CategoryDihedralTypes:
			out.dihedralTypes[key] = &ffutils.DihedralType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		case CategoryImproperTypes:
			out.improperTypes[key] = &ffutils.ImproperType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		case CategoryPairPotentialTypes:
			out.pairPotentialTypes[key] = &ffutils.PairPotentialType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		case CategoryVirtualSiteTypes:
			out.virtualSiteTypes[key] = &ffutils.VirtualSiteType{Potential: pot,
				MemberTypes: memberTypes, MemberClasses: memberClasses}
		}
	}
	return out, nil
}

// ToFF materializes the document into a dialect-independent force field.
// Groups are materialized in document order and merged per category with
// later definitions overwriting earlier ones.
func (f *ForceField) ToFF() (*ffutils.ForceField, error) {
	if f.metadata == nil {
		return nil, ErrMissingMetadata
	}
	defaults, err := f.metadata.DefaultUnits()
	if err != nil {
		return nil, err
	}
	ff := ffutils.NewForceField()
	ff.Name = f.Name
	ff.Version = f.Version
	ff.CombiningRule = f.metadata.CombiningRule
	ff.ScalingFactors[ffutils.ScaleElectrostatics14] = f.metadata.Electrostatics14Scale
	ff.ScalingFactors[ffutils.ScaleNonBonded14] = f.metadata.NonBonded14Scale
	ff.Units = defaults
	for _, child := range f.children {
		src, ok := child.(potentialSource)
		if !ok {
			continue
		}
		p, err := src.toPotentials(defaults)
		if err != nil {
			return nil, err
		}
		p.applyTo(ff)
	}
	return ff, nil
}
