/*
 * tags.go, part of forcefield-utilities.
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
	ffutils "github.com/mosdef-hub/forcefield-utilities"
	"github.com/mosdef-hub/forcefield-utilities/units"
)

// Category names one kind of typed potential. The set is closed; every
// group tag of the dialect maps onto exactly one of these.
type Category string

const (
	CategoryAtomTypes          Category = "AtomTypes"
	CategoryBondTypes          Category = "BondTypes"
	CategoryAngleTypes         Category = "AngleTypes"
	CategoryDihedralTypes      Category = "DihedralTypes"
	CategoryImproperTypes      Category = "ImproperTypes"
	CategoryPairPotentialTypes Category = "PairPotentialTypes"
	CategoryVirtualSiteTypes   Category = "VirtualSiteTypes"
)

// memberCapacity returns how many member slots a record of the category
// carries. Bonds and pair potentials connect two members, angles three,
// torsions four; virtual sites take up to four parents.
func (c Category) memberCapacity() int {
	switch c {
	case CategoryBondTypes, CategoryPairPotentialTypes:
		return 2
	case CategoryAngleTypes:
		return 3
	case CategoryDihedralTypes, CategoryImproperTypes, CategoryVirtualSiteTypes:
		return 4
	}
	return 0
}

// recordTag returns the XML tag of a single record of the category.
func (c Category) recordTag() string {
	switch c {
	case CategoryAtomTypes:
		return "AtomType"
	case CategoryBondTypes:
		return "BondType"
	case CategoryAngleTypes:
		return "AngleType"
	case CategoryDihedralTypes:
		return "DihedralType"
	case CategoryImproperTypes:
		return "ImproperType"
	case CategoryPairPotentialTypes:
		return "PairPotentialType"
	case CategoryVirtualSiteTypes:
		return "VirtualSiteType"
	}
	return string(c)
}

// Parameter is one named parameter of a potential, holding a scalar value
// or a sequence of values exactly as written in the file.
type Parameter struct {
	name   string
	vals   []float64
	series bool
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// IsSeries reports whether the parameter holds a sequence of values.
func (p *Parameter) IsSeries() bool { return p.series }

// Value returns the scalar value. For a series it returns the first
// element.
func (p *Parameter) Value() float64 { return p.vals[0] }

// Values returns the values held. Callers must not modify the slice.
func (p *Parameter) Values() []float64 { return p.vals }

// Parameters is an ordered group of parameters belonging to one record.
type Parameters struct {
	list []*Parameter
}

// All returns the parameters in document order.
func (ps *Parameters) All() []*Parameter { return ps.list }

// Get returns the parameter with the given name.
func (ps *Parameters) Get(name string) (*Parameter, bool) {
	for _, p := range ps.list {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// ParametersUnitDef declares the unit of one parameter of a group's
// potential expression.
type ParametersUnitDef struct {
	Parameter string
	Unit      string
}

// FFMetaData is the global simulation metadata of a force-field document.
type FFMetaData struct {
	Electrostatics14Scale float64
	NonBonded14Scale      float64
	CombiningRule         string
	// Units maps physical slots (energy, distance, mass, charge,
	// temperature, angle, time) to the unit spelling declared for them.
	Units map[string]string
}

func (m *FFMetaData) childTag() string { return "FFMetaData" }

// DefaultUnits resolves every declared default unit, trying the unit
// table first and the physical-constants table second.
func (m *FFMetaData) DefaultUnits() (map[string]units.Unit, error) {
	out := make(map[string]units.Unit, len(m.Units))
	for slot, spelling := range m.Units {
		u, err := resolveUnit(spelling)
		if err != nil {
			return nil, &UnitError{What: "default " + slot + " unit", Unit: spelling, Err: err}
		}
		out[slot] = u
	}
	return out, nil
}

// AtomType is one atom-type record as written in the file: the chemistry
// metadata attributes plus the parameters of the non-bonded expression.
type AtomType struct {
	Name        string
	Element     string
	AtomClass   string
	Definition  string
	Description string
	Doi         string
	Overrides   string // comma-separated, as written
	// Expression and IndependentVariables override the group-level
	// potential for this record when non-empty.
	Expression           string
	IndependentVariables string
	Charge               *float64
	Mass                 *float64
	params               []*Parameters
}

// Parameters returns the record's parameters as unit-tagged quantities.
// With a nil declared-units map the raw values come back tagged
// dimensionless; with a non-nil map every supplied parameter must have a
// declared unit.
func (a *AtomType) Parameters(declared map[string]units.Unit) (map[string]units.Quantity, error) {
	return attachParams("AtomType", a.Name, a.params, declared)
}

// AtomTypes is one AtomTypes group: a shared expression, the unit
// declarations of its parameters, and the atom-type records.
type AtomTypes struct {
	Expression string
	unitDefs   []*ParametersUnitDef
	records    []*AtomType
}

func (g *AtomTypes) childTag() string { return "AtomTypes" }

// UnitDefs returns the parameter unit declarations of the group.
func (g *AtomTypes) UnitDefs() []*ParametersUnitDef { return g.unitDefs }

// Records returns the atom-type records in document order.
func (g *AtomTypes) Records() []*AtomType { return g.records }

// memberSlots holds the member identification of a connection record.
// Each scheme that appears in the source is padded to the category's
// capacity with the wildcard; an absent scheme stays nil.
type memberSlots struct {
	types   []string
	classes []string
}

func full(slots []string) bool {
	if len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		if s == "" {
			return false
		}
	}
	return true
}

// ConnectionType is one typed interaction record: a bond, angle,
// dihedral, improper, pair potential or virtual site. The owning group
// and the record tag fix the category and with it the member capacity.
type ConnectionType struct {
	Name string
	// Identifier is the delimited identifier attribute, verbatim, when
	// the record uses one instead of member slots.
	Identifier string
	// Expression overrides the group-level potential when non-empty.
	Expression string
	category   Category
	slots      memberSlots
	params     []*Parameters
}

// Category returns the interaction category of the record. Inside a
// torsion group this is decided per record, a DihedralTypes group may
// hold ImproperType records and vice versa.
func (t *ConnectionType) Category() Category { return t.category }

// MemberTypes returns the padded by-type member slots, nil when the
// record does not identify members by type.
func (t *ConnectionType) MemberTypes() []string { return t.slots.types }

// MemberClasses returns the padded by-class member slots, nil when the
// record does not identify members by class.
func (t *ConnectionType) MemberClasses() []string { return t.slots.classes }

// identification returns the members the record applies to, preferring a
// fully-populated by-type slot set, then by-class, then the decoded
// delimited identifier.
func (t *ConnectionType) identification() (members []string, byType bool) {
	if full(t.slots.types) {
		return t.slots.types, true
	}
	if full(t.slots.classes) {
		return t.slots.classes, false
	}
	members, _ = splitChain(t.Identifier)
	return members, true
}

// Parameters returns the record's parameters as unit-tagged quantities.
// With a nil declared-units map the raw values come back tagged
// dimensionless; with a non-nil map every supplied parameter must have a
// declared unit.
func (t *ConnectionType) Parameters(declared map[string]units.Unit) (map[string]units.Quantity, error) {
	return attachParams(t.category.recordTag(), t.Name, t.params, declared)
}

// CanonicalIdentifier returns the identifier the record registers and is
// keyed under: the delimited identifier verbatim when supplied, otherwise
// the member slots joined with the key separator.
func (t *ConnectionType) CanonicalIdentifier() string {
	if t.Identifier != "" {
		return t.Identifier
	}
	members, _ := t.identification()
	return ffutils.MemberKey(members)
}

// TypeGroup is one group of connection records (BondTypes, AngleTypes,
// DihedralTypes, ImproperTypes, PairPotentialTypes or VirtualSiteTypes).
type TypeGroup struct {
	Expression string
	category   Category
	unitDefs   []*ParametersUnitDef
	records    []*ConnectionType
}

func (g *TypeGroup) childTag() string { return string(g.category) }

// Category returns the category of the group element itself.
func (g *TypeGroup) Category() Category { return g.category }

// UnitDefs returns the parameter unit declarations of the group.
func (g *TypeGroup) UnitDefs() []*ParametersUnitDef { return g.unitDefs }

// Records returns the connection records in document order.
func (g *TypeGroup) Records() []*ConnectionType { return g.records }

// Child is one top-level block of a force-field document. The set is
// closed: FFMetaData, AtomTypes and the connection-type groups.
type Child interface {
	childTag() string
}

// ForceField is a parsed force-field document. Children keep document
// order, which decides overwrite order when the document is materialized.
type ForceField struct {
	Name     string
	Version  string
	children []Child
	metadata *FFMetaData
}

// Metadata returns the FFMetaData block of the document, nil when absent.
func (f *ForceField) Metadata() *FFMetaData { return f.metadata }

// Children returns the top-level blocks in document order.
func (f *ForceField) Children() []Child { return f.children }

// AtomTypeGroups returns the AtomTypes blocks of the document in order.
func (f *ForceField) AtomTypeGroups() []*AtomTypes {
	var groups []*AtomTypes
	for _, c := range f.children {
		if g, ok := c.(*AtomTypes); ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// Groups returns the connection-type groups loaded from elements of the
// given category, in document order.
func (f *ForceField) Groups(cat Category) []*TypeGroup {
	var groups []*TypeGroup
	for _, c := range f.children {
		if g, ok := c.(*TypeGroup); ok && g.category == cat {
			groups = append(groups, g)
		}
	}
	return groups
}
