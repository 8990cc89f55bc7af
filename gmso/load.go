/*
 * load.go, part of forcefield-utilities.
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
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
)

// ReadFile parses the GMSO force-field file at the given path.
func ReadFile(path string) (*ForceField, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("Couldn't read force-field file %s: %w", path, err)
	}
	return FromElement(doc.Root())
}

// Read parses a GMSO force-field document from a reader.
func Read(r io.Reader) (*ForceField, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("Couldn't read force-field document: %w", err)
	}
	return FromElement(doc.Root())
}

// childLoader parses one top-level block of a force-field document.
type childLoader func(el *etree.Element) (Child, error)

// childLoaders dispatches top-level tags to their loaders. The table is
// the complete set of blocks the dialect defines; anything else is
// skipped with a warning.
var childLoaders = map[string]childLoader{
	"FFMetaData":         loadMetadata,
	"AtomTypes":          loadAtomTypes,
	"BondTypes":          typeGroupLoader(CategoryBondTypes),
	"AngleTypes":         typeGroupLoader(CategoryAngleTypes),
	"DihedralTypes":      typeGroupLoader(CategoryDihedralTypes),
	"ImproperTypes":      typeGroupLoader(CategoryImproperTypes),
	"PairPotentialTypes": typeGroupLoader(CategoryPairPotentialTypes),
	"VirtualSiteTypes":   typeGroupLoader(CategoryVirtualSiteTypes),
}

// recordCategories maps, per group category, the record tags a group
// accepts to the category the record belongs to. The torsion groups
// accept each other's records; a DihedralTypes block may carry
// ImproperType entries, which still materialize as impropers.
var recordCategories = map[Category]map[string]Category{
	CategoryBondTypes:  {"BondType": CategoryBondTypes},
	CategoryAngleTypes: {"AngleType": CategoryAngleTypes},
	CategoryDihedralTypes: {
		"DihedralType": CategoryDihedralTypes,
		"ImproperType": CategoryImproperTypes,
	},
	CategoryImproperTypes: {
		"ImproperType": CategoryImproperTypes,
		"DihedralType": CategoryDihedralTypes,
	},
	CategoryPairPotentialTypes: {"PairPotentialType": CategoryPairPotentialTypes},
	CategoryVirtualSiteTypes:   {"VirtualSiteType": CategoryVirtualSiteTypes},
}

// FromElement builds a force-field document from a parsed ForceField
// element.
func FromElement(root *etree.Element) (*ForceField, error) {
	if root == nil {
		return nil, fmt.Errorf("gmso: document has no root element")
	}
	if root.Tag != "ForceField" {
		return nil, fmt.Errorf("gmso: not a force-field document: root element is %q", root.Tag)
	}
	f := &ForceField{
		Name:    root.SelectAttrValue("name", "ForceField"),
		Version: root.SelectAttrValue("version", "1.0.0"),
	}
	for _, el := range root.ChildElements() {
		loader, ok := childLoaders[el.Tag]
		if !ok {
			slog.Warn("Skipping unrecognized force-field block", "tag", el.Tag)
			continue
		}
		child, err := loader(el)
		if err != nil {
			return nil, err
		}
		if meta, isMeta := child.(*FFMetaData); isMeta {
			if f.metadata != nil {
				return nil, fmt.Errorf("gmso: document has more than one FFMetaData block")
			}
			f.metadata = meta
		}
		f.children = append(f.children, child)
	}
	return f, nil
}

func loadMetadata(el *etree.Element) (Child, error) {
	meta := &FFMetaData{
		Electrostatics14Scale: 0.5,
		NonBonded14Scale:      0.5,
		CombiningRule:         "geometric",
		Units:                 map[string]string{},
	}
	for _, key := range []string{"electrostatics14Scale", "nonBonded14Scale"} {
		a := el.SelectAttr(key)
		if a == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("Couldn't parse %s attribute of FFMetaData: %w", key, err)
		}
		if key == "electrostatics14Scale" {
			meta.Electrostatics14Scale = v
		} else {
			meta.NonBonded14Scale = v
		}
	}
	if rule := el.SelectAttrValue("combiningRule", ""); rule != "" {
		meta.CombiningRule = rule
	}
	// A missing Units block leaves the map empty; quantities then attach
	// as dimensionless.
	if unitsEl := el.SelectElement("Units"); unitsEl != nil {
		for _, a := range unitsEl.Attr {
			meta.Units[a.Key] = a.Value
		}
	}
	return meta, nil
}

func loadAtomTypes(el *etree.Element) (Child, error) {
	g := &AtomTypes{Expression: el.SelectAttrValue("expression", "")}
	reg := newRegistry()
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "ParametersUnitDef":
			def, err := loadUnitDef(c)
			if err != nil {
				return nil, err
			}
			g.unitDefs = append(g.unitDefs, def)
		case "AtomType":
			at, err := loadAtomType(c)
			if err != nil {
				return nil, err
			}
			if err := reg.register(CategoryAtomTypes, at.Name); err != nil {
				return nil, err
			}
			g.records = append(g.records, at)
		default:
			slog.Debug("Skipping unrecognized element in AtomTypes", "tag", c.Tag)
		}
	}
	return g, nil
}

// typeGroupLoader builds the loader of one connection-type group. Each
// group owns its own identifier registry, so a later group of the same
// category may redefine an interaction; the later definition wins at
// materialization.
func typeGroupLoader(cat Category) childLoader {
	accepted := recordCategories[cat]
	return func(el *etree.Element) (Child, error) {
		g := &TypeGroup{category: cat, Expression: el.SelectAttrValue("expression", "")}
		reg := newRegistry()
		for _, c := range el.ChildElements() {
			if c.Tag == "ParametersUnitDef" {
				def, err := loadUnitDef(c)
				if err != nil {
					return nil, err
				}
				g.unitDefs = append(g.unitDefs, def)
				continue
			}
			recCat, ok := accepted[c.Tag]
			if !ok {
				slog.Debug("Skipping unrecognized element", "tag", c.Tag, "group", string(cat))
				continue
			}
			rec, err := loadConnectionType(c, recCat)
			if err != nil {
				return nil, err
			}
			if err := reg.register(recCat, rec.CanonicalIdentifier()); err != nil {
				return nil, err
			}
			g.records = append(g.records, rec)
		}
		return g, nil
	}
}

func loadUnitDef(el *etree.Element) (*ParametersUnitDef, error) {
	def := &ParametersUnitDef{
		Parameter: el.SelectAttrValue("parameter", ""),
		Unit:      el.SelectAttrValue("unit", ""),
	}
	if def.Parameter == "" || def.Unit == "" {
		return nil, &MalformedRecordError{
			Tag:    "ParametersUnitDef",
			Name:   def.Parameter,
			Reason: "both parameter and unit attributes are required",
		}
	}
	return def, nil
}

func loadAtomType(el *etree.Element) (*AtomType, error) {
	at := &AtomType{
		Name:                 el.SelectAttrValue("name", ""),
		Element:              el.SelectAttrValue("element", ""),
		AtomClass:            el.SelectAttrValue("atomclass", ""),
		Definition:           el.SelectAttrValue("definition", ""),
		Description:          el.SelectAttrValue("description", ""),
		Doi:                  el.SelectAttrValue("doi", ""),
		Overrides:            el.SelectAttrValue("overrides", ""),
		Expression:           el.SelectAttrValue("expression", ""),
		IndependentVariables: el.SelectAttrValue("independent_variables", ""),
	}
	if at.Name == "" {
		return nil, &MalformedRecordError{Tag: "AtomType", Reason: "missing name attribute"}
	}
	for _, key := range []string{"charge", "mass"} {
		a := el.SelectAttr(key)
		if a == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return nil, &MalformedRecordError{
				Tag:    "AtomType",
				Name:   at.Name,
				Reason: fmt.Sprintf("bad %s %q", key, a.Value),
			}
		}
		if key == "charge" {
			at.Charge = &v
		} else {
			at.Mass = &v
		}
	}
	for _, c := range el.ChildElements() {
		if c.Tag != "Parameters" {
			slog.Debug("Skipping unrecognized element in AtomType", "tag", c.Tag)
			continue
		}
		ps, err := loadParameters(c)
		if err != nil {
			return nil, err
		}
		at.params = append(at.params, ps)
	}
	return at, nil
}

func loadConnectionType(el *etree.Element, cat Category) (*ConnectionType, error) {
	t := &ConnectionType{
		Name:       el.SelectAttrValue("name", ""),
		Identifier: el.SelectAttrValue("identifier", ""),
		Expression: el.SelectAttrValue("expression", ""),
		category:   cat,
	}
	// Slot attributes and the delimited identifier are alternative ways
	// to name the members; padding applies to slot form only.
	if t.Identifier == "" {
		capacity := cat.memberCapacity()
		if types, ok := slotAttrs(el, "type", capacity); ok {
			t.slots.types = types
		}
		if classes, ok := slotAttrs(el, "class", capacity); ok {
			t.slots.classes = classes
		}
		if t.slots.types == nil && t.slots.classes == nil {
			t.slots.types = wildcardSlots(capacity)
		}
	}
	for _, c := range el.ChildElements() {
		if c.Tag != "Parameters" {
			slog.Debug("Skipping unrecognized element", "tag", c.Tag, "record", cat.recordTag())
			continue
		}
		ps, err := loadParameters(c)
		if err != nil {
			return nil, err
		}
		t.params = append(t.params, ps)
	}
	return t, nil
}

// slotAttrs reads the member-slot attribute family prefix1..prefixN,
// padding empty and missing slots with the wildcard. ok is false when no
// slot of the family appears at all.
func slotAttrs(el *etree.Element, prefix string, capacity int) (slots []string, ok bool) {
	slots = make([]string, capacity)
	for i := 0; i < capacity; i++ {
		v := el.SelectAttrValue(fmt.Sprintf("%s%d", prefix, i+1), "")
		if v != "" {
			ok = true
			slots[i] = v
		} else {
			slots[i] = ffutils.Wildcard
		}
	}
	return slots, ok
}

func wildcardSlots(capacity int) []string {
	slots := make([]string, capacity)
	for i := range slots {
		slots[i] = ffutils.Wildcard
	}
	return slots
}

func loadParameters(el *etree.Element) (*Parameters, error) {
	ps := &Parameters{}
	attrs, err := attrParameters(el)
	if err != nil {
		return nil, err
	}
	ps.list = append(ps.list, attrs...)
	for _, c := range el.ChildElements() {
		if c.Tag != "Parameter" {
			slog.Debug("Skipping unrecognized element in Parameters", "tag", c.Tag)
			continue
		}
		p, err := loadParameter(c)
		if err != nil {
			return nil, err
		}
		ps.list = append(ps.list, p)
	}
	// A parameter may be declared once, as an indexed family or as a
	// Parameter child, never both.
	seen := map[string]bool{}
	for _, p := range ps.list {
		if seen[p.name] {
			return nil, &MalformedRecordError{
				Tag:    "Parameters",
				Name:   p.name,
				Reason: "parameter declared more than once",
			}
		}
		seen[p.name] = true
	}
	return ps, nil
}

func loadParameter(el *etree.Element) (*Parameter, error) {
	name := el.SelectAttrValue("name", "")
	if name == "" {
		return nil, &MalformedRecordError{Tag: "Parameter", Reason: "missing name attribute"}
	}
	if a := el.SelectAttr("value"); a != nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return nil, &MalformedRecordError{
				Tag:    "Parameter",
				Name:   name,
				Reason: fmt.Sprintf("bad value %q", a.Value),
			}
		}
		return &Parameter{name: name, vals: []float64{v}}, nil
	}
	var vals []float64
	for _, c := range el.ChildElements() {
		if c.Tag != "Value" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text()), 64)
		if err != nil {
			return nil, &MalformedRecordError{
				Tag:    "Parameter",
				Name:   name,
				Reason: fmt.Sprintf("bad value %q in sequence", c.Text()),
			}
		}
		vals = append(vals, v)
	}
	if vals == nil {
		return nil, &MalformedRecordError{
			Tag:    "Parameter",
			Name:   name,
			Reason: "neither a value nor a sequence of values provided",
		}
	}
	return &Parameter{name: name, vals: vals, series: true}, nil
}

// Indexed attribute families a Parameters element may carry in place of
// Parameter children, the periodic-torsion form: k1="..." periodicity1="..."
// phase1="..." and so on. The families are fixed; parameter names that
// merely end in a digit (c0, c1 of a Ryckaert-Bellemans torsion) are
// regular parameters, not families.
var indexedPrefixes = [...]string{"periodicity", "phase", "k"}

// attrParameters reads the parameters a Parameters element declares as
// attributes. Attributes of the indexed families are normalized into
// ordered series; every other attribute is kept as a scalar parameter
// under its own name.
func attrParameters(el *etree.Element) ([]*Parameter, error) {
	found := map[string]map[int]float64{}
	var scalars []*Parameter
	for _, a := range el.Attr {
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return nil, &MalformedRecordError{
				Tag:    "Parameters",
				Name:   a.Key,
				Reason: fmt.Sprintf("bad value %q", a.Value),
			}
		}
		prefix, idx, ok := splitIndexed(a.Key)
		if !ok {
			scalars = append(scalars, &Parameter{name: a.Key, vals: []float64{v}})
			continue
		}
		m := found[prefix]
		if m == nil {
			m = map[int]float64{}
			found[prefix] = m
		}
		m[idx] = v
	}
	var out []*Parameter
	for _, prefix := range indexedPrefixes {
		m := found[prefix]
		if len(m) == 0 {
			continue
		}
		// Indexes must run 1..n without gaps.
		vals := make([]float64, len(m))
		for i := 1; i <= len(m); i++ {
			v, ok := m[i]
			if !ok {
				return nil, &MissingKeyError{Tag: "Parameters", Key: fmt.Sprintf("%s%d", prefix, i)}
			}
			vals[i-1] = v
		}
		out = append(out, &Parameter{name: prefix, vals: vals, series: true})
	}
	return append(out, scalars...), nil
}

// splitIndexed splits an attribute key into family prefix and index.
// Only the known families qualify.
func splitIndexed(key string) (prefix string, idx int, ok bool) {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(key) {
		return "", 0, false
	}
	prefix = key[:i]
	if !slices.Contains(indexedPrefixes[:], prefix) {
		return "", 0, false
	}
	idx, err := strconv.Atoi(key[i:])
	if err != nil {
		return "", 0, false
	}
	return prefix, idx, true
}
