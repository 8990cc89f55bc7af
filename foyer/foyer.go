/*
 * foyer.go, part of forcefield-utilities.
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
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
)

// Type is one atom-type definition of the AtomTypes block.
type Type struct {
	Name        string
	Class       string
	Element     string
	Mass        float64
	Definition  string
	Description string
	Overrides   string
	Doi         string
}

// Bond is one harmonic bond record. Members are the two member tokens
// after wildcarding, class names unless ByType is set.
type Bond struct {
	Members []string
	ByType  bool
	Length  float64
	K       float64
}

// Angle is one harmonic angle record.
type Angle struct {
	Members []string
	ByType  bool
	Angle   float64
	K       float64
}

// RBTorsion is one Ryckaert-Bellemans torsion record, proper or
// improper. C holds the coefficients c0 through c5.
type RBTorsion struct {
	Members []string
	ByType  bool
	C       [6]float64
}

// PeriodicTorsion is one periodic torsion record. The three slices are
// parallel, one entry per term.
type PeriodicTorsion struct {
	Members     []string
	ByType      bool
	Periodicity []float64
	Phase       []float64
	K           []float64
}

// NBAtom carries the per-atom-type non-bonded parameters of the
// NonbondedForce block.
type NBAtom struct {
	Type    string
	Charge  float64
	Sigma   float64
	Epsilon float64
}

// NonbondedForce holds the 1-4 scalings and the per-type non-bonded
// parameters.
type NonbondedForce struct {
	Coulomb14Scale float64
	LJ14Scale      float64
	Atoms          []*NBAtom
}

// ForceField is a parsed per-force force-field document. Impropers keep
// their central atom in the first member slot.
type ForceField struct {
	Name          string
	Version       string
	CombiningRule string

	Types             []*Type
	HarmonicBonds     []*Bond
	HarmonicAngles    []*Angle
	RBPropers         []*RBTorsion
	RBImpropers       []*RBTorsion
	PeriodicPropers   []*PeriodicTorsion
	PeriodicImpropers []*PeriodicTorsion
	Nonbonded         *NonbondedForce
}

// ReadFile parses the per-force force-field file at the given path.
func ReadFile(path string) (*ForceField, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("Couldn't read force-field file %s: %w", path, err)
	}
	return FromElement(doc.Root())
}

// Read parses a per-force force-field document from a reader.
func Read(r io.Reader) (*ForceField, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("Couldn't read force-field document: %w", err)
	}
	return FromElement(doc.Root())
}

// FromElement builds a force-field document from a parsed ForceField
// element. Blocks of the same kind accumulate; unrecognized blocks are
// skipped.
func FromElement(root *etree.Element) (*ForceField, error) {
	if root == nil {
		return nil, fmt.Errorf("foyer: document has no root element")
	}
	if root.Tag != "ForceField" {
		return nil, fmt.Errorf("foyer: not a force-field document: root element is %q", root.Tag)
	}
	ff := &ForceField{
		Name:          root.SelectAttrValue("name", "Forcefield"),
		Version:       root.SelectAttrValue("version", "1.0.0"),
		CombiningRule: root.SelectAttrValue("combining_rule", "geometric"),
	}
	for _, el := range root.ChildElements() {
		var err error
		switch el.Tag {
		case "AtomTypes":
			err = ff.loadTypes(el)
		case "HarmonicBondForce":
			err = ff.loadHarmonicBonds(el)
		case "HarmonicAngleForce":
			err = ff.loadHarmonicAngles(el)
		case "RBTorsionForce":
			err = ff.loadRBTorsions(el)
		case "PeriodicTorsionForce":
			err = ff.loadPeriodicTorsions(el)
		case "NonbondedForce":
			err = ff.loadNonbonded(el)
		default:
			slog.Warn("Skipping unrecognized force block", "tag", el.Tag)
		}
		if err != nil {
			return nil, err
		}
	}
	return ff, nil
}

func (ff *ForceField) loadTypes(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "Type" {
			continue
		}
		t := &Type{
			Name:        child.SelectAttrValue("name", ""),
			Class:       child.SelectAttrValue("class", ""),
			Element:     child.SelectAttrValue("element", ""),
			Definition:  child.SelectAttrValue("def", ""),
			Description: child.SelectAttrValue("desc", ""),
			Overrides:   child.SelectAttrValue("overrides", ""),
			Doi:         child.SelectAttrValue("doi", ""),
		}
		if t.Name == "" {
			return fmt.Errorf("foyer: Type element without a name attribute")
		}
		mass, err := floatAttr(child, "mass")
		if err != nil {
			return err
		}
		t.Mass = mass
		ff.Types = append(ff.Types, t)
	}
	return nil
}

func (ff *ForceField) loadHarmonicBonds(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "Bond" {
			continue
		}
		b := &Bond{}
		b.Members, b.ByType = readMembers(child, 2)
		var err error
		if b.Length, err = floatAttr(child, "length"); err != nil {
			return err
		}
		if b.K, err = floatAttr(child, "k"); err != nil {
			return err
		}
		ff.HarmonicBonds = append(ff.HarmonicBonds, b)
	}
	return nil
}

func (ff *ForceField) loadHarmonicAngles(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "Angle" {
			continue
		}
		a := &Angle{}
		a.Members, a.ByType = readMembers(child, 3)
		var err error
		if a.Angle, err = floatAttr(child, "angle"); err != nil {
			return err
		}
		if a.K, err = floatAttr(child, "k"); err != nil {
			return err
		}
		ff.HarmonicAngles = append(ff.HarmonicAngles, a)
	}
	return nil
}

func (ff *ForceField) loadRBTorsions(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "Proper" && child.Tag != "Improper" {
			continue
		}
		t := &RBTorsion{}
		t.Members, t.ByType = readMembers(child, 4)
		for i := range t.C {
			v, err := floatAttr(child, "c"+strconv.Itoa(i))
			if err != nil {
				return err
			}
			t.C[i] = v
		}
		if child.Tag == "Improper" {
			ff.RBImpropers = append(ff.RBImpropers, t)
		} else {
			ff.RBPropers = append(ff.RBPropers, t)
		}
	}
	return nil
}

func (ff *ForceField) loadPeriodicTorsions(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "Proper" && child.Tag != "Improper" {
			continue
		}
		t := &PeriodicTorsion{}
		t.Members, t.ByType = readMembers(child, 4)
		var err error
		t.Periodicity, t.Phase, t.K, err = readTerms(child)
		if err != nil {
			return err
		}
		if child.Tag == "Improper" {
			ff.PeriodicImpropers = append(ff.PeriodicImpropers, t)
		} else {
			ff.PeriodicPropers = append(ff.PeriodicPropers, t)
		}
	}
	return nil
}

func (ff *ForceField) loadNonbonded(el *etree.Element) error {
	nb := &NonbondedForce{Coulomb14Scale: 0.5, LJ14Scale: 0.5}
	var err error
	if el.SelectAttr("coulomb14scale") != nil {
		if nb.Coulomb14Scale, err = floatAttr(el, "coulomb14scale"); err != nil {
			return err
		}
	}
	if el.SelectAttr("lj14scale") != nil {
		if nb.LJ14Scale, err = floatAttr(el, "lj14scale"); err != nil {
			return err
		}
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "Atom" {
			continue
		}
		at := &NBAtom{Type: child.SelectAttrValue("type", "")}
		if at.Type == "" {
			return fmt.Errorf("foyer: NonbondedForce Atom element without a type attribute")
		}
		if at.Charge, err = floatAttr(child, "charge"); err != nil {
			return err
		}
		if at.Sigma, err = floatAttr(child, "sigma"); err != nil {
			return err
		}
		if at.Epsilon, err = floatAttr(child, "epsilon"); err != nil {
			return err
		}
		nb.Atoms = append(nb.Atoms, at)
	}
	ff.Nonbonded = nb
	return nil
}

// readMembers reads the member slots of a record with the given
// capacity. The type scheme wins when any typeN attribute is present,
// otherwise the class attributes are used; in either scheme an absent
// or empty slot is a wildcard.
func readMembers(el *etree.Element, capacity int) ([]string, bool) {
	types := make([]string, capacity)
	classes := make([]string, capacity)
	byType := false
	for i := 0; i < capacity; i++ {
		n := strconv.Itoa(i + 1)
		if a := el.SelectAttr("type" + n); a != nil {
			byType = true
			types[i] = a.Value
		}
		classes[i] = el.SelectAttrValue("class"+n, "")
	}
	members := classes
	if byType {
		members = types
	}
	for i, tok := range members {
		if tok == "" {
			members[i] = ffutils.Wildcard
		}
	}
	return members, byType
}

// termPrefixes are the indexed attribute families describing the terms
// of a periodic torsion: periodicity1="3" phase1="0" k1="2.9288" is
// term one.
var termPrefixes = [...]string{"periodicity", "phase", "k"}

// readTerms collects the indexed term attributes of a periodic torsion.
// Indices are 1-based; the largest index present in any family fixes
// the term count, and every family must supply all of 1..N.
func readTerms(el *etree.Element) (periodicity, phase, k []float64, err error) {
	found := map[string]map[int]float64{}
	n := 0
	for _, a := range el.Attr {
		prefix, idx, ok := splitIndexed(a.Key)
		if !ok {
			continue
		}
		v, perr := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if perr != nil {
			return nil, nil, nil, fmt.Errorf("Couldn't parse %s attribute of %s: %w", a.Key, el.Tag, perr)
		}
		if found[prefix] == nil {
			found[prefix] = map[int]float64{}
		}
		found[prefix][idx] = v
		if idx > n {
			n = idx
		}
	}
	if n == 0 {
		return nil, nil, nil, fmt.Errorf("foyer: %s element defines no periodic terms", el.Tag)
	}
	series := make(map[string][]float64, len(termPrefixes))
	for _, prefix := range termPrefixes {
		vals := make([]float64, n)
		for i := 1; i <= n; i++ {
			v, ok := found[prefix][i]
			if !ok {
				return nil, nil, nil, fmt.Errorf("foyer: %s element is missing the %s%d attribute", el.Tag, prefix, i)
			}
			vals[i-1] = v
		}
		series[prefix] = vals
	}
	return series["periodicity"], series["phase"], series["k"], nil
}

// splitIndexed splits an attribute key into a known term prefix and its
// 1-based index. Keys of any other shape, like class1 or c0, are not
// term attributes.
func splitIndexed(key string) (prefix string, idx int, ok bool) {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(key) {
		return "", 0, false
	}
	prefix = key[:i]
	if !slices.Contains(termPrefixes[:], prefix) {
		return "", 0, false
	}
	idx, err := strconv.Atoi(key[i:])
	if err != nil || idx < 1 {
		return "", 0, false
	}
	return prefix, idx, true
}

// floatAttr reads a required numeric attribute.
func floatAttr(el *etree.Element, key string) (float64, error) {
	a := el.SelectAttr(key)
	if a == nil {
		return 0, fmt.Errorf("foyer: %s element is missing the %s attribute", el.Tag, key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("Couldn't parse %s attribute of %s: %w", key, el.Tag, err)
	}
	return v, nil
}
