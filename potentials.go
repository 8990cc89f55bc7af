/*
 * potentials.go, part of forcefield-utilities.
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
	"sort"
	"strings"

	"github.com/mosdef-hub/forcefield-utilities/units"
)

// Wildcard is the member-slot value matching any atom type or class.
const Wildcard = "*"

// KeySeparator joins member names into the canonical key of a multi-member
// potential, "opls_135~opls_140".
const KeySeparator = "~"

// MemberKey returns the canonical table key for a potential over the given
// members.
func MemberKey(members []string) string {
	return strings.Join(members, KeySeparator)
}

// StringSet is an unordered set of names, used for expression variables
// and atom-type overrides.
type StringSet map[string]struct{}

// NewStringSet returns a set holding the given items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts an item into the set.
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Has reports whether the set holds the item.
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items in the set.
func (s StringSet) Len() int { return len(s) }

// Sorted returns the items in lexicographic order.
func (s StringSet) Sorted() []string {
	items := make([]string, 0, len(s))
	for it := range s {
		items = append(items, it)
	}
	sort.Strings(items)
	return items
}

// Equal reports whether two sets hold the same items.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for it := range s {
		if !o.Has(it) {
			return false
		}
	}
	return true
}

func (s StringSet) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// Potential is the part shared by every typed potential of a force field:
// an energy expression, the variables the expression is evaluated over,
// and its parameters as unit-tagged quantities.
type Potential struct {
	Name                 string
	Expression           string
	IndependentVariables StringSet
	Parameters           map[string]units.Quantity
}

// AtomType is the non-bonded potential of one atom type together with the
// chemistry metadata force-field files attach to it. Charge and Mass are
// nil when the source file does not provide them.
type AtomType struct {
	Potential
	AtomClass   string
	Element     string
	Definition  string // SMARTS pattern defining the chemical context
	Description string
	Doi         string
	Overrides   StringSet
	Charge      *units.Quantity
	Mass        *units.Quantity
}

// BondType is the potential of a two-body bonded interaction. Exactly one
// of MemberTypes and MemberClasses identifies the members; slots that were
// not constrained in the source hold the "*" wildcard.
type BondType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}

// AngleType is the potential of a three-body angle interaction.
type AngleType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}

// DihedralType is the potential of a proper torsion over four bonded
// members.
type DihedralType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}

// ImproperType is the potential of an improper torsion. The first member
// is the central atom; the order of the remaining three does not matter.
type ImproperType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}

// PairPotentialType is an explicit non-bonded potential for one pair of
// atom types, overriding whatever the combining rule would produce.
type PairPotentialType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}

// VirtualSiteType describes a massless interaction site positioned
// relative to its parent atoms.
type VirtualSiteType struct {
	Potential
	MemberTypes   []string
	MemberClasses []string
}
