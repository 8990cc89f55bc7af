/*
 * registry.go, part of forcefield-utilities.
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
	"slices"
	"strings"
)

// Bond-order tokens that separate member names in a delimited identifier.
// "~" stands for any bond order and doubles as the canonical separator.
const bondTokens = "~-=#"

// splitChain splits a delimited identifier into its member names and the
// bond-order tokens between them. "C~C-H" yields members [C C H] and
// tokens [~ -].
func splitChain(id string) (members []string, tokens []byte) {
	start := 0
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(bondTokens, id[i]) >= 0 {
			members = append(members, id[start:i])
			tokens = append(tokens, id[i])
			start = i + 1
		}
	}
	members = append(members, id[start:])
	return members, tokens
}

// joinChain is the inverse of splitChain. len(tokens) must be
// len(members)-1.
func joinChain(members []string, tokens []byte) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(tokens[i-1])
		}
		b.WriteString(m)
	}
	return b.String()
}

// reverseChain returns the identifier with member order reversed and the
// bond-order tokens kept between the same neighbors: "A~B-C" becomes
// "C-B~A".
func reverseChain(id string) string {
	members, tokens := splitChain(id)
	slices.Reverse(members)
	slices.Reverse(tokens)
	return joinChain(members, tokens)
}

// The six orderings of three peripheral members.
var peripheralOrders = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// improperVariants returns every equivalent ordering of an improper
// identifier: the central member stays first, the three peripheral
// members permute freely. Bond-order tokens keep their positions.
func improperVariants(id string) []string {
	members, tokens := splitChain(id)
	if len(members) != 4 {
		return nil
	}
	variants := make([]string, 0, len(peripheralOrders))
	peri := members[1:]
	for _, order := range peripheralOrders {
		permuted := []string{members[0], peri[order[0]], peri[order[1]], peri[order[2]]}
		variants = append(variants, joinChain(permuted, tokens))
	}
	return variants
}

// symmetryVariants returns the identifiers equivalent to id under the
// symmetry of the category. Two-ended chains read the same backwards;
// impropers fix the central member and permute the peripherals. Atom
// types and virtual sites have no symmetry.
func symmetryVariants(cat Category, id string) []string {
	switch cat {
	case CategoryBondTypes, CategoryAngleTypes, CategoryDihedralTypes, CategoryPairPotentialTypes:
		if rev := reverseChain(id); rev != id {
			return []string{rev}
		}
	case CategoryImproperTypes:
		return improperVariants(id)
	}
	return nil
}

// registry tracks the identifiers defined within one group, closed under
// each category's symmetry. One registry lives per group element, so a
// later group may redefine an interaction an earlier group already
// carries; within a group a redefinition is an error.
type registry struct {
	seen map[Category]map[string]struct{}
}

func newRegistry() *registry {
	return &registry{seen: map[Category]map[string]struct{}{}}
}

// register records an identifier and its symmetry closure, failing when
// the identifier was already recorded directly or as a variant.
func (r *registry) register(cat Category, id string) error {
	set := r.seen[cat]
	if set == nil {
		set = map[string]struct{}{}
		r.seen[cat] = set
	}
	if _, dup := set[id]; dup {
		return &DuplicateDefinitionError{Category: cat, Identifier: id}
	}
	set[id] = struct{}{}
	for _, v := range symmetryVariants(cat, id) {
		set[v] = struct{}{}
	}
	return nil
}
