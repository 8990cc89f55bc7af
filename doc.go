/*
 * doc.go, part of forcefield-utilities.
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

/*
Package ffutils holds the in-memory force-field object model that the XML
dialect readers of this module target.

A molecular-mechanics force field is a database of typed potentials: atom
types carrying charge, mass and a non-bonded expression, plus bonded
interaction types (bonds, angles, dihedrals, impropers), pair-potential
overrides and virtual sites, each keyed by the atom types or atom classes
of its members. Different simulation ecosystems serialize this database in
different XML dialects; this module reads them and materializes the same
ForceField value from any of them.

The packages of the module:

	ffutils   the dialect-independent ForceField model (this package)
	gmso      reader for the GMSO force-field XML dialect
	foyer     reader for the legacy Foyer XML dialect
	units     units and tagged quantities for potential parameters
	sym       symbol analysis of potential-energy expressions
	load      caching loader with the force fields bundled in the module

Reading a file and materializing it takes two calls:

	doc, err := gmso.ReadFile("oplsaa.xml")
	if err != nil {
		...
	}
	ff, err := doc.ToFF()

Everything in a ForceField keeps the numbers exactly as written in the
source file; units are tags, not conversions.
*/
package ffutils
