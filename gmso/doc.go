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
Package gmso reads force-field files in the GMSO XML dialect.

A GMSO file is a ForceField element holding one FFMetaData block and any
number of typed-potential groups (AtomTypes, BondTypes, AngleTypes,
DihedralTypes, ImproperTypes, PairPotentialTypes, VirtualSiteTypes). Each
group declares a potential expression and the unit of every parameter with
ParametersUnitDef children, followed by the typed records themselves.

Reading happens in two stages. ReadFile, Read and FromElement parse the
XML into a ForceField document: a typed tree that keeps values exactly as
written and checks structural rules, among them that no group defines the
same interaction twice under a reordering of its members. ToFF then
materializes the document into the dialect-independent
ffutils.ForceField, attaching declared units to parameters and computing
the independent variables of every potential expression.
*/
package gmso
