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

// Package foyer reads the legacy per-force force-field XML dialect, in
// which every functional form gets its own block (HarmonicBondForce,
// RBTorsionForce and so on) and all values are written in a fixed unit
// system: kJ/mol, nm, rad, amu and elementary charges.
//
// Unlike the gmso dialect there are no expressions or unit declarations
// in the file itself. Each block maps to a fixed potential template, and
// the conversion to a *ffutils.ForceField attaches the template's
// expression, its independent variable and the dialect's units to every
// record. Parameter names are rewritten on the way out (length becomes
// r_eq, angle becomes theta_eq, periodicity becomes n) so that the sink
// carries the same vocabulary regardless of the source dialect.
package foyer
