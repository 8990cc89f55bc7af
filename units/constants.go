/*
 * constants.go, part of forcefield-utilities.
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

package units

// Force-field files occasionally put a physical constant where a unit is
// expected, "kb" as the unit of an energy parameter being the common case.
// physicalConstants resolves those names after the unit table has failed.
// A constant behaves as a unit whose factor is the value of the constant,
// so the tagged number stays as written, exactly like a regular unit.
//
// Exact SI values from the 2019 redefinition, measured ones from CODATA
// 2018 (DOI:10.1103/RevModPhys.93.025010).
var physicalConstants = map[string]Unit{
	// Boltzmann constant, J/K (exact).
	"kb": {"kb", 1.380649e-23, Dimension{dimMass: 1, dimLength: 2, dimTime: -2, dimTemperature: -1}},
	"boltzmann_constant": {"boltzmann_constant", 1.380649e-23,
		Dimension{dimMass: 1, dimLength: 2, dimTime: -2, dimTemperature: -1}},
	// Avogadro constant, 1/mol (exact).
	"Na":                {"Na", 6.02214076e23, Dimension{dimAmount: -1}},
	"avogadro_constant": {"avogadro_constant", 6.02214076e23, Dimension{dimAmount: -1}},
	// Elementary charge, C (exact).
	"qe": {"qe", 1.602176634e-19, Dimension{dimCharge: 1}},
	// Speed of light in vacuum, m/s (exact).
	"c":              {"c", 2.99792458e8, Dimension{dimLength: 1, dimTime: -1}},
	"speed_of_light": {"speed_of_light", 2.99792458e8, Dimension{dimLength: 1, dimTime: -1}},
	// Planck constant, J*s (exact), and the reduced form.
	"h":               {"h", 6.62607015e-34, Dimension{dimMass: 1, dimLength: 2, dimTime: -1}},
	"planck_constant": {"planck_constant", 6.62607015e-34, Dimension{dimMass: 1, dimLength: 2, dimTime: -1}},
	"hbar":            {"hbar", 1.054571817e-34, Dimension{dimMass: 1, dimLength: 2, dimTime: -1}},
	// Vacuum permittivity, C**2/(J*m).
	"eps_0": {"eps_0", 8.8541878128e-12,
		Dimension{dimMass: -1, dimLength: -3, dimTime: 2, dimCharge: 2}},
	"vacuum_permittivity": {"vacuum_permittivity", 8.8541878128e-12,
		Dimension{dimMass: -1, dimLength: -3, dimTime: 2, dimCharge: 2}},
}

// Constant looks up a physical constant by name. Only bare names resolve;
// constants do not take part in compound unit expressions.
func Constant(name string) (Unit, bool) {
	u, ok := physicalConstants[name]
	return u, ok
}
