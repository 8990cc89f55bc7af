/*
 * materialize_test.go, part of forcefield-utilities.
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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
	"github.com/mosdef-hub/forcefield-utilities/units"
)

func TestToFFAlkanes(t *testing.T) {
	f, err := ReadFile("test/alkanes.xml")
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	assert.Equal(t, "OPLS-AA-alkanes", ff.Name)
	assert.Equal(t, "0.4.1", ff.Version)
	assert.Equal(t, "geometric", ff.CombiningRule)
	assert.Equal(t, 0.5, ff.ScalingFactors[ffutils.ScaleElectrostatics14])
	assert.Equal(t, 0.5, ff.ScalingFactors[ffutils.ScaleNonBonded14])
	assert.True(t, ff.Units[ffutils.UnitSlotEnergy].Equal(units.MustParse("kJ/mol")))

	require.Len(t, ff.AtomTypes, 3)
	c := ff.AtomTypes["opls_135"]
	require.NotNil(t, c)
	assert.Equal(t, "C", c.Element)
	assert.Equal(t, "CT", c.AtomClass)
	assert.Equal(t, "alkane CH3", c.Description)
	assert.Equal(t, "10.1021/ja9621760", c.Doi)
	assert.Equal(t, "[C;X4](C)(H)(H)H", c.Definition)
	require.NotNil(t, c.Charge)
	assert.Equal(t, -0.18, c.Charge.Float())
	assert.True(t, c.Charge.Unit().Equal(units.MustParse("elementary_charge")))
	require.NotNil(t, c.Mass)
	assert.Equal(t, 12.011, c.Mass.Float())
	assert.Equal(t, 0.35, c.Parameters["sigma"].Float())
	assert.True(t, c.Parameters["sigma"].Unit().Equal(units.MustParse("nm")))
	assert.True(t, c.IndependentVariables.Equal(ffutils.NewStringSet("r")))
	assert.True(t, ff.AtomTypes["opls_140"].Overrides.Has("opls_144"))

	require.Len(t, ff.BondTypes, 2)
	bond := ff.BondTypes["opls_135~opls_136"]
	require.NotNil(t, bond)
	assert.Equal(t, 224262.4, bond.Parameters["k"].Float())
	assert.True(t, bond.Parameters["k"].Unit().Equal(units.MustParse("kJ/mol/nm**2")))
	assert.Equal(t, []string{"opls_135", "opls_136"}, bond.MemberTypes)
	assert.True(t, bond.IndependentVariables.Equal(ffutils.NewStringSet("r")))

	require.Len(t, ff.AngleTypes, 2)
	angle := ff.AngleTypes["CT~CT~*"]
	require.NotNil(t, angle)
	assert.Equal(t, []string{"CT", "CT", "*"}, angle.MemberClasses)
	assert.Nil(t, angle.MemberTypes)
	assert.True(t, angle.IndependentVariables.Equal(ffutils.NewStringSet("theta")))

	require.Len(t, ff.DihedralTypes, 2)
	rb := ff.DihedralTypes["opls_135~opls_136~opls_136~opls_135"]
	require.NotNil(t, rb)
	assert.Len(t, rb.Parameters, 6)
	assert.Equal(t, -1.6736, rb.Parameters["c3"].Float())
	assert.True(t, rb.IndependentVariables.Equal(ffutils.NewStringSet("psi")))

	require.Len(t, ff.ImproperTypes, 1)
	improper := ff.ImproperTypes["opls_136~opls_135~opls_140~*"]
	require.NotNil(t, improper)
	assert.True(t, improper.Parameters["k"].IsSeries())
	assert.Equal(t, []float64{43.932}, improper.Parameters["k"].Floats())
	assert.InDelta(t, math.Pi, improper.Parameters["phase"].Floats()[0], 1e-12)
	assert.True(t, improper.IndependentVariables.Equal(ffutils.NewStringSet("phi")))

	require.Len(t, ff.PairPotentialTypes, 1)
	pair := ff.PairPotentialTypes["opls_135~opls_140"]
	require.NotNil(t, pair)
	assert.Equal(t, 0.3, pair.Parameters["sig"].Float())
}

func TestToFFVirtualSites(t *testing.T) {
	f, err := ReadFile("test/tip4p.xml")
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	assert.Equal(t, "lorentz", ff.CombiningRule)
	require.Len(t, ff.VirtualSiteTypes, 1)
	site := ff.VirtualSiteTypes["tip4p_O~tip4p_H~tip4p_H~*"]
	require.NotNil(t, site)
	assert.Equal(t, []string{"tip4p_O", "tip4p_H", "tip4p_H", "*"}, site.MemberTypes)
	assert.Equal(t, -1.1128, site.Parameters["charge"].Float())
	assert.True(t, site.Parameters["charge"].Unit().Equal(units.MustParse("elementary_charge")))

	// Slots the metadata does not declare stay out of the unit map.
	_, declared := ff.Units[ffutils.UnitSlotTime]
	assert.False(t, declared)
}

func TestEndToEndAtomTypeScenario(t *testing.T) {
	const doc = `<ForceField name="minimal">
	  <FFMetaData>
	    <Units charge="elementary_charge"/>
	  </FFMetaData>
	  <AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">
	    <AtomType name="opls_143" element="C" charge="-0.23"/>
	  </AtomTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	at := ff.AtomTypes["opls_143"]
	require.NotNil(t, at)
	assert.Equal(t, "C", at.Element)
	require.NotNil(t, at.Charge)
	assert.Equal(t, -0.23, at.Charge.Float())
	assert.True(t, at.Charge.Unit().Equal(units.MustParse("elementary_charge")))
	// No Parameters block means no parameters, and with none declared
	// every free symbol is independent.
	assert.Empty(t, at.Parameters)
	assert.True(t, at.IndependentVariables.Equal(ffutils.NewStringSet("epsilon", "r", "sigma")))

	// The mass slot is undeclared, so a mass would attach dimensionless;
	// here none is given at all.
	assert.Nil(t, at.Mass)
}

func TestMergeOverwriteAcrossGroups(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData>
	    <Units energy="kJ/mol" distance="nm"/>
	  </FFMetaData>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="kJ/mol/nm**2"/>
	    <ParametersUnitDef parameter="r_eq" unit="nm"/>
	    <BondType name="first" type1="A" type2="B">
	      <Parameters>
	        <Parameter name="k" value="1000.0"/>
	        <Parameter name="r_eq" value="0.1"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="kJ/mol/nm**2"/>
	    <ParametersUnitDef parameter="r_eq" unit="nm"/>
	    <BondType name="second" type1="A" type2="B">
	      <Parameters>
	        <Parameter name="k" value="2000.0"/>
	        <Parameter name="r_eq" value="0.2"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	// Within-group duplicates are rejected, but across groups the later
	// definition wins.
	require.Len(t, ff.BondTypes, 1)
	bond := ff.BondTypes["A~B"]
	require.NotNil(t, bond)
	assert.Equal(t, "second", bond.Name)
	assert.Equal(t, 2000.0, bond.Parameters["k"].Float())
	assert.Equal(t, 0.2, bond.Parameters["r_eq"].Float())
}

func TestUnitAttachmentDeterminism(t *testing.T) {
	const one = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="kJ/mol/nm**2"/>
	    <ParametersUnitDef parameter="r_eq" unit="nm"/>
	    <BondType name="b" type1="X" type2="Y">
	      <Parameters>
	        <Parameter name="k" value="459403.2"/>
	        <Parameter name="r_eq" value="0.1"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`
	// Same bond with declarations and parameters in the other order.
	const two = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="r_eq" unit="nm"/>
	    <ParametersUnitDef parameter="k" unit="kJ/mol/nm**2"/>
	    <BondType name="b" type1="X" type2="Y">
	      <Parameters>
	        <Parameter name="r_eq" value="0.1"/>
	        <Parameter name="k" value="459403.2"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`

	for _, doc := range []string{one, two} {
		f, err := Read(strings.NewReader(doc))
		require.NoError(t, err)
		ff, err := f.ToFF()
		require.NoError(t, err)
		k := ff.BondTypes["X~Y"].Parameters["k"]
		assert.Equal(t, 459403.2, k.Float())
		assert.True(t, k.Unit().Equal(units.MustParse("kJ/mol/nm**2")))
	}
}

func TestMissingMetadata(t *testing.T) {
	const doc = `<ForceField>
	  <AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">
	    <AtomType name="a"/>
	  </AtomTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	require.ErrorIs(t, err, ErrMissingMetadata)
}

func TestUnitResolutionFailure(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="blargs/mol"/>
	    <BondType name="b" type1="X" type2="Y">
	      <Parameters>
	        <Parameter name="k" value="1.0"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	require.Error(t, err)
	var unitErr *UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "blargs/mol", unitErr.Unit)
}

func TestMetadataUnitResolutionFailure(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData>
	    <Units energy="no_such_unit"/>
	  </FFMetaData>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	var unitErr *UnitError
	require.True(t, errors.As(err, &unitErr))
}

func TestPhysicalConstantFallback(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="kb"/>
	    <BondType name="b" type1="X" type2="Y">
	      <Parameters>
	        <Parameter name="k" value="300.0"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	k := ff.BondTypes["X~Y"].Parameters["k"]
	assert.Equal(t, 300.0, k.Float())
	assert.InDelta(t, 1.380649e-23, k.Unit().Factor(), 1e-35)
}

func TestNoUnitDeclaredForParameter(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*(r-r_eq)**2">
	    <ParametersUnitDef parameter="k" unit="kJ/mol/nm**2"/>
	    <BondType name="b" type1="X" type2="Y">
	      <Parameters>
	        <Parameter name="k" value="1.0"/>
	        <Parameter name="mystery" value="2.0"/>
	      </Parameters>
	    </BondType>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	require.Error(t, err)
	var unitErr *UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Empty(t, unitErr.Unit)
	assert.Contains(t, unitErr.What, "mystery")
}

func TestExpressionFailure(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <BondTypes expression="0.5*k*((">
	    <BondType name="b" type1="X" type2="Y"/>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	require.Error(t, err)
	var exprErr *ExpressionError
	require.True(t, errors.As(err, &exprErr))
	assert.Equal(t, "0.5*k*((", exprErr.Expression)
}

func TestMissingExpression(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <BondTypes>
	    <BondType name="b" type1="X" type2="Y"/>
	  </BondTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = f.ToFF()
	require.Error(t, err)
	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
}

func TestRecordExpressionOverride(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">
	    <ParametersUnitDef parameter="A" unit="kJ/mol"/>
	    <ParametersUnitDef parameter="B" unit="nm**-1"/>
	    <AtomType name="buck" expression="A*exp(-B*r)">
	      <Parameters>
	        <Parameter name="A" value="300.5"/>
	        <Parameter name="B" value="32.0"/>
	      </Parameters>
	    </AtomType>
	  </AtomTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	at := ff.AtomTypes["buck"]
	require.NotNil(t, at)
	assert.Equal(t, "A*exp(-B*r)", at.Expression)
	assert.True(t, at.IndependentVariables.Equal(ffutils.NewStringSet("r")))
}

func TestExplicitIndependentVariables(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">
	    <AtomType name="a" independent_variables="r"/>
	  </AtomTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	// The explicit declaration wins over the computed set.
	assert.True(t, ff.AtomTypes["a"].IndependentVariables.Equal(ffutils.NewStringSet("r")))
}

func TestMixedAttributeParameters(t *testing.T) {
	const doc = `<ForceField>
	  <FFMetaData/>
	  <DihedralTypes expression="c0 + k*(1+cos(periodicity*phi - phase))">
	    <ParametersUnitDef parameter="c0" unit="kJ/mol"/>
	    <ParametersUnitDef parameter="k" unit="kJ/mol"/>
	    <ParametersUnitDef parameter="periodicity" unit="dimensionless"/>
	    <ParametersUnitDef parameter="phase" unit="rad"/>
	    <DihedralType name="d" type1="*" type2="C" type3="C" type4="*">
	      <Parameters periodicity1="3" phase1="0" k1="0.3" c0="9.28"/>
	    </DihedralType>
	  </DihedralTypes>
	</ForceField>`

	f, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ff, err := f.ToFF()
	require.NoError(t, err)

	dt := ff.DihedralTypes["*~C~C~*"]
	require.NotNil(t, dt)
	c0 := dt.Parameters["c0"]
	assert.Equal(t, 9.28, c0.Float())
	assert.True(t, c0.Unit().Equal(units.MustParse("kJ/mol")))
	// Every attribute is a parameter; only phi is left free.
	assert.True(t, dt.IndependentVariables.Equal(ffutils.NewStringSet("phi")))
}
