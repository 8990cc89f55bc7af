/*
 * load_test.go, part of forcefield-utilities.
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

package load

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosdef-hub/forcefield-utilities/units"
)

const miniXML = `<?xml version="1.0" encoding="UTF-8"?>
<ForceField name="mini" version="0.1.0">
  <FFMetaData electrostatics14Scale="0.5" nonBonded14Scale="0.5">
    <Units energy="kJ/mol" distance="nm" mass="amu" charge="elementary_charge"/>
  </FFMetaData>
  <AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">
    <ParametersUnitDef parameter="sigma" unit="nm"/>
    <ParametersUnitDef parameter="epsilon" unit="kJ/mol"/>
    <AtomType name="mini_C" element="C" charge="-0.18" mass="12.011" atomclass="CT" description="test carbon">
      <Parameters>
        <Parameter name="sigma" value="0.35"/>
        <Parameter name="epsilon" value="0.276144"/>
      </Parameters>
    </AtomType>
  </AtomTypes>
</ForceField>
`

func TestLoadBundledGMSO(t *testing.T) {
	ff, err := GMSO().LoadFF("tip3p")
	require.NoError(t, err)

	assert.Equal(t, "TIP3P", ff.Name)
	assert.Equal(t, "geometric", ff.CombiningRule)

	o := ff.AtomTypes["opls_111"]
	require.NotNil(t, o)
	assert.Equal(t, "O", o.Element)
	assert.Equal(t, "OW", o.AtomClass)
	require.NotNil(t, o.Charge)
	assert.Equal(t, -0.834, o.Charge.Float())
	assert.True(t, o.Charge.Unit().Equal(units.MustParse("elementary_charge")))
	assert.Equal(t, 0.315061, o.Parameters["sigma"].Float())
	assert.Equal(t, 0.636386, o.Parameters["epsilon"].Float())

	h := ff.AtomTypes["opls_112"]
	require.NotNil(t, h)
	assert.Equal(t, 0.417, h.Charge.Float())

	bond := ff.BondTypes["opls_111~opls_112"]
	require.NotNil(t, bond)
	assert.Equal(t, 502416.0, bond.Parameters["k"].Float())
	assert.Equal(t, 0.09572, bond.Parameters["r_eq"].Float())

	angle := ff.AngleTypes["opls_112~opls_111~opls_112"]
	require.NotNil(t, angle)
	assert.Equal(t, 628.02, angle.Parameters["k"].Float())
}

func TestLoadBundledFoyer(t *testing.T) {
	ff, err := Foyer().LoadFF("oplsaa_subset")
	require.NoError(t, err)

	assert.Equal(t, "OPLS-AA", ff.Name)
	assert.Equal(t, "0.0.1", ff.Version)
	assert.Len(t, ff.AtomTypes, 6)

	at := ff.AtomTypes["opls_135"]
	require.NotNil(t, at)
	assert.Equal(t, 0.35, at.Parameters["sigma"].Float())
	assert.True(t, at.Parameters["sigma"].Unit().Equal(units.MustParse("nm")))
}

func TestBundledNames(t *testing.T) {
	assert.Equal(t, []string{"spce", "tip3p"}, Bundled(DialectGMSO))
	assert.Equal(t, []string{"oplsaa_subset"}, Bundled(DialectFoyer))
}

func TestBundledDialectMismatch(t *testing.T) {
	_, err := GMSO().Load("oplsaa_subset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foyer")
}

func TestLoadUnknownName(t *testing.T) {
	_, err := GMSO().Load("no_such_ff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a registered name")
}

func TestLoadCaching(t *testing.T) {
	l := GMSO()
	d1, err := l.Load("spce")
	require.NoError(t, err)
	d2, err := l.Load("spce")
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	cached, ok := l.Get("spce")
	assert.True(t, ok)
	assert.Same(t, d1, cached)

	l.ClearCache()
	_, ok = l.Get("spce")
	assert.False(t, ok)
	d3, err := l.Load("spce")
	require.NoError(t, err)
	assert.NotSame(t, d1, d3)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini_alkane.xml")
	require.NoError(t, os.WriteFile(path, []byte(miniXML), 0644))

	l := GMSO()
	doc, err := l.Load(path)
	require.NoError(t, err)
	ff, err := doc.ToFF()
	require.NoError(t, err)
	assert.Equal(t, "mini", ff.Name)
	assert.Contains(t, ff.AtomTypes, "mini_C")

	// Paths cache under their stem.
	cached, ok := l.Get("mini_alkane")
	assert.True(t, ok)
	assert.Same(t, doc, cached)
}

func TestLoadGzipPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.xml.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(miniXML))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	ff, err := GMSO().LoadFF(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", ff.Name)
}

func TestLoadZstdPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.xml.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(miniXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ff, err := GMSO().LoadFF(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", ff.Name)
}

func TestRegisterCustom(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "custom.xml")
	require.NoError(t, os.WriteFile(first, []byte(miniXML), 0644))

	l := GMSO()
	require.NoError(t, l.RegisterCustom("myff", first, false))
	ff, err := l.LoadFF("myff")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", ff.Version)

	err = l.RegisterCustom("myff", first, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// Overwriting re-points the name and drops the stale cache entry.
	second := filepath.Join(dir, "custom2.xml")
	bumped := strings.Replace(miniXML, `version="0.1.0"`, `version="0.2.0"`, 1)
	require.NoError(t, os.WriteFile(second, []byte(bumped), 0644))
	require.NoError(t, l.RegisterCustom("myff", second, true))
	ff, err = l.LoadFF("myff")
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", ff.Version)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := GMSO().Load(filepath.Join(t.TempDir(), "gone.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.xml")
}

func TestDialect(t *testing.T) {
	assert.Equal(t, DialectGMSO, GMSO().Dialect())
	assert.Equal(t, DialectFoyer, Foyer().Dialect())
}
