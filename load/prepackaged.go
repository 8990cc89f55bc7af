/*
 * prepackaged.go, part of forcefield-utilities.
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
	"bytes"
	"embed"
	"fmt"
	"slices"

	"github.com/klauspost/compress/zstd"
)

//go:embed xmls/*.xml.zst
var bundled embed.FS

// bundledFFs names the forcefields shipped with the package and the
// dialect each is written in.
var bundledFFs = map[string]Dialect{
	"tip3p":         DialectGMSO,
	"spce":          DialectGMSO,
	"oplsaa_subset": DialectFoyer,
}

// Bundled returns the names of the forcefields shipped with the package
// in the given dialect, sorted.
func Bundled(dialect Dialect) []string {
	var names []string
	for name, d := range bundledFFs {
		if d == dialect {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (l *Loader) readBundled(name string) (Document, error) {
	dialect, ok := bundledFFs[name]
	if !ok {
		return nil, fmt.Errorf("load: %s is not a registered name, a bundled forcefield or an XML file path", name)
	}
	if dialect != l.dialect {
		return nil, fmt.Errorf("load: bundled forcefield %s is a %s file, not %s", name, dialect, l.dialect)
	}
	raw, err := bundled.ReadFile("xmls/" + name + ".xml.zst")
	if err != nil {
		return nil, fmt.Errorf("Couldn't read bundled forcefield %s: %w", name, err)
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("Couldn't decompress bundled forcefield %s: %w", name, err)
	}
	defer dec.Close()
	return l.parse(dec)
}
