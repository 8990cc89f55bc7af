/*
 * load.go, part of forcefield-utilities.
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

// Package load resolves force-field names to parsed documents. A Loader
// reads one XML dialect and serves documents from, in order, its own
// cache, the caller's custom name registrations, the forcefields
// bundled with the package, and finally the filesystem, where plain,
// gzip- and zstd-compressed files are read transparently.
package load

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	ffutils "github.com/mosdef-hub/forcefield-utilities"
	"github.com/mosdef-hub/forcefield-utilities/foyer"
	"github.com/mosdef-hub/forcefield-utilities/gmso"
)

// Dialect identifies a force-field XML dialect.
type Dialect string

const (
	DialectGMSO  Dialect = "gmso"
	DialectFoyer Dialect = "foyer"
)

// Document is a parsed force-field document of either dialect, ready to
// materialize into the dialect-independent model.
type Document interface {
	ToFF() (*ffutils.ForceField, error)
}

// Loader reads, caches and materializes force-field documents of one
// dialect. Every Loader owns its cache and custom registrations, so
// independent loads never share state; a single Loader is not safe for
// concurrent use.
type Loader struct {
	dialect Dialect
	cache   map[string]Document
	custom  map[string]string
}

// GMSO returns a loader for the gmso dialect.
func GMSO() *Loader {
	return &Loader{
		dialect: DialectGMSO,
		cache:   map[string]Document{},
		custom:  map[string]string{},
	}
}

// Foyer returns a loader for the legacy per-force dialect.
func Foyer() *Loader {
	return &Loader{
		dialect: DialectFoyer,
		cache:   map[string]Document{},
		custom:  map[string]string{},
	}
}

// Dialect returns the dialect this loader reads.
func (l *Loader) Dialect() Dialect { return l.dialect }

// Load resolves a forcefield reference and returns its parsed document.
// A reference is a custom-registered name, the name of a bundled
// forcefield, or the path of an XML file, possibly .gz- or
// .zst-compressed. Results are cached under the reference's stem; a
// repeated Load serves the cached document.
func (l *Loader) Load(name string) (Document, error) {
	key := stem(name)
	if doc, ok := l.cache[key]; ok {
		slog.Debug("Serving force field from cache", "name", key)
		return doc, nil
	}
	var doc Document
	var err error
	switch {
	case l.custom[name] != "":
		doc, err = l.readPath(l.custom[name])
	case isXMLPath(name):
		doc, err = l.readPath(name)
	default:
		doc, err = l.readBundled(name)
	}
	if err != nil {
		return nil, err
	}
	l.cache[key] = doc
	return doc, nil
}

// LoadFF loads a document and materializes it in one call.
func (l *Loader) LoadFF(name string) (*ffutils.ForceField, error) {
	doc, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	return doc.ToFF()
}

// Get returns the document cached under a reference, if any.
func (l *Loader) Get(name string) (Document, bool) {
	doc, ok := l.cache[stem(name)]
	return doc, ok
}

// RegisterCustom maps a forcefield name to an XML path so Load can
// resolve it. Re-registering a name needs overwrite set; overwriting
// also drops whatever the cache holds for that name, so the next Load
// reads the new path.
func (l *Loader) RegisterCustom(name, path string, overwrite bool) error {
	if prev, exists := l.custom[name]; exists && !overwrite {
		return fmt.Errorf("load: forcefield %s is already registered to %s", name, prev)
	}
	l.custom[name] = path
	delete(l.cache, stem(name))
	return nil
}

// ClearCache drops every cached document, forcing the next Load of each
// reference to re-read its source.
func (l *Loader) ClearCache() {
	l.cache = map[string]Document{}
}

func (l *Loader) readPath(path string) (Document, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return l.parse(r)
}

func (l *Loader) parse(r io.Reader) (Document, error) {
	if l.dialect == DialectFoyer {
		doc, err := foyer.Read(r)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	doc, err := gmso.Read(r)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// stem derives the cache key of a forcefield reference: the base name
// with the .xml and compression extensions stripped.
func stem(name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".zst", ".gz", ".xml"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// isXMLPath reports whether a reference names an XML file rather than a
// registered or bundled forcefield.
func isXMLPath(name string) bool {
	plain := strings.TrimSuffix(strings.TrimSuffix(name, ".zst"), ".gz")
	return strings.HasSuffix(plain, ".xml")
}

// zstReader gives a zstd decoder the Close an io.ReadCloser needs and
// ties the lifetime of the underlying file to it.
type zstReader struct {
	*zstd.Decoder
	f *os.File
}

func (r zstReader) Close() error {
	r.Decoder.Close()
	return r.f.Close()
}

// gzReader closes the underlying file along with the gzip stream.
type gzReader struct {
	*gzip.Reader
	f *os.File
}

func (r gzReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// openReader opens a forcefield file, transparently decompressing .zst
// and .gz files by extension.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open force-field file %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("Couldn't decompress force-field file %s: %w", path, err)
		}
		return zstReader{Decoder: dec, f: f}, nil
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("Couldn't decompress force-field file %s: %w", path, err)
		}
		return gzReader{Reader: gz, f: f}, nil
	}
	return f, nil
}
