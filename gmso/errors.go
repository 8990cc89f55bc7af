/*
 * errors.go, part of forcefield-utilities.
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
	"fmt"
)

// ErrMissingMetadata is returned by ToFF when the document holds no
// FFMetaData block.
var ErrMissingMetadata = errors.New("gmso: document has no FFMetaData block")

// MalformedRecordError reports a record element that violates the shape
// of its tag, a Parameter with neither a value nor a sequence of values
// being the canonical case.
type MalformedRecordError struct {
	Tag    string // XML tag of the offending element
	Name   string // name attribute, when the element carries one
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("gmso: malformed %s: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("gmso: malformed %s %q: %s", e.Tag, e.Name, e.Reason)
}

// MissingKeyError reports a gap in an indexed attribute family, such as
// periodicity1 and periodicity3 without periodicity2.
type MissingKeyError struct {
	Tag string
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("gmso: %s: missing indexed attribute %q", e.Tag, e.Key)
}

// DuplicateDefinitionError reports a record whose identifier, or a
// symmetry-equivalent ordering of it, was already registered within its
// group.
type DuplicateDefinitionError struct {
	Category   Category
	Identifier string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("gmso: %s: %q duplicates an earlier definition or a symmetry-equivalent ordering of one",
		e.Category, e.Identifier)
}

// UnitError reports a unit that could not be resolved, neither as a unit
// expression nor as a physical constant, or a parameter that has no
// declared unit at all.
type UnitError struct {
	What string // what the unit was declared for
	Unit string // the spelling that failed to resolve, empty when undeclared
	Err  error
}

func (e *UnitError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("gmso: no unit declared for %s", e.What)
	}
	return fmt.Sprintf("gmso: can't resolve unit %q for %s: %v", e.Unit, e.What, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// ExpressionError reports a potential expression that could not be
// analyzed.
type ExpressionError struct {
	Expression string
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("gmso: invalid potential expression %q: %v", e.Expression, e.Err)
}

func (e *ExpressionError) Unwrap() error { return e.Err }
