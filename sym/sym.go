/*
 * sym.go, part of forcefield-utilities.
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

// Package sym extracts symbol information from potential-energy
// expressions. A force field holds a handful of distinct expressions
// shared by hundreds of typed records, so the independent-variable
// computation is memoized.
package sym

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Validate parses an expression and reports whether it is a well-formed
// potential expression.
func Validate(expression string) error {
	tree, err := parser.Parse(expression)
	if err != nil {
		return fmt.Errorf("sym: can't parse expression %q: %w", expression, err)
	}
	return collect(tree.Node, nil)
}

// FreeSymbols returns the sorted set of variable names appearing in an
// expression. Function names are not symbols: in
// "k*(1+cos(n*phi-phi_eq))" the free symbols are k, n, phi and phi_eq.
func FreeSymbols(expression string) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("sym: can't parse expression %q: %w", expression, err)
	}
	free := map[string]struct{}{}
	if err := collect(tree.Node, free); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(free))
	for name := range free {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

const memoLimit = 128

var (
	memoMu sync.Mutex
	memo   = map[string][]string{}
)

// IndependentVars returns the free symbols of an expression minus the
// given parameter names, sorted. For the harmonic bond expression
// "0.5*k*(r-r_eq)**2" with parameters k and r_eq that leaves just r.
// Results are memoized on the (expression, parameters) pair; the cache is
// flushed once it holds memoLimit entries.
func IndependentVars(expression string, parameters []string) ([]string, error) {
	sorted := make([]string, len(parameters))
	copy(sorted, parameters)
	sort.Strings(sorted)
	key := expression + "\x00" + strings.Join(sorted, "\x00")

	memoMu.Lock()
	if cached, ok := memo[key]; ok {
		memoMu.Unlock()
		out := make([]string, len(cached))
		copy(out, cached)
		return out, nil
	}
	memoMu.Unlock()

	free, err := FreeSymbols(expression)
	if err != nil {
		return nil, err
	}
	params := map[string]struct{}{}
	for _, p := range sorted {
		params[p] = struct{}{}
	}
	indep := make([]string, 0, len(free))
	for _, name := range free {
		if _, isParam := params[name]; !isParam {
			indep = append(indep, name)
		}
	}

	memoMu.Lock()
	if len(memo) >= memoLimit {
		memo = map[string][]string{}
	}
	memo[key] = indep
	memoMu.Unlock()

	out := make([]string, len(indep))
	copy(out, indep)
	return out, nil
}

// collect walks a parsed expression accumulating identifier names. The
// free map may be nil when only validation is wanted. Callee names of
// function calls are skipped; their arguments are walked.
func collect(node ast.Node, free map[string]struct{}) error {
	add := func(name string) {
		if free != nil {
			free[name] = struct{}{}
		}
	}
	switch n := node.(type) {
	case *ast.IdentifierNode:
		add(n.Value)
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.StringNode, *ast.NilNode, *ast.ConstantNode:
	case *ast.UnaryNode:
		return collect(n.Node, free)
	case *ast.BinaryNode:
		if err := collect(n.Left, free); err != nil {
			return err
		}
		return collect(n.Right, free)
	case *ast.CallNode:
		if _, isIdent := n.Callee.(*ast.IdentifierNode); !isIdent {
			if err := collect(n.Callee, free); err != nil {
				return err
			}
		}
		for _, arg := range n.Arguments {
			if err := collect(arg, free); err != nil {
				return err
			}
		}
	case *ast.BuiltinNode:
		for _, arg := range n.Arguments {
			if err := collect(arg, free); err != nil {
				return err
			}
		}
	case *ast.ConditionalNode:
		if err := collect(n.Cond, free); err != nil {
			return err
		}
		if err := collect(n.Exp1, free); err != nil {
			return err
		}
		return collect(n.Exp2, free)
	default:
		return fmt.Errorf("sym: unsupported construct %T in expression", node)
	}
	return nil
}
