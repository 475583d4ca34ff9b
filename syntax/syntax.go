// Package syntax adapts the otto ECMAScript 5 parser to the runtime's
// FunctionLiteral and Parser shapes.
package syntax

import (
	"errors"

	"github.com/example/jscore/runtime"
	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
)

// Parser implements runtime.Parser with otto.
type Parser struct{}

var _ runtime.Parser = Parser{}

// ParseScript parses a global script body.
func (Parser) ParseScript(name, src string) (runtime.FunctionLiteral, error) {
	p, err := ParseScript(name, src)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFunction parses a function from the parameter and body texts the
// Function constructor receives.
func (Parser) ParseFunction(params, body string) (runtime.FunctionLiteral, error) {
	fn, err := ParseFunction(params, body)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Program is a parsed script. It has no parameters; its name is the
// script name.
type Program struct {
	name    string
	src     string
	program *ast.Program
	strict  bool
}

var _ runtime.FunctionLiteral = (*Program)(nil)

func ParseScript(name, src string) (*Program, error) {
	program, err := parser.ParseFile(nil, name, src, 0)
	if err != nil {
		return nil, syntaxError(err)
	}
	return &Program{
		name:    name,
		src:     src,
		program: program,
		strict:  HasUseStrict(program.Body),
	}, nil
}

func (p *Program) Name() string      { return p.name }
func (p *Program) Params() []string  { return nil }
func (p *Program) Source() string    { return p.src }
func (p *Program) Strict() bool      { return p.strict }
func (p *Program) AST() *ast.Program { return p.program }

// Function is a parsed function literal.
type Function struct {
	lit    *ast.FunctionLiteral
	params []string
	strict bool
}

var _ runtime.FunctionLiteral = (*Function)(nil)

func ParseFunction(params, body string) (*Function, error) {
	lit, err := parser.ParseFunction(params, body)
	if err != nil {
		return nil, syntaxError(err)
	}
	return NewFunction(lit, false)
}

// NewFunction wraps a function literal found inside parsed code. Functions
// nested in strict code are strict. Strict functions may not repeat a
// parameter name or bind eval or arguments as a parameter (ES5 13.1).
func NewFunction(lit *ast.FunctionLiteral, outerStrict bool) (*Function, error) {
	fn := &Function{lit: lit, strict: outerStrict}
	if block, ok := lit.Body.(*ast.BlockStatement); ok && HasUseStrict(block.List) {
		fn.strict = true
	}
	if lit.ParameterList != nil {
		for _, id := range lit.ParameterList.List {
			fn.params = append(fn.params, id.Name)
		}
	}
	if fn.strict {
		seen := make(map[string]bool, len(fn.params))
		for _, p := range fn.params {
			if p == "eval" || p == "arguments" {
				return nil, runtime.NewSyntaxError("parameter name %s not allowed in strict code", p)
			}
			if seen[p] {
				return nil, runtime.NewSyntaxError("duplicate parameter name %s not allowed in strict code", p)
			}
			seen[p] = true
		}
	}
	return fn, nil
}

func (f *Function) Name() string {
	if f.lit.Name == nil {
		return ""
	}
	return f.lit.Name.Name
}

func (f *Function) Params() []string          { return f.params }
func (f *Function) Source() string            { return f.lit.Source }
func (f *Function) Strict() bool              { return f.strict }
func (f *Function) AST() *ast.FunctionLiteral { return f.lit }

// HasUseStrict reports whether body begins with a directive prologue
// containing an unescaped "use strict" directive.
func HasUseStrict(body []ast.Statement) bool {
	for _, stmt := range body {
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			return false
		}
		lit, ok := es.Expression.(*ast.StringLiteral)
		if !ok {
			return false
		}
		if lit.Literal == `"use strict"` || lit.Literal == `'use strict'` {
			return true
		}
	}
	return false
}

func syntaxError(err error) error {
	var list *parser.ErrorList
	if errors.As(err, &list) && list != nil && len(*list) > 0 {
		return runtime.NewSyntaxError("%s", (*list)[0].Error())
	}
	return runtime.NewSyntaxError("%s", err.Error())
}
