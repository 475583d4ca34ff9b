package syntax

import (
	"testing"

	"github.com/robertkrimen/otto/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
)

func requireSyntaxError(t *testing.T, err error) {
	t.Helper()
	var e *runtime.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, runtime.SyntaxError, e.Kind)
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		strict bool
	}{
		{"sloppy", "var x = 1;", false},
		{"double quoted", `"use strict"; var x;`, true},
		{"single quoted", `'use strict'; var x;`, true},
		{"after other directive", `"foo"; "use strict";`, true},
		{"not first", `var x; "use strict";`, false},
		{"escaped", `"use\x20strict";`, false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseScript("test.js", tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.strict, p.Strict())
			assert.Equal(t, "test.js", p.Name())
			assert.Equal(t, tt.src, p.Source())
			assert.Empty(t, p.Params())
			assert.NotNil(t, p.AST())
		})
	}
}

func TestParseScriptError(t *testing.T) {
	_, err := ParseScript("bad.js", "var = ;")
	requireSyntaxError(t, err)

	_, err = Parser{}.ParseScript("bad.js", "if (")
	requireSyntaxError(t, err)
}

func TestParseFunction(t *testing.T) {
	fn, err := ParseFunction("a, b", "return a + b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fn.Params())
	assert.False(t, fn.Strict())
	assert.Contains(t, fn.Source(), "return a + b")

	fn, err = ParseFunction("", "'use strict'; return this")
	require.NoError(t, err)
	assert.True(t, fn.Strict())
	assert.Empty(t, fn.Params())

	lit, err := Parser{}.ParseFunction("x", "return x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, lit.Params())
}

func TestStrictParameterRestrictions(t *testing.T) {
	for _, params := range []string{"a, a", "eval", "arguments"} {
		_, err := ParseFunction(params, "'use strict';")
		requireSyntaxError(t, err)

		_, err = ParseFunction(params, "return 1")
		assert.NoError(t, err, params)
	}
}

func TestNestedFunctionInheritsStrictness(t *testing.T) {
	p, err := ParseScript("nested.js", `"use strict"; function f(a) { return a; }`)
	require.NoError(t, err)

	decls := p.AST().DeclarationList
	require.NotEmpty(t, decls)
	var found bool
	for _, d := range decls {
		fd, ok := d.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		fn, err := NewFunction(fd.Function, p.Strict())
		require.NoError(t, err)
		assert.True(t, fn.Strict())
		assert.Equal(t, "f", fn.Name())
		found = true
	}
	assert.True(t, found)
}
