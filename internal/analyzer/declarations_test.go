package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
)

func TestValPreservesComptime(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("x", nil, f.Int("42")),
		f.Val("a", f.Named("i32"), f.Ident("x")),
		f.Val("b", f.Named("f64"), f.Ident("x")),
		f.Val("c", f.Named("usize"), f.Ident("x")),
		f.Val("h", nil, f.Float("0.5")),
	)
	f.clean(t)
	assertType(t, "comptime_int", f.symbolType(t, "x"))
	assertType(t, "i32", f.symbolType(t, "a"))
	assertType(t, "f64", f.symbolType(t, "b"))
	assertType(t, "usize", f.symbolType(t, "c"))
	assertType(t, "comptime_float", f.symbolType(t, "h"))
}

func TestDeclarationOverflow(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		lit  string
		neg  bool
		ok   bool
	}{
		{"i32 max", "i32", "2147483647", false, true},
		{"i32 max+1", "i32", "2147483648", false, false},
		{"i32 min", "i32", "2147483648", true, true},
		{"i32 min-1", "i32", "2147483649", true, false},
		{"i64 max+1", "i64", "9223372036854775808", false, false},
		{"usize zero", "usize", "0", false, true},
		{"usize negative", "usize", "1", true, false},
		{"usize max", "usize", "18446744073709551615", false, true},
		{"f32 from int", "f32", "16777217", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			var value ast.Expression = f.Int(tt.lit)
			if tt.neg {
				value = f.Prefix("-", value)
			}
			f.run(t, f.Val("x", f.Named(tt.typ), value))
			if tt.ok {
				f.clean(t)
				return
			}
			d := f.single(t, diagnostics.ErrOverflow)
			assert.Contains(t, d.Message, "overflows "+tt.typ)
			assert.Contains(t, d.Note, tt.typ+" holds ")
			assert.NotEmpty(t, d.Help)
		})
	}
}

func TestPreservedValueIsCheckedAtEachUse(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("big", nil, f.Int("3000000000")),
		f.Val("wide", f.Named("i64"), f.Ident("big")),
		f.Val("narrow", f.Named("i32"), f.Ident("big")),
	)
	d := f.single(t, diagnostics.ErrOverflow)
	assert.Equal(t, "value 3000000000 overflows i32", d.Message)
	assert.Equal(t, "use a wider type such as `i64`", d.Help)
}

func TestFloatLiteralNeverAdaptsToInteger(t *testing.T) {
	f := newFixture(nil)
	f.run(t, f.Val("x", f.Named("i32"), f.Float("3.14")))
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "comptime_float cannot adapt to i32 implicitly", d.Message)
	assert.Equal(t, "use an explicit conversion: `value:i32`", d.Help)
	assert.NotEmpty(t, d.Note)

	f = newFixture(nil)
	f.run(t, f.Val("x", f.Named("i32"), f.Conv(f.Float("3.14"), f.Named("i32"))))
	f.clean(t)
	assertType(t, "i32", f.symbolType(t, "x"))
}

func TestConversionOverflow(t *testing.T) {
	f := newFixture(nil)
	f.run(t, f.Val("x", nil, f.Conv(f.Float("4294967296.5"), f.Named("i32"))))
	f.single(t, diagnostics.ErrOverflow)
	assertType(t, "i32", f.symbolType(t, "x"))
}

func TestMutRequiresAnnotation(t *testing.T) {
	tests := []struct {
		name  string
		value func(f *fixture) ast.Expression
		help  string
	}{
		{"int", func(f *fixture) ast.Expression { return f.Int("42") }, "`mut m: i32 = ...`"},
		{"float", func(f *fixture) ast.Expression { return f.Float("2.5") }, "`mut m: f64 = ...`"},
		{"array", func(f *fixture) ast.Expression { return f.Array(f.Int("1"), f.Int("2"), f.Int("3")) }, "`mut m: [3]i32 = ...`"},
		{"range", func(f *fixture) ast.Expression { return f.Range(f.Int("0"), f.Int("9"), nil) }, "`mut m: range[i32] = ...`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			f.run(t, f.Mut("m", nil, tt.value(f)))
			d := f.single(t, diagnostics.ErrMissingAnnotation)
			assert.Contains(t, d.Help, tt.help)
		})
	}

	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Mut("n", nil, f.Ident("a")),
	)
	f.clean(t)
	assertType(t, "i32", f.symbolType(t, "n"))
}

func TestUndef(t *testing.T) {
	t.Run("assigned before use", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Mut("buf", f.Named("i32"), f.Undef()),
			f.Assign("buf", f.Int("5")),
			f.Val("w", f.Named("i32"), f.Ident("buf")),
		)
		f.clean(t)
	})
	t.Run("read before assignment", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Mut("buf", f.Named("i32"), f.Undef()),
			f.Val("w", f.Named("i32"), f.Ident("buf")),
		)
		d := f.single(t, diagnostics.ErrScope)
		assert.Equal(t, "buf is read before it is initialized", d.Message)
	})
	t.Run("without annotation", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Mut("u", nil, f.Undef()))
		f.single(t, diagnostics.ErrMissingAnnotation)
	})
	t.Run("val", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Val("v", f.Named("i32"), f.Undef()))
		d := f.single(t, diagnostics.ErrMutability)
		assert.Equal(t, "declare it as `mut v: i32 = undef`", d.Help)
	})
	t.Run("as an operand", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Val("v", f.Named("i32"), f.Infix(f.Undef(), "+", f.Int("1"))))
		f.single(t, diagnostics.ErrMissingAnnotation)
	})
}

func TestVoidBindings(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Func("nothing", nil, nil, f.Block()),
		f.Val("x", nil, f.Call("nothing")),
	)
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "cannot bind x to a void value", d.Message)

	f = newFixture(nil)
	f.run(t, f.Val("y", f.Named("void"), f.Int("1")))
	d = f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "variable y cannot have type void", d.Message)
}

func TestDeclarationScopeErrors(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("x", nil, f.Int("1")),
		f.Val("x", nil, f.Int("2")),
	)
	d := f.single(t, diagnostics.ErrScope)
	assert.Equal(t, "x is already declared in this scope", d.Message)

	f = newFixture(nil)
	f.run(t, f.Val("x", f.Named("i32"), f.Ident("missing")))
	d = f.single(t, diagnostics.ErrScope)
	assert.Equal(t, "undeclared identifier missing", d.Message)

	f = newFixture(nil)
	f.run(t, f.Val("x", f.Named("i16"), f.Int("1")))
	d = f.single(t, diagnostics.ErrScope)
	assert.Equal(t, "unknown type i16", d.Message)
}

func TestAssignment(t *testing.T) {
	t.Run("immutable", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Val("x", f.Named("i32"), f.Int("1")),
			f.Assign("x", f.Int("2")),
		)
		d := f.single(t, diagnostics.ErrMutability)
		assert.Equal(t, "cannot assign to immutable x", d.Message)
		assert.Equal(t, "declare it with `mut x: i32`", d.Help)
	})
	t.Run("same type or comptime", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Mut("y", f.Named("i32"), f.Int("1")),
			f.Val("z", f.Named("i32"), f.Int("7")),
			f.Assign("y", f.Int("2")),
			f.Assign("y", f.Ident("z")),
		)
		f.clean(t)
	})
	t.Run("different concrete type", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Mut("y", f.Named("i32"), f.Int("1")),
			f.Val("w", f.Named("i64"), f.Int("5")),
			f.Assign("y", f.Ident("w")),
			f.Assign("y", f.Conv(f.Ident("w"), f.Named("i32"))),
		)
		d := f.single(t, diagnostics.ErrTypeMismatch)
		assert.Equal(t, "assignment to y: cannot use i64 where i32 is expected", d.Message)
		assert.Equal(t, "convert explicitly: `value:i32`", d.Help)
	})
	t.Run("overflow", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Mut("y", f.Named("i32"), f.Int("1")),
			f.Assign("y", f.Int("3000000000")),
		)
		f.single(t, diagnostics.ErrOverflow)
	})
	t.Run("undeclared", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Assign("q", f.Int("1")))
		f.single(t, diagnostics.ErrScope)
	})
}
