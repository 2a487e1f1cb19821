package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
)

func TestMixedConcreteOperands(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("10")),
		f.Val("b", f.Named("i64"), f.Int("20")),
		f.Val("s", f.Named("i64"), f.Infix(f.Ident("a"), "+", f.Ident("b"))),
	)
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "type mismatch: i32 and i64 cannot be mixed without an explicit conversion", d.Message)
	assert.Equal(t, "convert one operand explicitly, e.g. `value:i64`", d.Help)

	f = newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("10")),
		f.Val("b", f.Named("i64"), f.Int("20")),
		f.Val("s", f.Named("i64"), f.Infix(f.Conv(f.Ident("a"), f.Named("i64")), "+", f.Ident("b"))),
		f.Val("u", nil, f.Infix(f.Conv(f.Ident("a"), f.Named("i64")), "+", f.Ident("b"))),
		f.Val("w", f.Named("f64"), f.Infix(f.Conv(f.Ident("a"), f.Named("f64")), "*", f.Ident("b"))),
	)
	f.clean(t)
	assertType(t, "i64", f.symbolType(t, "s"))
	assertType(t, "i64", f.symbolType(t, "u"))
	assertType(t, "f64", f.symbolType(t, "w"))
}

func TestComptimeAdaptsToConcreteOperand(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("c", f.Named("i64"), f.Int("5")),
		f.Val("d", nil, f.Infix(f.Ident("c"), "*", f.Int("3"))),
		f.Val("e", nil, f.Infix(f.Int("3"), "-", f.Ident("c"))),
		f.Val("g", f.Named("f32"), f.Float("1.5")),
		f.Val("h", nil, f.Infix(f.Ident("g"), "+", f.Int("2"))),
	)
	f.clean(t)
	assertType(t, "i64", f.symbolType(t, "d"))
	assertType(t, "i64", f.symbolType(t, "e"))
	assertType(t, "f32", f.symbolType(t, "h"))

	f = newFixture(nil)
	f.run(t,
		f.Val("c", f.Named("i64"), f.Int("5")),
		f.Val("d", nil, f.Infix(f.Ident("c"), "+", f.Float("3.5"))),
	)
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "comptime_float cannot adapt to i64 implicitly", d.Message)
}

func TestAdaptedOperandOverflow(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("r", nil, f.Infix(f.Ident("a"), "+", f.Int("3000000000"))),
	)
	d := f.single(t, diagnostics.ErrOverflow)
	assert.Equal(t, "value 3000000000 overflows i32", d.Message)
	assertType(t, "i32", f.symbolType(t, "r"))
}

func TestConstantFolding(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("wide", f.Named("i64"), f.Infix(f.Int("2147483647"), "+", f.Int("1"))),
		f.Val("free", nil, f.Infix(f.Int("2147483647"), "+", f.Int("1"))),
		f.Val("mixed", nil, f.Infix(f.Int("2"), "*", f.Float("1.5"))),
	)
	f.clean(t)
	assertType(t, "i64", f.symbolType(t, "wide"))
	assertType(t, "comptime_int", f.symbolType(t, "free"))
	assertType(t, "comptime_float", f.symbolType(t, "mixed"))

	f = newFixture(nil)
	f.run(t, f.Val("narrow", f.Named("i32"), f.Infix(f.Int("2147483647"), "+", f.Int("1"))))
	d := f.single(t, diagnostics.ErrOverflow)
	assert.Equal(t, "value 2147483648 overflows i32", d.Message)

	f = newFixture(nil)
	f.run(t,
		f.Val("k", nil, f.Infix(f.Int("1000000"), "*", f.Int("1000000"))),
		f.Val("n", f.Named("i32"), f.Ident("k")),
	)
	f.single(t, diagnostics.ErrOverflow)
}

func TestDivisionOperators(t *testing.T) {
	t.Run("slash on comptime is float", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Val("q", nil, f.Infix(f.Int("7"), "/", f.Int("2"))),
			f.Val("w", nil, f.Infix(f.Int("7"), "\\", f.Int("2"))),
			f.Val("m", nil, f.Infix(f.Int("7"), "%", f.Int("2"))),
		)
		f.clean(t)
		assertType(t, "comptime_float", f.symbolType(t, "q"))
		assertType(t, "comptime_int", f.symbolType(t, "w"))
		assertType(t, "comptime_int", f.symbolType(t, "m"))
	})
	t.Run("slash result into integer", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Val("q", f.Named("i32"), f.Infix(f.Int("7"), "/", f.Int("2"))))
		f.single(t, diagnostics.ErrTypeMismatch)
	})
	t.Run("slash on concrete integers", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Val("a", f.Named("i32"), f.Int("10")),
			f.Val("r", nil, f.Infix(f.Ident("a"), "/", f.Int("2"))),
		)
		d := f.single(t, diagnostics.ErrTypeMismatch)
		assert.Equal(t, "operator / is float division and cannot produce i32", d.Message)
		assert.Equal(t, "use `\\` for integer division, or convert an operand: `value:f32`", d.Help)
	})
	t.Run("backslash on concrete integers", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Val("a", f.Named("i64"), f.Int("10")),
			f.Val("r", nil, f.Infix(f.Ident("a"), "\\", f.Int("3"))),
			f.Val("m", nil, f.Infix(f.Ident("a"), "%", f.Int("3"))),
		)
		f.clean(t)
		assertType(t, "i64", f.symbolType(t, "r"))
	})
	t.Run("integer operators reject floats", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t,
			f.Val("x", f.Named("f64"), f.Float("1.5")),
			f.Val("r", nil, f.Infix(f.Ident("x"), "\\", f.Int("2"))),
		)
		d := f.single(t, diagnostics.ErrTypeMismatch)
		assert.Equal(t, "operator \\ requires integer operands, got f64 and comptime_int", d.Message)
		assert.Equal(t, "use `/` for float division", d.Help)

		f = newFixture(nil)
		f.run(t, f.Val("m", nil, f.Infix(f.Int("5"), "%", f.Float("2.0"))))
		d = f.single(t, diagnostics.ErrTypeMismatch)
		assert.Equal(t, "operator % requires integer operands, got comptime_int and comptime_float", d.Message)
	})
	t.Run("constant division by zero", func(t *testing.T) {
		f := newFixture(nil)
		f.run(t, f.Val("z", nil, f.Infix(f.Int("1"), "\\", f.Int("0"))))
		d := f.single(t, diagnostics.ErrTypeMismatch)
		assert.Equal(t, "division by zero in constant expression", d.Message)
	})
}

func TestUnaryOperators(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("4")),
		f.Val("n", nil, f.Prefix("-", f.Ident("a"))),
		f.Val("c", nil, f.Prefix("-", f.Float("2.5"))),
		f.Val("t", nil, f.Prefix("!", f.Bool(false))),
	)
	f.clean(t)
	assertType(t, "i32", f.symbolType(t, "n"))
	assertType(t, "comptime_float", f.symbolType(t, "c"))
	assertType(t, "bool", f.symbolType(t, "t"))

	tests := []struct {
		name string
		op   string
		msg  string
	}{
		{"negate bool", "-", "operator - is not defined for bool"},
		{"not on number", "!", "operator ! requires bool, got usize"},
		{"negate usize", "-", "cannot negate a usize value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			operand := "u"
			if tt.name == "negate bool" {
				operand = "b"
			}
			f.run(t,
				f.Val("u", f.Named("usize"), f.Int("3")),
				f.Val("b", f.Named("bool"), f.Bool(true)),
				f.Val("r", nil, f.Prefix(tt.op, f.Ident(operand))),
			)
			d := f.single(t, diagnostics.ErrTypeMismatch)
			assert.Equal(t, tt.msg, d.Message)
		})
	}
}

func TestComparisons(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("lt", nil, f.Infix(f.Ident("a"), "<", f.Int("2"))),
		f.Val("eq", nil, f.Infix(f.Str("x"), "==", f.Str("y"))),
		f.Val("ne", nil, f.Infix(f.Bool(true), "!=", f.Bool(false))),
		f.Val("ct", nil, f.Infix(f.Int("1"), ">=", f.Float("0.5"))),
	)
	f.clean(t)
	for _, name := range []string{"lt", "eq", "ne", "ct"} {
		assertType(t, "bool", f.symbolType(t, name))
	}

	tests := []struct {
		name  string
		left  string
		op    string
		right string
		code  diagnostics.ErrorCode
		msg   string
	}{
		{"ordered strings", "s", "<", "s", diagnostics.ErrTypeMismatch, "operator < requires numeric operands, got string and string"},
		{"bool against int", "b", "==", "a", diagnostics.ErrTypeMismatch, "type mismatch: bool and i32"},
		{"mixed concrete", "a", ">", "w", diagnostics.ErrTypeMismatch, "type mismatch: i32 and i64 cannot be mixed without an explicit conversion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			f.run(t,
				f.Val("a", f.Named("i32"), f.Int("1")),
				f.Val("w", f.Named("i64"), f.Int("1")),
				f.Val("b", f.Named("bool"), f.Bool(true)),
				f.Val("s", f.Named("string"), f.Str("x")),
				f.Val("r", nil, f.Infix(f.Ident(tt.left), tt.op, f.Ident(tt.right))),
			)
			d := f.single(t, tt.code)
			assert.Equal(t, tt.msg, d.Message)
			assertType(t, "bool", f.symbolType(t, "r"))
		})
	}

	f = newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("r", nil, f.Infix(f.Ident("a"), "<", f.Int("3000000000"))),
	)
	f.single(t, diagnostics.ErrOverflow)
}

func TestLogicalOperators(t *testing.T) {
	f := newFixture(nil)
	f.run(t, f.Val("ok", nil, f.Infix(f.Bool(true), "&&", f.Infix(f.Int("1"), "<", f.Int("2")))))
	f.clean(t)
	assertType(t, "bool", f.symbolType(t, "ok"))

	f = newFixture(nil)
	f.run(t, f.Val("bad", nil, f.Infix(f.Bool(true), "||", f.Int("1"))))
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "operator || requires bool operands, got comptime_int", d.Message)
}

func TestArithmeticRejectsNonNumeric(t *testing.T) {
	f := newFixture(nil)
	f.run(t, f.Val("s", nil, f.Infix(f.Str("a"), "+", f.Str("b"))))
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "operator + is not defined for string", d.Message)

	f = newFixture(nil)
	f.run(t, f.Val("s", nil, f.Infix(f.Int("1"), "+", f.Bool(true))))
	d = f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "operator + is not defined for bool", d.Message)
}

func TestMarkedOperandKeepsFloatLiteralFraction(t *testing.T) {
	f := newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("r", nil, f.Infix(f.Conv(f.Ident("a"), f.Named("i64")), "+", f.Float("2.5"))),
	)
	d := f.single(t, diagnostics.ErrTypeMismatch)
	assert.Equal(t, "comptime_float cannot adapt to i64 implicitly", d.Message)
	assert.Equal(t, "use an explicit conversion: `value:i64`", d.Help)
	assert.NotEmpty(t, d.Note)

	f = newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("r", f.Named("i32"), f.Infix(f.Float("2.5"), "*", f.Conv(f.Ident("a"), f.Named("i64")))),
	)
	assert.Equal(t, "comptime_float cannot adapt to i32 implicitly", f.single(t, diagnostics.ErrTypeMismatch).Message)

	f = newFixture(nil)
	f.run(t,
		f.Val("a", f.Named("i32"), f.Int("1")),
		f.Val("fr", nil, f.Infix(f.Conv(f.Ident("a"), f.Named("f64")), "+", f.Float("2.5"))),
		f.Val("fi", f.Named("f64"), f.Infix(f.Conv(f.Ident("a"), f.Named("i64")), "+", f.Float("2.5"))),
		f.Val("ti", nil, f.Infix(f.Conv(f.Ident("a"), f.Named("i64")), "+", f.Conv(f.Float("2.5"), f.Named("i64")))),
	)
	f.clean(t)
	assertType(t, "f64", f.symbolType(t, "fr"))
	assertType(t, "f64", f.symbolType(t, "fi"))
	assertType(t, "i64", f.symbolType(t, "ti"))
}
