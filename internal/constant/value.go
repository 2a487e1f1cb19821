package constant

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// floatPrec is wide enough to hold every i64/usize value exactly.
const floatPrec = 256

// Value is the compile-time value of a comptime expression: an exact
// integer or an arbitrary-precision float.
type Value struct {
	isFloat bool
	i       *big.Int
	f       *big.Float
}

// Int wraps an int64.
func Int(n int64) Value { return Value{i: big.NewInt(n)} }

// Float wraps a float64.
func Float(x float64) Value {
	return Value{isFloat: true, f: new(big.Float).SetPrec(floatPrec).SetFloat64(x)}
}

// ParseInt parses an integer literal. Underscores and the 0x, 0o and 0b
// prefixes are accepted.
func ParseInt(lit string) (Value, error) {
	clean := strings.ReplaceAll(lit, "_", "")
	n, ok := new(big.Int).SetString(clean, 0)
	if !ok {
		return Value{}, fmt.Errorf("invalid integer literal %q", lit)
	}
	return Value{i: n}, nil
}

// ParseFloat parses a float literal, including scientific notation.
func ParseFloat(lit string) (Value, error) {
	clean := strings.ReplaceAll(lit, "_", "")
	f, _, err := big.ParseFloat(clean, 10, floatPrec, big.ToNearestEven)
	if err != nil {
		return Value{}, fmt.Errorf("invalid float literal %q: %w", lit, err)
	}
	return Value{isFloat: true, f: f}, nil
}

func (v Value) IsValid() bool { return v.i != nil || v.f != nil }
func (v Value) IsFloat() bool { return v.isFloat }

func (v Value) String() string {
	switch {
	case v.isFloat && v.f != nil:
		return v.f.Text('g', 10)
	case v.i != nil:
		return v.i.String()
	}
	return "<invalid>"
}

func (v Value) float() *big.Float {
	if v.isFloat {
		return v.f
	}
	return new(big.Float).SetPrec(floatPrec).SetInt(v.i)
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	if v.isFloat {
		return v.f.Sign()
	}
	return v.i.Sign()
}

// Int64 returns the value as an int64 when it is an integer that fits.
func (v Value) Int64() (int64, bool) {
	if v.isFloat || v.i == nil || !v.i.IsInt64() {
		return 0, false
	}
	return v.i.Int64(), true
}

// Neg returns -v.
func (v Value) Neg() Value {
	if v.isFloat {
		return Value{isFloat: true, f: new(big.Float).SetPrec(floatPrec).Neg(v.f)}
	}
	return Value{i: new(big.Int).Neg(v.i)}
}

// Binary folds a arithmetic operator over two comptime values. `/` is
// float division, `\` integer division. ok is false for an unknown operator
// or a division by zero.
func Binary(op string, a, b Value) (Value, bool) {
	if !a.IsValid() || !b.IsValid() {
		return Value{}, false
	}
	if op == "/" || a.isFloat || b.isFloat {
		x, y := a.float(), b.float()
		r := new(big.Float).SetPrec(floatPrec)
		switch op {
		case "+":
			r.Add(x, y)
		case "-":
			r.Sub(x, y)
		case "*":
			r.Mul(x, y)
		case "/":
			if y.Sign() == 0 {
				return Value{}, false
			}
			r.Quo(x, y)
		default:
			return Value{}, false
		}
		return Value{isFloat: true, f: r}, true
	}
	r := new(big.Int)
	switch op {
	case "+":
		r.Add(a.i, b.i)
	case "-":
		r.Sub(a.i, b.i)
	case "*":
		r.Mul(a.i, b.i)
	case "\\":
		if b.i.Sign() == 0 {
			return Value{}, false
		}
		r.Quo(a.i, b.i)
	case "%":
		if b.i.Sign() == 0 {
			return Value{}, false
		}
		r.Rem(a.i, b.i)
	default:
		return Value{}, false
	}
	return Value{i: r}, true
}

// Fits reports whether v is representable in tag. Boundary values fit.
// Float values checked against integer tags are truncated toward zero
// first, which is what an explicit conversion does.
func Fits(v Value, tag typesystem.Tag, pointerWidth int) bool {
	if !v.IsValid() {
		return true
	}
	switch tag {
	case typesystem.F32:
		return absLE(v.float(), math.MaxFloat32)
	case typesystem.F64:
		return absLE(v.float(), math.MaxFloat64)
	case typesystem.I32, typesystem.I64, typesystem.Usize:
		lo, hi := IntBounds(tag, pointerWidth)
		n := v.i
		if v.isFloat {
			if v.f.IsInf() {
				return false
			}
			n, _ = v.f.Int(nil)
		}
		return n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0
	}
	return true
}

func absLE(f *big.Float, max float64) bool {
	if f.IsInf() {
		return false
	}
	abs := new(big.Float).SetPrec(floatPrec).Abs(f)
	return abs.Cmp(new(big.Float).SetPrec(floatPrec).SetFloat64(max)) <= 0
}

// IntBounds returns the inclusive range of an integer tag.
func IntBounds(tag typesystem.Tag, pointerWidth int) (*big.Int, *big.Int) {
	switch tag {
	case typesystem.I32:
		return big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	case typesystem.I64:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case typesystem.Usize:
		if pointerWidth == 32 {
			return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint32)
		}
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)
	}
	return big.NewInt(0), big.NewInt(0)
}

// Describe renders the representable range of tag for diagnostics.
func Describe(tag typesystem.Tag, pointerWidth int) string {
	switch tag {
	case typesystem.I32, typesystem.I64, typesystem.Usize:
		lo, hi := IntBounds(tag, pointerWidth)
		return fmt.Sprintf("%s..=%s", lo, hi)
	case typesystem.F32:
		return fmt.Sprintf("±%g", math.MaxFloat32)
	case typesystem.F64:
		return fmt.Sprintf("±%g", math.MaxFloat64)
	}
	return tag.String()
}
