package typesystem

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Type is the closed set of types the resolver produces: Scalar,
// ConcreteArray, ComptimeArray, Range and ComptimeRange.
type Type interface {
	String() string
	Equal(Type) bool
	IsComptime() bool
	typeNode()
}

// Scalar is a single-value type identified by its tag.
type Scalar struct {
	Tag Tag
}

func (s Scalar) String() string   { return s.Tag.String() }
func (s Scalar) IsComptime() bool { return s.Tag.IsComptime() }
func (s Scalar) typeNode()        {}

func (s Scalar) Equal(other Type) bool {
	o, ok := other.(Scalar)
	return ok && o.Tag == s.Tag
}

var (
	TUnknown       = Scalar{Tag: Unknown}
	TI32           = Scalar{Tag: I32}
	TI64           = Scalar{Tag: I64}
	TF32           = Scalar{Tag: F32}
	TF64           = Scalar{Tag: F64}
	TUsize         = Scalar{Tag: Usize}
	TString        = Scalar{Tag: String}
	TBool          = Scalar{Tag: Bool}
	TVoid          = Scalar{Tag: Void}
	TComptimeInt   = Scalar{Tag: ComptimeInt}
	TComptimeFloat = Scalar{Tag: ComptimeFloat}
)

// Dim is one axis of a concrete array type: a positive size or Wildcard.
type Dim int

// Wildcard is the `_` axis of `[_]T`: any length is accepted.
const Wildcard Dim = -1

func (d Dim) IsWildcard() bool { return d == Wildcard }

func (d Dim) String() string {
	if d == Wildcard {
		return "_"
	}
	return fmt.Sprintf("%d", int(d))
}

// ConcreteArray is a materialized array type such as [3]i32 or [_][4]f64.
type ConcreteArray struct {
	Element Tag
	Dims    []Dim
}

// NewConcreteArray validates that the element is a concrete value type and
// that there is at least one axis, each positive or wildcard.
func NewConcreteArray(element Tag, dims ...Dim) (ConcreteArray, error) {
	if !element.IsConcrete() || element == Void {
		return ConcreteArray{}, errors.Errorf("array element must be a concrete value type, got %s", element)
	}
	if len(dims) == 0 {
		return ConcreteArray{}, errors.New("array type needs at least one dimension")
	}
	for i, d := range dims {
		if d != Wildcard && d <= 0 {
			return ConcreteArray{}, errors.Errorf("dimension %d of [%s]%s must be positive, got %d", i, dimList(dims), element, int(d))
		}
	}
	return ConcreteArray{Element: element, Dims: append([]Dim(nil), dims...)}, nil
}

// MustConcreteArray is NewConcreteArray for statically known shapes.
func MustConcreteArray(element Tag, dims ...Dim) ConcreteArray {
	arr, err := NewConcreteArray(element, dims...)
	if err != nil {
		panic(err)
	}
	return arr
}

func (a ConcreteArray) String() string {
	var sb strings.Builder
	for _, d := range a.Dims {
		sb.WriteString("[" + d.String() + "]")
	}
	sb.WriteString(a.Element.String())
	return sb.String()
}

func (a ConcreteArray) IsComptime() bool { return false }
func (a ConcreteArray) typeNode()        {}

func (a ConcreteArray) Equal(other Type) bool {
	o, ok := other.(ConcreteArray)
	if !ok || o.Element != a.Element || len(o.Dims) != len(a.Dims) {
		return false
	}
	for i := range a.Dims {
		if a.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return true
}

// HasWildcard reports whether any axis is `_`.
func (a ConcreteArray) HasWildcard() bool {
	for _, d := range a.Dims {
		if d == Wildcard {
			return true
		}
	}
	return false
}

// Sub drops the outermost axis. For a one-dimensional array the result is
// the element scalar.
func (a ConcreteArray) Sub() Type {
	if len(a.Dims) == 1 {
		return Scalar{Tag: a.Element}
	}
	return ConcreteArray{Element: a.Element, Dims: append([]Dim(nil), a.Dims[1:]...)}
}

// WithOuter replaces the outermost axis.
func (a ConcreteArray) WithOuter(d Dim) ConcreteArray {
	dims := append([]Dim(nil), a.Dims...)
	dims[0] = d
	return ConcreteArray{Element: a.Element, Dims: dims}
}

// ComptimeArray is the type of an array literal whose element type is still
// comptime. Every dimension is known and positive.
type ComptimeArray struct {
	Element Tag
	Dims    []int
}

// NewComptimeArray validates a comptime element tag and positive dimensions.
func NewComptimeArray(element Tag, dims ...int) (ComptimeArray, error) {
	if !element.IsComptime() {
		return ComptimeArray{}, errors.Errorf("comptime array element must be comptime_int or comptime_float, got %s", element)
	}
	if len(dims) == 0 {
		return ComptimeArray{}, errors.New("comptime array needs at least one dimension")
	}
	for i, d := range dims {
		if d <= 0 {
			return ComptimeArray{}, errors.Errorf("dimension %d of comptime array must be positive, got %d", i, d)
		}
	}
	return ComptimeArray{Element: element, Dims: append([]int(nil), dims...)}, nil
}

// MustComptimeArray is NewComptimeArray for statically known shapes.
func MustComptimeArray(element Tag, dims ...int) ComptimeArray {
	arr, err := NewComptimeArray(element, dims...)
	if err != nil {
		panic(err)
	}
	return arr
}

func (a ComptimeArray) String() string {
	var sb strings.Builder
	for _, d := range a.Dims {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	sb.WriteString(a.Element.String())
	return sb.String()
}

func (a ComptimeArray) IsComptime() bool { return true }
func (a ComptimeArray) typeNode()        {}

func (a ComptimeArray) Equal(other Type) bool {
	o, ok := other.(ComptimeArray)
	return ok && o.Element == a.Element && sameInts(a.Dims, o.Dims)
}

// Sub drops the outermost axis.
func (a ComptimeArray) Sub() Type {
	if len(a.Dims) == 1 {
		return Scalar{Tag: a.Element}
	}
	return ComptimeArray{Element: a.Element, Dims: append([]int(nil), a.Dims[1:]...)}
}

// CanMaterializeTo reports whether the literal fits target's shape: equal
// dimension count and every axis equal or wildcard. The element types are
// checked separately with CanAdapt.
func (a ComptimeArray) CanMaterializeTo(target ConcreteArray) bool {
	return CheckShape(a.Dims, target.Dims) == nil
}

// MaterializeTo fixes the literal to target, filling wildcard axes with the
// literal's own lengths. Callers must have checked CanMaterializeTo.
func (a ComptimeArray) MaterializeTo(target ConcreteArray) ConcreteArray {
	dims := make([]Dim, len(a.Dims))
	for i, d := range a.Dims {
		dims[i] = Dim(d)
	}
	return ConcreteArray{Element: target.Element, Dims: dims}
}

// Range is the type of a range over a concrete numeric element.
type Range struct {
	Element   Tag
	HasStart  bool
	HasEnd    bool
	HasStep   bool
	Inclusive bool
}

// NewRange validates a concrete numeric element. Use NewComptimeRange for
// comptime elements.
func NewRange(element Tag, hasStart, hasEnd, hasStep, inclusive bool) (Range, error) {
	if !element.IsNumeric() || element.IsComptime() {
		return Range{}, errors.Errorf("range element must be a concrete numeric type, got %s", element)
	}
	return Range{Element: element, HasStart: hasStart, HasEnd: hasEnd, HasStep: hasStep, Inclusive: inclusive}, nil
}

func (r Range) String() string   { return "range[" + r.Element.String() + "]" }
func (r Range) IsComptime() bool { return false }
func (r Range) typeNode()        {}

// Equal compares element types only; bounds presence is a property of the
// value, not of the type.
func (r Range) Equal(other Type) bool {
	o, ok := other.(Range)
	return ok && o.Element == r.Element
}

func (r Range) IsBounded() bool      { return r.HasStart && r.HasEnd }
func (r Range) CanMaterialize() bool { return r.IsBounded() }
func (r Range) CanIterate() bool     { return r.HasStart }
func (r Range) RequiresStep() bool   { return r.Element.IsFloat() }

// WithElement keeps the bound flags and swaps the element.
func (r Range) WithElement(tag Tag) Range {
	r.Element = tag
	return r
}

// ComptimeRange is a range whose element is still comptime.
type ComptimeRange struct {
	Range
}

// NewComptimeRange validates a comptime element.
func NewComptimeRange(element Tag, hasStart, hasEnd, hasStep, inclusive bool) (ComptimeRange, error) {
	if !element.IsComptime() {
		return ComptimeRange{}, errors.Errorf("comptime range element must be comptime_int or comptime_float, got %s", element)
	}
	return ComptimeRange{Range{Element: element, HasStart: hasStart, HasEnd: hasEnd, HasStep: hasStep, Inclusive: inclusive}}, nil
}

func (r ComptimeRange) String() string   { return "range[" + r.Element.String() + "]" }
func (r ComptimeRange) IsComptime() bool { return true }

func (r ComptimeRange) Equal(other Type) bool {
	o, ok := other.(ComptimeRange)
	return ok && o.Element == r.Element
}

// CanAdaptTo reports whether the range can take target as its element:
// comptime_int ranges adapt to every numeric type including usize,
// comptime_float ranges only to float types.
func (r ComptimeRange) CanAdaptTo(target Tag) bool {
	return CanAdapt(r.Element, target)
}

// AdaptTo returns the concrete range over target.
func (r ComptimeRange) AdaptTo(target Tag) Range {
	return r.Range.WithElement(target)
}

// IsUnknown reports whether t is missing or the unknown scalar.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	s, ok := t.(Scalar)
	return ok && s.Tag == Unknown
}

// IsVoid reports whether t is the void scalar.
func IsVoid(t Type) bool {
	s, ok := t.(Scalar)
	return ok && s.Tag == Void
}

// ScalarTag returns the tag of a scalar type.
func ScalarTag(t Type) (Tag, bool) {
	s, ok := t.(Scalar)
	if !ok {
		return Unknown, false
	}
	return s.Tag, true
}

// ElementTag returns the element tag of arrays and ranges and the tag of
// scalars.
func ElementTag(t Type) Tag {
	switch tt := t.(type) {
	case Scalar:
		return tt.Tag
	case ConcreteArray:
		return tt.Element
	case ComptimeArray:
		return tt.Element
	case Range:
		return tt.Element
	case ComptimeRange:
		return tt.Element
	}
	return Unknown
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dimList(dims []Dim) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.String()
	}
	return strings.Join(parts, "][")
}
