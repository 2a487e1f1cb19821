package typesystem

import (
	"fmt"

	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
)

// CoercionError is a failed coercion. The analyzer attaches the source
// location and reports it.
type CoercionError struct {
	Code    diagnostics.ErrorCode
	Message string
	Help    string
	Note    string
	Shape   *ShapeMismatch // set for dimension mismatches
}

func (e *CoercionError) Error() string { return e.Message }

// Resolve decides the common type of a and b. It implements the four
// coercion patterns:
//
//  1. comptime + comptime -> comptime (comptime_float wins)
//  2. comptime + concrete -> concrete, when the comptime side can adapt
//  3. concrete + different concrete -> mismatch unless explicit; an explicit
//     resolution yields b, the destination side
//  4. identical concrete types -> identity
//
// Unknown on either side resolves to Unknown without an error so a single
// mistake never cascades.
func Resolve(a, b Type, explicit bool) (Type, *CoercionError) {
	if IsUnknown(a) || IsUnknown(b) {
		return TUnknown, nil
	}
	switch at := a.(type) {
	case Scalar:
		bt, ok := b.(Scalar)
		if !ok {
			return nil, kindMismatch(a, b)
		}
		tag, err := resolveTags(at.Tag, bt.Tag, explicit)
		if err != nil {
			return nil, err
		}
		return Scalar{Tag: tag}, nil
	case ComptimeArray:
		return resolveArrays(a, b, explicit)
	case ConcreteArray:
		return resolveArrays(a, b, explicit)
	case Range:
		return resolveRanges(at, false, b, explicit)
	case ComptimeRange:
		return resolveRanges(at.Range, true, b, explicit)
	}
	return nil, kindMismatch(a, b)
}

func resolveTags(a, b Tag, explicit bool) (Tag, *CoercionError) {
	if a == b {
		return a, nil
	}
	if a == Void || b == Void {
		return Unknown, &CoercionError{
			Code:    diagnostics.ErrTypeMismatch,
			Message: fmt.Sprintf("type mismatch: %s and %s", a, b),
			Note:    "void only combines with void",
		}
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		code := diagnostics.ErrTypeMismatch
		note := ""
		if explicit {
			code = diagnostics.ErrUnsupportedConversion
			note = fmt.Sprintf("only numeric types convert; %s and %s have no conversion path", a, b)
		}
		return Unknown, &CoercionError{
			Code:    code,
			Message: fmt.Sprintf("type mismatch: %s and %s", a, b),
			Note:    note,
		}
	}
	switch {
	case a.IsComptime() && b.IsComptime():
		return PromoteComptime(a, b), nil
	case a.IsComptime():
		if CanAdapt(a, b) || explicit {
			return b, nil
		}
		return Unknown, adaptError(a, b)
	case b.IsComptime():
		if CanAdapt(b, a) || explicit {
			return a, nil
		}
		return Unknown, adaptError(b, a)
	}
	if explicit {
		return b, nil
	}
	return Unknown, &CoercionError{
		Code:    diagnostics.ErrTypeMismatch,
		Message: fmt.Sprintf("type mismatch: %s and %s cannot be mixed without an explicit conversion", a, b),
		Help:    fmt.Sprintf("convert one operand explicitly, e.g. `value:%s`", b),
	}
}

func adaptError(from, target Tag) *CoercionError {
	e := &CoercionError{
		Code:    diagnostics.ErrTypeMismatch,
		Message: fmt.Sprintf("%s cannot adapt to %s implicitly", from, target),
		Help:    fmt.Sprintf("use an explicit conversion: `value:%s`", target),
	}
	if from == ComptimeFloat && target.IsInteger() {
		e.Note = fmt.Sprintf("float literals never adapt to integer types; converting to %s drops the fraction and must be visible", target)
	}
	return e
}

func kindMismatch(a, b Type) *CoercionError {
	return &CoercionError{
		Code:    diagnostics.ErrTypeMismatch,
		Message: fmt.Sprintf("type mismatch: %s and %s", a, b),
	}
}

func resolveArrays(a, b Type, explicit bool) (Type, *CoercionError) {
	switch at := a.(type) {
	case ComptimeArray:
		switch bt := b.(type) {
		case ComptimeArray:
			if !sameInts(at.Dims, bt.Dims) {
				return nil, shapeError(CheckShape(at.Dims, intDims(bt.Dims)))
			}
			return ComptimeArray{Element: PromoteComptime(at.Element, bt.Element), Dims: at.Dims}, nil
		case ConcreteArray:
			return Assign(at, bt, explicit)
		}
	case ConcreteArray:
		switch bt := b.(type) {
		case ComptimeArray:
			return Assign(bt, at, explicit)
		case ConcreteArray:
			return Assign(at, bt, explicit)
		}
	}
	return nil, kindMismatch(a, b)
}

func resolveRanges(a Range, aComptime bool, b Type, explicit bool) (Type, *CoercionError) {
	var (
		bRange    Range
		bComptime bool
	)
	switch bt := b.(type) {
	case Range:
		bRange = bt
	case ComptimeRange:
		bRange, bComptime = bt.Range, true
	default:
		return nil, kindMismatch(rangeOf(a, aComptime), b)
	}
	tag, err := resolveTags(a.Element, bRange.Element, explicit)
	if err != nil {
		return nil, err
	}
	if aComptime && bComptime {
		return ComptimeRange{a.WithElement(tag)}, nil
	}
	if aComptime {
		return bRange.WithElement(tag), nil
	}
	return a.WithElement(tag), nil
}

func rangeOf(r Range, comptime bool) Type {
	if comptime {
		return ComptimeRange{r}
	}
	return r
}

// Assign checks that a value of type source may initialize a slot of type
// target: a declaration with annotation, a parameter, a mutable variable or
// a return type. The result is the materialized type the slot will hold.
func Assign(source, target Type, explicit bool) (Type, *CoercionError) {
	if IsUnknown(source) || IsUnknown(target) {
		return target, nil
	}
	switch tt := target.(type) {
	case Scalar:
		st, ok := source.(Scalar)
		if !ok {
			return nil, slotMismatch(source, target)
		}
		if st.Tag == tt.Tag {
			return tt, nil
		}
		if tt.Tag == Void || st.Tag == Void {
			return nil, &CoercionError{
				Code:    diagnostics.ErrTypeMismatch,
				Message: fmt.Sprintf("cannot use %s where %s is expected", st, tt),
				Note:    "void only coerces to void",
			}
		}
		if st.Tag.IsComptime() {
			if CanAdapt(st.Tag, tt.Tag) {
				return tt, nil
			}
			if explicit && tt.Tag.IsNumeric() {
				return tt, nil
			}
			if !tt.Tag.IsNumeric() {
				return nil, slotMismatch(source, target)
			}
			return nil, adaptError(st.Tag, tt.Tag)
		}
		if explicit && st.Tag.IsNumeric() && tt.Tag.IsNumeric() {
			return tt, nil
		}
		e := slotMismatch(source, target)
		if st.Tag.IsNumeric() && tt.Tag.IsNumeric() {
			e.Help = fmt.Sprintf("convert explicitly: `value:%s`", tt)
		}
		return nil, e

	case ConcreteArray:
		switch st := source.(type) {
		case ComptimeArray:
			if m := CheckShape(st.Dims, tt.Dims); m != nil {
				return nil, shapeError(m)
			}
			if !CanAdapt(st.Element, tt.Element) && !(explicit && tt.Element.IsNumeric()) {
				e := adaptError(st.Element, tt.Element)
				e.Message = fmt.Sprintf("array elements of type %s cannot adapt to %s implicitly", st.Element, tt.Element)
				e.Help = fmt.Sprintf("use an explicit conversion: `value:%s`", tt)
				return nil, e
			}
			return st.MaterializeTo(tt), nil
		case ConcreteArray:
			if m := CheckConcreteShape(st.Dims, tt.Dims); m != nil {
				return nil, shapeError(m)
			}
			if st.Element != tt.Element {
				if !(explicit && st.Element.IsNumeric() && tt.Element.IsNumeric()) {
					e := slotMismatch(source, target)
					if st.Element.IsNumeric() && tt.Element.IsNumeric() {
						e.Help = fmt.Sprintf("convert explicitly: `value:%s`", tt)
					}
					return nil, e
				}
			}
			return ConcreteArray{Element: tt.Element, Dims: fillWildcards(st.Dims, tt.Dims)}, nil
		}
		return nil, slotMismatch(source, target)

	case ComptimeArray:
		st, ok := source.(ComptimeArray)
		if !ok {
			return nil, slotMismatch(source, target)
		}
		return Resolve(st, tt, explicit)

	case Range:
		switch st := source.(type) {
		case ComptimeRange:
			if st.CanAdaptTo(tt.Element) {
				return st.AdaptTo(tt.Element), nil
			}
			if st.Element.IsFloat() && tt.Element == Usize {
				return nil, floatToUsizeRange(source)
			}
			if explicit {
				return st.AdaptTo(tt.Element), nil
			}
			e := adaptError(st.Element, tt.Element)
			e.Message = fmt.Sprintf("%s cannot adapt to %s implicitly", source, target)
			e.Help = fmt.Sprintf("use an explicit conversion: `value:%s`", target)
			return nil, e
		case Range:
			if st.Element == tt.Element {
				return st, nil
			}
			if st.Element.IsFloat() && tt.Element == Usize {
				return nil, floatToUsizeRange(source)
			}
			if explicit {
				return st.WithElement(tt.Element), nil
			}
			return nil, &CoercionError{
				Code:    diagnostics.ErrTypeMismatch,
				Message: fmt.Sprintf("cannot use %s where %s is expected", source, target),
				Help:    fmt.Sprintf("convert explicitly: `value:%s`", target),
			}
		}
		return nil, slotMismatch(source, target)

	case ComptimeRange:
		return Resolve(source, tt, explicit)
	}
	return nil, slotMismatch(source, target)
}

func slotMismatch(source, target Type) *CoercionError {
	return &CoercionError{
		Code:    diagnostics.ErrTypeMismatch,
		Message: fmt.Sprintf("cannot use %s where %s is expected", source, target),
	}
}

func shapeError(m *ShapeMismatch) *CoercionError {
	return &CoercionError{
		Code:    diagnostics.ErrDimensionMismatch,
		Message: m.String(),
		Shape:   m,
	}
}

func floatToUsizeRange(source Type) *CoercionError {
	return &CoercionError{
		Code:    diagnostics.ErrUnsupportedConversion,
		Message: fmt.Sprintf("cannot convert %s to range[usize]", source),
		Note:    "index ranges are usize ranges and there is no float to usize index conversion; use integer bounds",
	}
}

// Convert applies an explicit `value:Type` conversion. Numeric scalars
// convert freely; arrays convert element-wise when shapes fit; ranges
// convert their element except float ranges to usize ranges, which is
// categorically rejected.
func Convert(source, target Type) (Type, *CoercionError) {
	if IsUnknown(source) || IsUnknown(target) {
		return target, nil
	}
	switch tt := target.(type) {
	case Scalar:
		st, ok := source.(Scalar)
		if !ok {
			return nil, unsupported(source, target, "only scalars convert to scalar types")
		}
		if st.Tag == tt.Tag {
			return tt, nil
		}
		if st.Tag.IsNumeric() && tt.Tag.IsNumeric() && tt.Tag.IsConcrete() {
			return tt, nil
		}
		return nil, unsupported(source, target, "only numeric types convert; bool, string and void convert only to themselves")
	case ConcreteArray:
		switch source.(type) {
		case ComptimeArray, ConcreteArray:
			if !tt.Element.IsNumeric() && ElementTag(source) != tt.Element {
				return nil, unsupported(source, target, "only numeric arrays convert element-wise")
			}
			return Assign(source, target, true)
		}
		return nil, unsupported(source, target, "only arrays convert to array types")
	case Range:
		switch source.(type) {
		case Range, ComptimeRange:
			return Assign(source, target, true)
		}
		return nil, unsupported(source, target, "only ranges convert to range types")
	}
	return nil, unsupported(source, target, "")
}

func unsupported(source, target Type, note string) *CoercionError {
	return &CoercionError{
		Code:    diagnostics.ErrUnsupportedConversion,
		Message: fmt.Sprintf("cannot convert %s to %s", source, target),
		Note:    note,
	}
}

func intDims(dims []int) []Dim {
	out := make([]Dim, len(dims))
	for i, d := range dims {
		out[i] = Dim(d)
	}
	return out
}

// fillWildcards keeps the source length on axes where the target is `_`.
func fillWildcards(source, target []Dim) []Dim {
	out := make([]Dim, len(target))
	for i, d := range target {
		if d == Wildcard {
			out[i] = source[i]
		} else {
			out[i] = d
		}
	}
	return out
}
