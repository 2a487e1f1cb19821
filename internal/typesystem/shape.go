package typesystem

import (
	"fmt"
	"strings"
)

// AxisMismatch is one fixed axis whose size differs between a source
// shape and a target shape.
type AxisMismatch struct {
	Axis   int
	Source int
	Target int
}

// ShapeMismatch describes why a source shape does not fit a target shape.
// When CountMismatch is set the per-axis list is empty: axes are only
// compared once the dimension counts agree.
type ShapeMismatch struct {
	SourceDims    []int
	TargetDims    []Dim
	CountMismatch bool
	Axes          []AxisMismatch
}

// CheckShape compares a fully known source shape against a target shape.
// Wildcard target axes accept any size; fixed axes require equality.
func CheckShape(source []int, target []Dim) *ShapeMismatch {
	if len(source) != len(target) {
		return &ShapeMismatch{SourceDims: source, TargetDims: target, CountMismatch: true}
	}
	var axes []AxisMismatch
	for i, d := range target {
		if d == Wildcard {
			continue
		}
		if int(d) != source[i] {
			axes = append(axes, AxisMismatch{Axis: i, Source: source[i], Target: int(d)})
		}
	}
	if len(axes) == 0 {
		return nil
	}
	return &ShapeMismatch{SourceDims: source, TargetDims: target, Axes: axes}
}

// CheckConcreteShape compares two concrete shapes. A wildcard on the
// source side only fits a wildcard on the target side, since its length is
// not known statically.
func CheckConcreteShape(source, target []Dim) *ShapeMismatch {
	src := make([]int, len(source))
	for i, d := range source {
		src[i] = int(d)
	}
	if len(source) != len(target) {
		return &ShapeMismatch{SourceDims: src, TargetDims: target, CountMismatch: true}
	}
	var axes []AxisMismatch
	for i, d := range target {
		if d == Wildcard || source[i] == d {
			continue
		}
		axes = append(axes, AxisMismatch{Axis: i, Source: int(source[i]), Target: int(d)})
	}
	if len(axes) == 0 {
		return nil
	}
	return &ShapeMismatch{SourceDims: src, TargetDims: target, Axes: axes}
}

// SourceShape renders the source dimensions as [a][b]...; unknown lengths
// print as `_`.
func (m *ShapeMismatch) SourceShape() string {
	var sb strings.Builder
	for _, d := range m.SourceDims {
		sb.WriteString("[" + Dim(d).String() + "]")
	}
	return sb.String()
}

// TargetShape renders the target dimensions as [a][_]...
func (m *ShapeMismatch) TargetShape() string {
	var sb strings.Builder
	for _, d := range m.TargetDims {
		sb.WriteString("[" + d.String() + "]")
	}
	return sb.String()
}

func (m *ShapeMismatch) String() string {
	if m.CountMismatch {
		return fmt.Sprintf("%d-dimensional array %s does not fit %d-dimensional %s",
			len(m.SourceDims), m.SourceShape(), len(m.TargetDims), m.TargetShape())
	}
	parts := make([]string, len(m.Axes))
	for i, ax := range m.Axes {
		parts[i] = fmt.Sprintf("dimension %d: %s vs %d", ax.Axis, Dim(ax.Source), ax.Target)
	}
	return "array size mismatch (" + strings.Join(parts, ", ") + ")"
}
