package typesystem

import "github.com/kiinaq/hexen-sub001/internal/config"

// Tag identifies a scalar type. Comptime tags mark literal values whose
// concrete representation is not decided yet.
type Tag int

const (
	Unknown Tag = iota
	I32
	I64
	F32
	F64
	Usize
	String
	Bool
	Void
	ComptimeInt
	ComptimeFloat
)

var tagNames = map[Tag]string{
	Unknown:       "unknown",
	I32:           config.I32TypeName,
	I64:           config.I64TypeName,
	F32:           config.F32TypeName,
	F64:           config.F64TypeName,
	Usize:         config.UsizeTypeName,
	String:        config.StringTypeName,
	Bool:          config.BoolTypeName,
	Void:          config.VoidTypeName,
	ComptimeInt:   "comptime_int",
	ComptimeFloat: "comptime_float",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTag maps a surface type name ("i32", "usize", ...) to its tag.
// Comptime tags have no surface spelling.
func ParseTag(name string) (Tag, bool) {
	switch name {
	case config.I32TypeName:
		return I32, true
	case config.I64TypeName:
		return I64, true
	case config.F32TypeName:
		return F32, true
	case config.F64TypeName:
		return F64, true
	case config.UsizeTypeName:
		return Usize, true
	case config.StringTypeName:
		return String, true
	case config.BoolTypeName:
		return Bool, true
	case config.VoidTypeName:
		return Void, true
	}
	return Unknown, false
}

func (t Tag) IsComptime() bool { return t == ComptimeInt || t == ComptimeFloat }

// IsNumeric reports whether t is a number type, comptime or concrete.
func (t Tag) IsNumeric() bool {
	switch t {
	case I32, I64, F32, F64, Usize, ComptimeInt, ComptimeFloat:
		return true
	}
	return false
}

// IsInteger covers i32, i64, usize and comptime_int.
func (t Tag) IsInteger() bool {
	return t == I32 || t == I64 || t == Usize || t == ComptimeInt
}

// IsFloat covers f32, f64 and comptime_float.
func (t Tag) IsFloat() bool {
	return t == F32 || t == F64 || t == ComptimeFloat
}

// IsConcrete reports whether t has a fixed runtime representation.
func (t Tag) IsConcrete() bool {
	return t != Unknown && !t.IsComptime()
}

// ConcreteNumericTags lists every concrete numeric tag in declaration order.
var ConcreteNumericTags = []Tag{I32, I64, F32, F64, Usize}

// CanAdapt reports whether a comptime tag silently adapts to target.
// comptime_int adapts to every concrete numeric type; comptime_float only
// to f32 and f64.
func CanAdapt(from, target Tag) bool {
	switch from {
	case ComptimeInt:
		switch target {
		case I32, I64, F32, F64, Usize:
			return true
		}
	case ComptimeFloat:
		return target == F32 || target == F64
	}
	return false
}

// PromoteComptime combines two comptime tags: any comptime_float makes the
// result comptime_float.
func PromoteComptime(a, b Tag) Tag {
	if a == ComptimeFloat || b == ComptimeFloat {
		return ComptimeFloat
	}
	return ComptimeInt
}
