package config

// OptionsFileName is the per-project engine configuration file.
const OptionsFileName = "hexen.yaml"

// Built-in type names
const (
	I32TypeName    = "i32"
	I64TypeName    = "i64"
	F32TypeName    = "f32"
	F64TypeName    = "f64"
	UsizeTypeName  = "usize"
	StringTypeName = "string"
	BoolTypeName   = "bool"
	VoidTypeName   = "void"
	RangeTypeName  = "range"
)

// Array and range surface syntax
const (
	WildcardDim      = "_"
	LengthProperty   = "length"
	ExclusiveRangeOp = ".."
	InclusiveRangeOp = "..="
)

// Keywords
const (
	ValKeyword   = "val"
	MutKeyword   = "mut"
	UndefKeyword = "undef"
)
