package schema

import "github.com/mcdocval/mcdoc/token"

// ExprKind discriminates the sum-typed Expr, the way ir.Type discriminates
// the teacher repo's ir.Node.
type ExprKind int

const (
	KindPrimitive ExprKind = iota
	KindNamed
	KindArray
	KindUnion
	KindStruct
	KindEnum
	KindDispatcherRef
	KindPercent
	KindPlaceholder
)

func (k ExprKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindNamed:
		return "Named"
	case KindArray:
		return "Array"
	case KindUnion:
		return "Union"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindDispatcherRef:
		return "DispatcherRef"
	case KindPercent:
		return "Percent"
	case KindPlaceholder:
		return "Placeholder"
	}
	return "Unknown"
}

// Expr is a type expression, per spec §3. It is a tagged union rather than
// an interface hierarchy: every node carries a Kind and only the fields
// relevant to that Kind are populated, mirroring the teacher repo's
// ir.Node.
type Expr struct {
	Kind        ExprKind
	Pos         *token.Pos
	Annotations []Annotation

	// KindPrimitive
	Primitive string

	// KindNamed
	Name     string
	TypeArgs []*Expr
	// ResolvedName is Name's fully qualified form, filled in by Resolve.
	// Validators look declarations up by ResolvedName, never by Name.
	ResolvedName string

	// KindArray
	Elem       *Expr
	Constraint *ArrayConstraint

	// KindUnion
	Alternatives []*Expr

	// KindStruct (inline struct literal)
	Fields         []*Field
	ResolvedFields []*Field

	// KindEnum (inline enum literal)
	EnumDecl *Enum

	// KindDispatcherRef: minecraft:resource[recipe]
	DispatchRegistry string
	DispatchKey      string

	// KindPercent / KindPlaceholder raw text, e.g. "%unknown" or "[[type]]"
	Raw string
}

// ArrayConstraint is an array size bound: `@ min..max`, `@ ..max`,
// `@ min..`, or `@ n` for an exact size.
type ArrayConstraint struct {
	Min   *int
	Max   *int
	Exact *int
}

// Annotation is a single `#[name=...]` / `#[name(k=v, ...)]` annotation.
type Annotation struct {
	Name string
	// Value holds the literal for a simple annotation, #[name="value"], or
	// the raw text of an unrecognized single-literal annotation.
	Value string
	// Args holds the key/value arguments of a complex annotation,
	// #[name(k1=v1, k2=v2, ...)].
	Args map[string]ArgValue
	Pos  *token.Pos
}

// ArgValue is the value of one annotation argument: either a bare string or
// an identifier list, per spec §3.
type ArgValue struct {
	Str  string
	List []string
}

// Field is one struct field: a name/type pair, a spread, or both annotated.
type Field struct {
	Name        string
	Type        *Expr
	Optional    bool
	Spread      bool
	Annotations []Annotation
	Pos         *token.Pos
}

// Struct is a named top-level struct declaration.
type Struct struct {
	Name        string
	Fields      []*Field
	Annotations []Annotation
	Pos         *token.Pos

	// ResolvedFields is Fields with spreads spliced in, filled in by
	// Resolve. Validators walk ResolvedFields, never Fields directly.
	ResolvedFields []*Field
}

// Literal is an enum variant's backing value.
type Literal struct {
	IsString bool
	IsInt    bool
	IsFloat  bool
	IsBool   bool
	Str      string
	Int      int64
	Float    float64
	Bool     bool
}

// EnumVariant is one `name = literal` entry in an enum body.
type EnumVariant struct {
	Name  string
	Value Literal
	Pos   *token.Pos
}

// Enum is a named (or inline) enum declaration.
type Enum struct {
	Name        string
	BaseType    string // "string" or an integer family name
	Variants    []EnumVariant
	Annotations []Annotation
	Pos         *token.Pos
}

// TypeAlias is a `type Name = TypeExpr` declaration.
type TypeAlias struct {
	Name        string
	Type        *Expr
	Annotations []Annotation
	Pos         *token.Pos
}

// Dispatch is a `dispatch key[targets] to TypeExpr` declaration.
type Dispatch struct {
	Registry    string
	Targets     []string
	TargetType  *Expr
	Annotations []Annotation
	Pos         *token.Pos
}

// Import is a `use a::b::c (as alias)?` declaration.
type Import struct {
	Path  []string
	Alias string
	Pos   *token.Pos
}

// Unit is the output of parsing one MCDOC source file: its declarations
// plus any non-fatal parse errors encountered along the way. A Unit is
// never nil once returned by Parse, per spec §8.
type Unit struct {
	ModulePath string
	Imports    []Import
	Structs    []*Struct
	Enums      []*Enum
	Types      []*TypeAlias
	Dispatches []*Dispatch
	Errors     []error
}
