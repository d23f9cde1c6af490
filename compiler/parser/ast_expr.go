package parser

import "github.com/jsonnetlang/jsonnet/compiler/lexer"

// ExprNode is the interface implemented by every expression AST node.
type ExprNode interface {
	exprNode()
	GetLocation() SourceLocation
}

// Visibility controls whether an object field appears in manifested JSON.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	ForceVisible
)

// NullExpr is the `null` literal.
type NullExpr struct{ Location SourceLocation }

func (e *NullExpr) exprNode()                   {}
func (e *NullExpr) GetLocation() SourceLocation { return e.Location }

// BoolExpr is the `true`/`false` literal.
type BoolExpr struct {
	Value    bool
	Location SourceLocation
}

func (e *BoolExpr) exprNode()                   {}
func (e *BoolExpr) GetLocation() SourceLocation { return e.Location }

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value    float64
	Location SourceLocation
}

func (e *NumberExpr) exprNode()                   {}
func (e *NumberExpr) GetLocation() SourceLocation { return e.Location }

// StringExpr is a string literal (quoted, verbatim, or text block).
type StringExpr struct {
	Value    string
	Location SourceLocation
}

func (e *StringExpr) exprNode()                   {}
func (e *StringExpr) GetLocation() SourceLocation { return e.Location }

// IdentifierExpr references a local, parameter, or top-level binding.
type IdentifierExpr struct {
	Name     string
	Location SourceLocation
}

func (e *IdentifierExpr) exprNode()                   {}
func (e *IdentifierExpr) GetLocation() SourceLocation { return e.Location }

// SelfExpr is the `self` keyword.
type SelfExpr struct{ Location SourceLocation }

func (e *SelfExpr) exprNode()                   {}
func (e *SelfExpr) GetLocation() SourceLocation { return e.Location }

// DollarExpr is the `$` keyword, bound to the outermost enclosing object.
type DollarExpr struct{ Location SourceLocation }

func (e *DollarExpr) exprNode()                   {}
func (e *DollarExpr) GetLocation() SourceLocation { return e.Location }

// SuperExpr is the bare `super` keyword, legal only as the target of an
// index operation or as the right-hand side of `in`.
type SuperExpr struct{ Location SourceLocation }

func (e *SuperExpr) exprNode()                   {}
func (e *SuperExpr) GetLocation() SourceLocation { return e.Location }

func NewSuperExpr(loc SourceLocation) *SuperExpr { return &SuperExpr{Location: loc} }

// SuperIndexExpr is `super.field` or `super[expr]`.
type SuperIndexExpr struct {
	Index    ExprNode
	Location SourceLocation
}

func (e *SuperIndexExpr) exprNode()                   {}
func (e *SuperIndexExpr) GetLocation() SourceLocation { return e.Location }

// ArrayExpr is an array literal `[a, b, c]`.
type ArrayExpr struct {
	Elements []ExprNode
	Location SourceLocation
}

func (e *ArrayExpr) exprNode()                   {}
func (e *ArrayExpr) GetLocation() SourceLocation { return e.Location }

// CompClause is either a `for` or an `if` clause in a comprehension.
type CompClause interface {
	compClause()
}

// ForClause is `for x in expr`.
type ForClause struct {
	Var  string
	Iter ExprNode
}

func (c *ForClause) compClause() {}

// IfClause is an `if expr` filter inside a comprehension.
type IfClause struct {
	Cond ExprNode
}

func (c *IfClause) compClause() {}

// ArrayCompExpr is `[body for x in arr if cond ...]`. The first clause is
// always a ForClause; spec.md requires this.
type ArrayCompExpr struct {
	Body     ExprNode
	Clauses  []CompClause
	Location SourceLocation
}

func (e *ArrayCompExpr) exprNode()                   {}
func (e *ArrayCompExpr) GetLocation() SourceLocation { return e.Location }

// ObjectField is a single `key: value` member of an object literal.
type ObjectField struct {
	Key         ExprNode // StringExpr for plain/quoted keys, any expr for [computed] keys
	Visibility  Visibility
	Inherit     bool // true for `+:`
	Value       ExprNode
	Location    SourceLocation
	computedKey bool // true when Key came from `[expr]`, needed to spot object comprehensions
}

// ObjectLocal is a `local name = value;` member of an object literal.
type ObjectLocal struct {
	Name     string
	Value    ExprNode
	Location SourceLocation
}

// ObjectAssert is an `assert cond : msg;` member of an object literal.
type ObjectAssert struct {
	Cond     ExprNode
	Message  ExprNode // nil if no message given
	Location SourceLocation
}

// ObjectExpr is an object literal, holding fields, locals and asserts in
// the order they were written (locals and asserts are evaluated once per
// object instantiation; fields are bound lazily).
type ObjectExpr struct {
	Fields   []*ObjectField
	Locals   []*ObjectLocal
	Asserts  []*ObjectAssert
	Location SourceLocation
}

func (e *ObjectExpr) exprNode()                   {}
func (e *ObjectExpr) GetLocation() SourceLocation { return e.Location }

// ObjectCompExpr is `{ [keyExpr]: valueExpr for x in arr if cond }`. Object
// comprehensions have exactly one computed field and no asserts.
type ObjectCompExpr struct {
	KeyExpr   ExprNode
	ValueExpr ExprNode
	Locals    []*ObjectLocal
	Clauses   []CompClause
	Location  SourceLocation
}

func (e *ObjectCompExpr) exprNode()                   {}
func (e *ObjectCompExpr) GetLocation() SourceLocation { return e.Location }

// IndexExpr is `target.field` or `target[index]` (desugared identically);
// `target[begin:end:step]` desugars at parse time into a std.slice ApplyExpr.
type IndexExpr struct {
	Target   ExprNode
	Index    ExprNode
	Location SourceLocation
}

func (e *IndexExpr) exprNode()                   {}
func (e *IndexExpr) GetLocation() SourceLocation { return e.Location }

// UnaryExpr is a prefix operator: `-x`, `+x`, `!x`, `~x`.
type UnaryExpr struct {
	Operator lexer.TokenType
	Operand  ExprNode
	Location SourceLocation
}

func (e *UnaryExpr) exprNode()                   {}
func (e *UnaryExpr) GetLocation() SourceLocation { return e.Location }

// BinaryExpr is an infix operator expression.
type BinaryExpr struct {
	Left     ExprNode
	Operator lexer.TokenType
	Right    ExprNode
	Location SourceLocation
}

func (e *BinaryExpr) exprNode()                   {}
func (e *BinaryExpr) GetLocation() SourceLocation { return e.Location }

// IfExpr is `if cond then a else b`. Else is nil when omitted, in which
// case evaluating a false condition produces null.
type IfExpr struct {
	Condition ExprNode
	Then      ExprNode
	Else      ExprNode
	Location  SourceLocation
}

func (e *IfExpr) exprNode()                   {}
func (e *IfExpr) GetLocation() SourceLocation { return e.Location }

// Param is a function parameter, with an optional default value expression.
type Param struct {
	Name    string
	Default ExprNode // nil if required
}

// FunctionExpr is `function(params) body`.
type FunctionExpr struct {
	Params   []Param
	Body     ExprNode
	Location SourceLocation
}

func (e *FunctionExpr) exprNode()                   {}
func (e *FunctionExpr) GetLocation() SourceLocation { return e.Location }

// LocalBind is one binding in a `local a = ..., b = ...;` clause. Function
// sugar `local f(x) = body` is desugared into Value being a *FunctionExpr.
type LocalBind struct {
	Name     string
	Value    ExprNode
	Location SourceLocation
}

// LocalExpr is `local binds...; body`.
type LocalExpr struct {
	Binds    []LocalBind
	Body     ExprNode
	Location SourceLocation
}

func (e *LocalExpr) exprNode()                   {}
func (e *LocalExpr) GetLocation() SourceLocation { return e.Location }

// Argument is one call argument, positional (Name == "") or named.
type Argument struct {
	Name  string
	Value ExprNode
}

// ApplyExpr is a function call `target(args)`.
type ApplyExpr struct {
	Target     ExprNode
	Args       []Argument
	TailStrict bool
	Location   SourceLocation
}

func (e *ApplyExpr) exprNode()                   {}
func (e *ApplyExpr) GetLocation() SourceLocation { return e.Location }

// ApplyBraceExpr is `left { fields }`, sugar for `left + { fields }`.
type ApplyBraceExpr struct {
	Left     ExprNode
	Right    *ObjectExpr
	Location SourceLocation
}

func (e *ApplyBraceExpr) exprNode()                   {}
func (e *ApplyBraceExpr) GetLocation() SourceLocation { return e.Location }

// ErrorExpr is `error expr`.
type ErrorExpr struct {
	Expr     ExprNode
	Location SourceLocation
}

func (e *ErrorExpr) exprNode()                   {}
func (e *ErrorExpr) GetLocation() SourceLocation { return e.Location }

// AssertExpr is `assert cond : msg; rest`.
type AssertExpr struct {
	Cond     ExprNode
	Message  ExprNode // nil if no message given
	Rest     ExprNode
	Location SourceLocation
}

func (e *AssertExpr) exprNode()                   {}
func (e *AssertExpr) GetLocation() SourceLocation { return e.Location }

// ImportExpr is `import "path"`: parses and evaluates the target file.
type ImportExpr struct {
	Path     string
	Location SourceLocation
}

func (e *ImportExpr) exprNode()                   {}
func (e *ImportExpr) GetLocation() SourceLocation { return e.Location }

// ImportStrExpr is `importstr "path"`: the file's raw contents as a string.
type ImportStrExpr struct {
	Path     string
	Location SourceLocation
}

func (e *ImportStrExpr) exprNode()                   {}
func (e *ImportStrExpr) GetLocation() SourceLocation { return e.Location }

// ImportBinExpr is `importbin "path"`: the file's raw bytes as an array of
// integer codepoints 0-255.
type ImportBinExpr struct {
	Path     string
	Location SourceLocation
}

func (e *ImportBinExpr) exprNode()                   {}
func (e *ImportBinExpr) GetLocation() SourceLocation { return e.Location }

// --- Constructors ---

func NewNullExpr(loc SourceLocation) *NullExpr     { return &NullExpr{Location: loc} }
func NewBoolExpr(v bool, loc SourceLocation) *BoolExpr {
	return &BoolExpr{Value: v, Location: loc}
}
func NewNumberExpr(v float64, loc SourceLocation) *NumberExpr {
	return &NumberExpr{Value: v, Location: loc}
}
func NewStringExpr(v string, loc SourceLocation) *StringExpr {
	return &StringExpr{Value: v, Location: loc}
}
func NewIdentifierExpr(name string, loc SourceLocation) *IdentifierExpr {
	return &IdentifierExpr{Name: name, Location: loc}
}
func NewSelfExpr(loc SourceLocation) *SelfExpr   { return &SelfExpr{Location: loc} }
func NewDollarExpr(loc SourceLocation) *DollarExpr { return &DollarExpr{Location: loc} }
func NewSuperIndexExpr(index ExprNode, loc SourceLocation) *SuperIndexExpr {
	return &SuperIndexExpr{Index: index, Location: loc}
}
func NewArrayExpr(elements []ExprNode, loc SourceLocation) *ArrayExpr {
	return &ArrayExpr{Elements: elements, Location: loc}
}
func NewArrayCompExpr(body ExprNode, clauses []CompClause, loc SourceLocation) *ArrayCompExpr {
	return &ArrayCompExpr{Body: body, Clauses: clauses, Location: loc}
}
func NewObjectExpr(fields []*ObjectField, locals []*ObjectLocal, asserts []*ObjectAssert, loc SourceLocation) *ObjectExpr {
	return &ObjectExpr{Fields: fields, Locals: locals, Asserts: asserts, Location: loc}
}
func NewObjectCompExpr(key, value ExprNode, locals []*ObjectLocal, clauses []CompClause, loc SourceLocation) *ObjectCompExpr {
	return &ObjectCompExpr{KeyExpr: key, ValueExpr: value, Locals: locals, Clauses: clauses, Location: loc}
}
func NewIndexExpr(target, index ExprNode, loc SourceLocation) *IndexExpr {
	return &IndexExpr{Target: target, Index: index, Location: loc}
}
func NewUnaryExpr(op lexer.TokenType, operand ExprNode, loc SourceLocation) *UnaryExpr {
	return &UnaryExpr{Operator: op, Operand: operand, Location: loc}
}
func NewBinaryExpr(left ExprNode, op lexer.TokenType, right ExprNode, loc SourceLocation) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: right, Location: loc}
}
func NewIfExpr(cond, then, els ExprNode, loc SourceLocation) *IfExpr {
	return &IfExpr{Condition: cond, Then: then, Else: els, Location: loc}
}
func NewFunctionExpr(params []Param, body ExprNode, loc SourceLocation) *FunctionExpr {
	return &FunctionExpr{Params: params, Body: body, Location: loc}
}
func NewLocalExpr(binds []LocalBind, body ExprNode, loc SourceLocation) *LocalExpr {
	return &LocalExpr{Binds: binds, Body: body, Location: loc}
}
func NewApplyExpr(target ExprNode, args []Argument, tailstrict bool, loc SourceLocation) *ApplyExpr {
	return &ApplyExpr{Target: target, Args: args, TailStrict: tailstrict, Location: loc}
}
func NewApplyBraceExpr(left ExprNode, right *ObjectExpr, loc SourceLocation) *ApplyBraceExpr {
	return &ApplyBraceExpr{Left: left, Right: right, Location: loc}
}
func NewErrorExpr(expr ExprNode, loc SourceLocation) *ErrorExpr {
	return &ErrorExpr{Expr: expr, Location: loc}
}
func NewAssertExpr(cond, message, rest ExprNode, loc SourceLocation) *AssertExpr {
	return &AssertExpr{Cond: cond, Message: message, Rest: rest, Location: loc}
}
func NewImportExpr(path string, loc SourceLocation) *ImportExpr {
	return &ImportExpr{Path: path, Location: loc}
}
func NewImportStrExpr(path string, loc SourceLocation) *ImportStrExpr {
	return &ImportStrExpr{Path: path, Location: loc}
}
func NewImportBinExpr(path string, loc SourceLocation) *ImportBinExpr {
	return &ImportBinExpr{Path: path, Location: loc}
}
