package errors

import (
	"strings"

	"github.com/jsonnetlang/jsonnet/compiler/lexer"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
)

// classifyLexCode picks a per-phase error code by scanning a lexer message
// for the wording each call site uses, the same way suggestStdNamespace
// scans runtime messages for stdlib names.
func classifyLexCode(msg string) string {
	switch {
	case strings.Contains(msg, "unterminated string"), strings.Contains(msg, "unterminated verbatim string"):
		return ErrUnterminatedString
	case strings.Contains(msg, "unterminated text block"):
		return ErrUnterminatedTextBlock
	case strings.Contains(msg, "indent"):
		return ErrIllegalTextBlockIndent
	case strings.Contains(msg, "unterminated block comment"):
		return ErrUnterminatedComment
	case strings.Contains(msg, "number"):
		return ErrInvalidNumber
	case strings.Contains(msg, "unicode"):
		return ErrInvalidUnicode
	case strings.Contains(msg, "escape"):
		return ErrInvalidEscape
	default:
		return ErrInvalidCharacter
	}
}

// FromLexError converts a lexer.LexError into a CompilerError so the driver
// can render or marshal it the same way it does parser and runtime errors.
func FromLexError(e lexer.LexError) CompilerError {
	return NewCompilerError("lexer", classifyLexCode(e.Message), e.Message, SourceLocation{
		File:   e.File,
		Line:   e.Line,
		Column: e.Column,
	}, Error)
}

// FromLexErrors converts every error in a lexer pass, preserving order and
// chaining errors after the first as RelatedErrors.
func FromLexErrors(errs []lexer.LexError) CompilerError {
	head := FromLexError(errs[0])
	for _, e := range errs[1:] {
		head = head.WithRelatedError(FromLexError(e))
	}
	return head
}

// classifyParseCode refines parser.ParseError's own ErrorCode, which is
// always E100: it scans the message text the same way classifyLexCode and
// classifyRuntimeCode do, so the taxonomy in codes.go gets used for the
// common "expected X" shapes parser.go and parser_expr.go produce.
func classifyParseCode(msg string) string {
	switch {
	case strings.Contains(msg, "expected identifier"), strings.Contains(msg, "expected parameter name"),
		strings.Contains(msg, "expected loop variable name"), strings.Contains(msg, "expected field name"):
		return ErrExpectedIdentifier
	case strings.Contains(msg, "expected ':'"):
		return ErrExpectedColon
	case strings.Contains(msg, "expected '}'"):
		return ErrExpectedBrace
	case strings.Contains(msg, "expected '('"), strings.Contains(msg, "expected ')'"):
		return ErrExpectedParen
	case strings.Contains(msg, "expected ']'"):
		return ErrExpectedBracket
	case strings.Contains(msg, "object comprehension"), strings.Contains(msg, "computed field"):
		return ErrInvalidObjectField
	case strings.Contains(msg, "expected parameter"):
		return ErrInvalidFunctionParam
	case strings.Contains(msg, "expected expression"), strings.Contains(msg, "expected index expression"),
		strings.Contains(msg, "expected object literal"):
		return ErrInvalidExpression
	case strings.Contains(msg, "unexpected token"), strings.Contains(msg, "unexpected trailing token"):
		return ErrUnexpectedToken
	default:
		return ErrUnexpectedToken
	}
}

// FromParseError converts a parser.ParseError into a CompilerError, using
// classifyParseCode in place of ParseError.ErrorCode() (which always
// returns E100, since no parser.go call site sets a more specific code).
func FromParseError(e parser.ParseError) CompilerError {
	return NewCompilerError("parser", classifyParseCode(e.Message), e.Message, SourceLocation{
		File:   e.Location.File,
		Line:   e.Location.Line,
		Column: e.Location.Column,
	}, Error)
}

// FromParseErrors converts a parser.ParseErrorList, chaining errors after
// the first as RelatedErrors.
func FromParseErrors(el parser.ParseErrorList) CompilerError {
	head := FromParseError(el[0])
	for _, e := range el[1:] {
		head = head.WithRelatedError(FromParseError(e))
	}
	return head
}

// FromRuntime builds a CompilerError for the evaluator's phase. It takes
// primitive fields rather than *eval.RuntimeError directly so this package
// never needs to import internal/eval.
func FromRuntime(code, message, file string, line, column int) CompilerError {
	return NewCompilerError("runtime", code, message, SourceLocation{
		File:   file,
		Line:   line,
		Column: column,
	}, Error)
}
