package errors

import (
	"strings"
)

// stdlibFuncNames lists the std.* builtins, used to suggest a namespaced
// call when a program references a bare name that only exists under std.
var stdlibFuncNames = []string{
	"length", "type", "objectHas", "objectFields", "objectValues",
	"mapWithKey", "map", "filter", "foldl", "foldr", "range", "join",
	"split", "substr", "startsWith", "endsWith", "trim", "asciiUpper",
	"asciiLower", "format", "sort", "uniq", "set", "member", "max", "min",
	"abs", "pow", "floor", "ceil", "round", "manifestJson", "parseJson",
	"base64", "md5", "toString", "thisFile", "extVar", "native",
}

// suggestFix generates auto-fix suggestions based on error code
func suggestFix(err CompilerError) *FixSuggestion {
	switch err.Code {
	case ErrExpectedColon:
		return suggestColonInsteadOfEquals(err)
	case ErrUnknownVariable:
		return suggestStdNamespace(err)
	case ErrTypeMismatch, ErrNonBooleanCondition, ErrNonIterable, ErrNonStringObjectKey:
		return suggestTypeFix(err)
	case ErrUnexpectedToken:
		return suggestTokenFix(err)
	case ErrExpectedBrace, ErrUnmatchedBrace:
		return suggestBrace(err)
	case ErrExpectedParen, ErrUnmatchedParen:
		return suggestParen(err)
	case ErrExpectedBracket, ErrUnmatchedBracket:
		return suggestBracket(err)
	case ErrUnterminatedString:
		return suggestCloseString(err)
	case ErrInvalidEscape:
		return suggestValidEscape(err)
	case ErrDuplicateObjectKey:
		return suggestRenameDuplicate(err)
	case ErrDuplicateLocalBind:
		return suggestRenameLocal(err)
	case ErrAssertionFailed:
		return suggestAssertMessage(err)
	case ErrDivisionByZero:
		return suggestDivisionByZero(err)
	case ErrImportNotFound:
		return suggestImportPath(err)
	case ErrSelfOutsideObject, ErrSuperOutsideObject:
		return suggestSelfSuper(err)
	default:
		return nil
	}
}

// suggestColonInsteadOfEquals suggests using : instead of =
func suggestColonInsteadOfEquals(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return &FixSuggestion{
			Description: "Object fields are separated from their value with ':', not '='",
			OldCode:     "field = value",
			NewCode:     "field: value",
			Confidence:  0.85,
		}
	}

	errorLine := err.Context.SourceLines[err.Context.Highlight.Line]
	if !strings.Contains(errorLine, "=") {
		return &FixSuggestion{
			Description: "Object fields are separated from their value with ':', not '='",
			OldCode:     "field = value",
			NewCode:     "field: value",
			Confidence:  0.85,
		}
	}

	newLine := strings.Replace(errorLine, "=", ":", 1)

	return &FixSuggestion{
		Description: "Object fields are separated from their value with ':', not '='",
		OldCode:     strings.TrimSpace(errorLine),
		NewCode:     strings.TrimSpace(newLine),
		Confidence:  0.95,
	}
}

// suggestStdNamespace suggests std.<name> when an unresolved identifier
// matches a stdlib builtin name.
func suggestStdNamespace(err CompilerError) *FixSuggestion {
	msg := err.Message
	for _, name := range stdlibFuncNames {
		if strings.Contains(msg, name) {
			return &FixSuggestion{
				Description: "Standard library functions live under the 'std' object",
				OldCode:     name + "(...)",
				NewCode:     "std." + name + "(...)",
				Confidence:  0.80,
			}
		}
	}
	return nil
}

// suggestTypeFix suggests type corrections
func suggestTypeFix(err CompilerError) *FixSuggestion {
	msg := strings.ToLower(err.Message)

	if strings.Contains(msg, "expected") && strings.Contains(msg, "got") {
		return &FixSuggestion{
			Description: "Type mismatch - check the value's actual type with std.type(x)",
			OldCode:     "Incorrect type",
			NewCode:     "Match the expected type from the error message",
			Confidence:  0.65,
		}
	}

	return nil
}

// suggestTokenFix suggests fixing unexpected tokens
func suggestTokenFix(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return nil
	}

	return &FixSuggestion{
		Description: "Check for a missing comma, operator, or closing delimiter before this token",
		OldCode:     "",
		NewCode:     "Verify the expression syntax around this point",
		Confidence:  0.50,
	}
}

// suggestBrace suggests missing or extra braces
func suggestBrace(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Add the missing brace",
		OldCode:     "",
		NewCode:     "Add '{' or '}'",
		Confidence:  0.80,
	}
}

// suggestParen suggests missing or extra parentheses
func suggestParen(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check parentheses balance",
		OldCode:     "",
		NewCode:     "Ensure all '(' have matching ')'",
		Confidence:  0.75,
	}
}

// suggestBracket suggests missing or extra brackets
func suggestBracket(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check brackets balance",
		OldCode:     "",
		NewCode:     "Ensure all '[' have matching ']'",
		Confidence:  0.75,
	}
}

// suggestCloseString suggests closing unterminated string
func suggestCloseString(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return nil
	}

	errorLine := err.Context.SourceLines[err.Context.Highlight.Line]

	return &FixSuggestion{
		Description: "Add closing quote",
		OldCode:     strings.TrimSpace(errorLine),
		NewCode:     strings.TrimSpace(errorLine) + `"`,
		Confidence:  0.90,
	}
}

// suggestValidEscape suggests valid escape sequences
func suggestValidEscape(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Use valid escape sequences: \\n, \\t, \\r, \\\\, \\\", \\', \\uXXXX",
		OldCode:     "Invalid escape",
		NewCode:     "Use a standard escape sequence",
		Confidence:  0.85,
	}
}

// suggestRenameDuplicate suggests renaming a duplicate object field
func suggestRenameDuplicate(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Rename one of the duplicate fields, or merge the two using '+'",
		OldCode:     "Duplicate field name",
		NewCode:     "Use a different field name, or { ... } + { ... }",
		Confidence:  0.70,
	}
}

// suggestRenameLocal suggests renaming a duplicate local binding
func suggestRenameLocal(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Rename one of the duplicate local bindings",
		OldCode:     "local x = ...; local x = ...;",
		NewCode:     "local x = ...; local y = ...;",
		Confidence:  0.75,
	}
}

// suggestAssertMessage suggests adding a message to a failing assert
func suggestAssertMessage(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Add a message to the assert so failures are easier to diagnose",
		OldCode:     "assert cond;",
		NewCode:     "assert cond : 'explanation of what must hold';",
		Confidence:  0.55,
	}
}

// suggestDivisionByZero suggests guarding a division
func suggestDivisionByZero(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Guard the divisor with a conditional before dividing",
		OldCode:     "a / b",
		NewCode:     "if b == 0 then error 'b must be nonzero' else a / b",
		Confidence:  0.60,
	}
}

// suggestImportPath suggests checking jpath when an import can't be found
func suggestImportPath(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check the import path is relative to this file, or add its directory to the jpath (-J)",
		OldCode:     "",
		NewCode:     "",
		Confidence:  0.55,
	}
}

// suggestSelfSuper suggests moving an expression inside an object body
func suggestSelfSuper(err CompilerError) *FixSuggestion {
	return &FixSuggestion{
		Description: "'self' and 'super' are only valid inside an object field's value",
		OldCode:     "",
		NewCode:     "",
		Confidence:  0.60,
	}
}
