package errors_test

import (
	"fmt"

	"github.com/jsonnetlang/jsonnet/compiler/errors"
)

// ExampleCompilerError_FormatForTerminal demonstrates terminal formatting
func ExampleCompilerError_FormatForTerminal() {
	sourceContent := `{
  title: "post",
  slug = "my-post",
}
`

	loc := errors.SourceLocation{
		File:   "app.jsonnet",
		Line:   3,
		Column: 8,
		Length: 1,
	}

	err := errors.NewCompilerError(
		"parser",
		errors.ErrExpectedColon,
		"Expected ':'",
		loc,
		errors.Error,
	)

	err = errors.EnrichError(err, sourceContent)

	output := err.FormatForTerminal()
	fmt.Println(errors.StripColors(output))

	// Output includes error, location, context, and suggestion
}

// ExampleErrorRecovery demonstrates collecting multiple errors
func ExampleErrorRecovery() {
	recovery := errors.NewErrorRecovery()

	for i := 1; i <= 3; i++ {
		loc := errors.SourceLocation{
			File:   "app.jsonnet",
			Line:   i,
			Column: 1,
		}
		err := errors.NewCompilerError(
			"parser",
			errors.ErrUnexpectedToken,
			fmt.Sprintf("Unexpected token at line %d", i),
			loc,
			errors.Error,
		)
		recovery.Recover(err)
	}

	fmt.Printf("Collected %d errors\n", recovery.ErrorCount())
	fmt.Println(recovery.Summary())

	// Output:
	// Collected 3 errors
	// Found 3 error(s)
}

// ExampleFormatErrorsAsJSON demonstrates JSON output
func ExampleFormatErrorsAsJSON() {
	loc := errors.SourceLocation{
		File:   "app.jsonnet",
		Line:   5,
		Column: 10,
	}

	err := errors.NewCompilerError(
		"runtime",
		errors.ErrFieldNotFound,
		"Field does not exist: foo",
		loc,
		errors.Error,
	)

	jsonOutput, _ := errors.FormatErrorsAsJSON([]errors.CompilerError{err})
	fmt.Println("JSON output available")
	_ = jsonOutput

	// Output:
	// JSON output available
}
