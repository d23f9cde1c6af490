package errors

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestError_Creation(t *testing.T) {
	loc := SourceLocation{
		File:   "app.jsonnet",
		Line:   15,
		Column: 7,
		Length: 9,
	}

	err := NewCompilerError("parser", ErrTypeMismatch, "Type mismatch in assignment", loc, Error)

	if err.Phase != "parser" {
		t.Errorf("Expected phase 'parser', got '%s'", err.Phase)
	}
	if err.Code != ErrTypeMismatch {
		t.Errorf("Expected code '%s', got '%s'", ErrTypeMismatch, err.Code)
	}
	if err.Severity != Error {
		t.Errorf("Expected severity Error, got %v", err.Severity)
	}
	if err.Location.Line != 15 {
		t.Errorf("Expected line 15, got %d", err.Location.Line)
	}
}

func TestError_TerminalFormat(t *testing.T) {
	loc := SourceLocation{
		File:   "app.jsonnet",
		Line:   15,
		Column: 7,
		Length: 9,
	}

	ctx := ErrorContext{
		SourceLines: []string{
			"  author: {",
			"    name: self.nam,",
			"    age: 30,",
			"  },",
		},
		Highlight: Highlight{
			Line:  1,
			Start: 10,
			End:   17,
		},
	}

	suggestion := FixSuggestion{
		Description: "Did you mean 'name'?",
		OldCode:     "self.nam",
		NewCode:     "self.name",
		Confidence:  0.92,
	}

	err := NewCompilerError("runtime", ErrFieldNotFound, "Field does not exist: nam", loc, Error)
	err = err.WithContext(ctx).WithSuggestion(suggestion)

	output := err.FormatForTerminal()

	if !strings.Contains(output, "Error") {
		t.Error("Output should contain 'Error'")
	}
	if !strings.Contains(output, "Field does not exist: nam") {
		t.Error("Output should contain error message")
	}
	if !strings.Contains(output, "app.jsonnet:15:7") {
		t.Error("Output should contain location")
	}
	if !strings.Contains(output, "self.nam") {
		t.Error("Output should contain source context")
	}
	if !strings.Contains(output, "Help") {
		t.Error("Output should contain suggestion")
	}

	stripped := StripColors(output)
	if !strings.Contains(stripped, "Error") {
		t.Error("Stripped output should still contain 'Error'")
	}
}

func TestError_JSONFormat(t *testing.T) {
	loc := SourceLocation{
		File:   "app.jsonnet",
		Line:   15,
		Column: 7,
		Length: 9,
	}

	err := NewCompilerError("parser", ErrTypeMismatch, "Type mismatch in assignment", loc, Error)

	jsonStr, jsonErr := err.FormatAsJSON()
	if jsonErr != nil {
		t.Fatalf("Failed to format as JSON: %v", jsonErr)
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if result["phase"] != "parser" {
		t.Errorf("Expected phase 'parser', got '%v'", result["phase"])
	}
	if result["code"] != ErrTypeMismatch {
		t.Errorf("Expected code '%s', got '%v'", ErrTypeMismatch, result["code"])
	}
	if result["severity"] != "error" {
		t.Errorf("Expected severity 'error', got '%v'", result["severity"])
	}

	location, ok := result["location"].(map[string]interface{})
	if !ok {
		t.Fatalf("location is not a map: %T %v", result["location"], result["location"])
	}
	if location["file"] != "app.jsonnet" {
		t.Errorf("Expected file 'app.jsonnet', got '%v'", location["file"])
	}
	if location["line"] != float64(15) {
		t.Errorf("Expected line 15, got %v", location["line"])
	}
}

func TestError_ContextExtraction(t *testing.T) {
	sourceContent := `{
  name: "jsonnet",
  version: 1,
  tags: ["a", "b"],
  author: self.name,
  nested: { x: 1 },
}
`

	loc := SourceLocation{
		File:   "app.jsonnet",
		Line:   5,
		Column: 11,
		Length: 4,
	}

	ctx := extractSourceContext(loc, sourceContent)

	if len(ctx.SourceLines) == 0 {
		t.Fatal("Expected source lines, got none")
	}

	if len(ctx.SourceLines) > 7 {
		t.Errorf("Expected at most 7 lines, got %d", len(ctx.SourceLines))
	}

	if ctx.Highlight.Line < 0 || ctx.Highlight.Line >= len(ctx.SourceLines) {
		t.Errorf("Highlight line %d is out of range", ctx.Highlight.Line)
	}

	errorLine := ctx.SourceLines[ctx.Highlight.Line]
	if !strings.Contains(errorLine, "author") {
		t.Errorf("Expected error line to contain 'author', got '%s'", errorLine)
	}
}

func TestError_AutoFixSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"Expected colon", ErrExpectedColon, true},
		{"Unterminated string", ErrUnterminatedString, true},
		{"Unexpected token", ErrUnexpectedToken, true},
		{"Duplicate object key", ErrDuplicateObjectKey, true},
		{"Division by zero", ErrDivisionByZero, true},
		{"Unknown error", "E999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := SourceLocation{File: "test.jsonnet", Line: 1, Column: 1}
			err := NewCompilerError("parser", tt.code, "Test error", loc, Error)
			err = err.WithContext(ErrorContext{
				SourceLines: []string{"field = value"},
				Highlight:   Highlight{Line: 0, Start: 0, End: 5},
			})

			suggestion := suggestFix(err)

			if tt.expected && suggestion == nil {
				t.Error("Expected a suggestion but got none")
			}
			if !tt.expected && suggestion != nil {
				t.Error("Expected no suggestion but got one")
			}

			if suggestion != nil {
				if suggestion.Description == "" {
					t.Error("Suggestion should have a description")
				}
				if suggestion.Confidence < 0 || suggestion.Confidence > 1 {
					t.Errorf("Confidence should be 0-1, got %f", suggestion.Confidence)
				}
			}
		})
	}
}

func TestRecovery_CollectsAllErrors(t *testing.T) {
	recovery := NewErrorRecovery()

	for i := 1; i <= 5; i++ {
		loc := SourceLocation{File: "test.jsonnet", Line: i, Column: 1}
		err := NewCompilerError("parser", ErrUnexpectedToken, "Unexpected token", loc, Error)
		recovery.Recover(err)
	}

	if recovery.ErrorCount() != 5 {
		t.Errorf("Expected 5 errors, got %d", recovery.ErrorCount())
	}

	if !recovery.HasErrors() {
		t.Error("Expected HasErrors() to be true")
	}
}

func TestRecovery_SummaryCount(t *testing.T) {
	recovery := NewErrorRecovery()

	for i := 1; i <= 3; i++ {
		loc := SourceLocation{File: "test.jsonnet", Line: i, Column: 1}
		err := NewCompilerError("parser", ErrUnexpectedToken, "Error", loc, Error)
		recovery.Recover(err)
	}

	for i := 4; i <= 6; i++ {
		loc := SourceLocation{File: "test.jsonnet", Line: i, Column: 1}
		warn := NewCompilerError("parser", ErrUnexpectedToken, "Warning", loc, Warning)
		recovery.Recover(warn)
	}

	if recovery.ErrorCount() != 3 {
		t.Errorf("Expected 3 errors, got %d", recovery.ErrorCount())
	}

	if recovery.WarningCount() != 3 {
		t.Errorf("Expected 3 warnings, got %d", recovery.WarningCount())
	}

	if recovery.TotalCount() != 6 {
		t.Errorf("Expected 6 total, got %d", recovery.TotalCount())
	}

	summary := recovery.Summary()
	if !strings.Contains(summary, "3 error(s)") {
		t.Errorf("Summary should mention 3 errors: %s", summary)
	}
	if !strings.Contains(summary, "3 warning(s)") {
		t.Errorf("Summary should mention 3 warnings: %s", summary)
	}
}

func TestRecovery_MaxErrors(t *testing.T) {
	recovery := NewErrorRecoveryWithMax(10)

	for i := 1; i <= 15; i++ {
		loc := SourceLocation{File: "test.jsonnet", Line: i, Column: 1}
		err := NewCompilerError("parser", ErrUnexpectedToken, "Error", loc, Error)
		recovery.Recover(err)
	}

	if recovery.ErrorCount() != 10 {
		t.Errorf("Expected 10 errors (max), got %d", recovery.ErrorCount())
	}
}

func TestRecovery_TerminalFormat(t *testing.T) {
	recovery := NewErrorRecovery()

	for i := 1; i <= 2; i++ {
		loc := SourceLocation{File: "test.jsonnet", Line: i, Column: 1}
		err := NewCompilerError("parser", ErrUnexpectedToken, "Unexpected token", loc, Error)
		recovery.Recover(err)
	}

	output := recovery.FormatForTerminal()

	if !strings.Contains(output, "Error") {
		t.Error("Output should contain 'Error'")
	}
	if !strings.Contains(output, "2 error(s)") {
		t.Error("Output should contain error count")
	}
}

func TestRecovery_JSONFormat(t *testing.T) {
	recovery := NewErrorRecovery()

	loc1 := SourceLocation{File: "test.jsonnet", Line: 1, Column: 1}
	err1 := NewCompilerError("parser", ErrUnexpectedToken, "Error 1", loc1, Error)
	recovery.Recover(err1)

	loc2 := SourceLocation{File: "test.jsonnet", Line: 2, Column: 1}
	warn1 := NewCompilerError("parser", ErrUnexpectedToken, "Warning 1", loc2, Warning)
	recovery.Recover(warn1)

	jsonStr, jsonErr := recovery.FormatAsJSON()
	if jsonErr != nil {
		t.Fatalf("Failed to format as JSON: %v", jsonErr)
	}

	var result JSONOutput
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if result.Status != "error" {
		t.Errorf("Expected status 'error', got '%s'", result.Status)
	}

	if result.Summary.ErrorCount != 1 {
		t.Errorf("Expected 1 error, got %d", result.Summary.ErrorCount)
	}

	if result.Summary.WarningCount != 1 {
		t.Errorf("Expected 1 warning, got %d", result.Summary.WarningCount)
	}
}

func TestErrorHandling_EndToEnd(t *testing.T) {
	sourceContent := `{
  name = "jsonnet",
  tags: ["a" "b"],
  x: 1 / 0,
  author: { name: "jd", name: "dup" },
  result: undefinedThing,
}
`

	recovery := NewErrorRecovery()

	loc1 := SourceLocation{File: "app.jsonnet", Line: 2, Column: 8, Length: 1}
	err1 := NewCompilerError("parser", ErrExpectedColon, "Expected ':'", loc1, Error)
	err1 = EnrichError(err1, sourceContent)
	recovery.Recover(err1)

	loc2 := SourceLocation{File: "app.jsonnet", Line: 3, Column: 13, Length: 3}
	err2 := NewCompilerError("parser", ErrUnexpectedToken, "Unexpected token", loc2, Error)
	err2 = EnrichError(err2, sourceContent)
	recovery.Recover(err2)

	loc3 := SourceLocation{File: "app.jsonnet", Line: 4, Column: 6, Length: 3}
	err3 := NewCompilerError("runtime", ErrDivisionByZero, "Division by zero", loc3, Error)
	err3 = EnrichError(err3, sourceContent)
	recovery.Recover(err3)

	loc4 := SourceLocation{File: "app.jsonnet", Line: 5, Column: 16, Length: 4}
	err4 := NewCompilerError("parser", ErrDuplicateObjectKey, "Duplicate object key: name", loc4, Error)
	err4 = EnrichError(err4, sourceContent)
	recovery.Recover(err4)

	loc5 := SourceLocation{File: "app.jsonnet", Line: 6, Column: 11, Length: 14}
	err5 := NewCompilerError("runtime", ErrUnknownVariable, "Unknown variable: undefinedThing", loc5, Warning)
	err5 = EnrichError(err5, sourceContent)
	recovery.Recover(err5)

	if recovery.ErrorCount() != 4 {
		t.Errorf("Expected 4 errors, got %d", recovery.ErrorCount())
	}

	if recovery.WarningCount() != 1 {
		t.Errorf("Expected 1 warning, got %d", recovery.WarningCount())
	}

	terminalOutput := recovery.FormatForTerminal()
	if !strings.Contains(terminalOutput, "4 error(s)") {
		t.Error("Terminal output should show 4 errors")
	}
	if !strings.Contains(terminalOutput, "1 warning(s)") {
		t.Error("Terminal output should show 1 warning")
	}

	jsonOutput, err := recovery.FormatAsJSON()
	if err != nil {
		t.Fatalf("Failed to format as JSON: %v", err)
	}

	var result JSONOutput
	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if result.Summary.ErrorCount != 4 {
		t.Errorf("Expected 4 errors in JSON, got %d", result.Summary.ErrorCount)
	}

	if result.Summary.WarningCount != 1 {
		t.Errorf("Expected 1 warning in JSON, got %d", result.Summary.WarningCount)
	}

	suggestionsCount := 0
	for _, e := range recovery.GetErrors() {
		if e.Suggestion != nil {
			suggestionsCount++
		}
	}

	if suggestionsCount < 2 {
		t.Errorf("Expected at least 2 errors with suggestions, got %d", suggestionsCount)
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{Info, "info"},
		{Warning, "warning"},
		{Error, "error"},
		{Fatal, "fatal"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.severity.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, tt.severity.String())
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{ErrUnterminatedString, "E001"},
		{ErrUnexpectedToken, "E100"},
		{ErrUnknownVariable, "E200"},
		{ErrTypeMismatch, "E210"},
		{ErrDivisionByZero, "E230"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, tt.code)
			}

			msg := GetErrorMessage(tt.code)
			if msg == "Unknown error" {
				t.Errorf("No message defined for %s", tt.code)
			}

			phase := GetPhaseForCode(tt.code)
			if phase == "unknown" {
				t.Errorf("Could not determine phase for %s", tt.code)
			}
		})
	}
}

func TestGetPhaseForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"E001", "lexer"},
		{"E050", "lexer"},
		{"E100", "parser"},
		{"E150", "parser"},
		{"E200", "runtime"},
		{"E250", "runtime"},
		{"E999", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			phase := GetPhaseForCode(tt.code)
			if phase != tt.expected {
				t.Errorf("Expected phase '%s' for code %s, got '%s'", tt.expected, tt.code, phase)
			}
		})
	}
}

func TestStripColors(t *testing.T) {
	input := "\033[31mError\033[0m: \033[1mBold text\033[0m"
	expected := "Error: Bold text"

	result := StripColors(input)
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}

func TestRelatedErrors(t *testing.T) {
	loc1 := SourceLocation{File: "app.jsonnet", Line: 1, Column: 1}
	err1 := NewCompilerError("parser", ErrTypeMismatch, "Main error", loc1, Error)

	loc2 := SourceLocation{File: "app.jsonnet", Line: 2, Column: 1}
	err2 := NewCompilerError("parser", ErrTypeMismatch, "Related error", loc2, Error)

	err1 = err1.WithRelatedError(err2)

	if len(err1.RelatedErrors) != 1 {
		t.Errorf("Expected 1 related error, got %d", len(err1.RelatedErrors))
	}

	if err1.RelatedErrors[0].Message != "Related error" {
		t.Errorf("Related error message mismatch")
	}
}
