package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "IMPORT FAILED",
				Problem: "Cannot resolve import 'lib/foo.libsonnet'.",
			},
			contains: []string{
				"❌",
				"IMPORT FAILED",
				"Cannot resolve import 'lib/foo.libsonnet'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "USAGE",
				Problem:     "unknown flag: --indnet",
				Suggestions: []string{"--indent"},
			},
			contains: []string{
				"Did you mean: --indent?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "STATIC ERROR",
				Problem: "unexpected token",
				HelpCommands: []string{
					"Get help: jsonnet --help",
				},
			},
			contains: []string{
				"→ Get help: jsonnet --help",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Deprecated native callback name used",
			},
			contains: []string{
				"⚠️",
				"Deprecated native callback name used",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "Evaluation completed",
			},
			contains: []string{
				"ℹ️",
				"Evaluation completed",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "IMPORT FAILED",
				Problem:     "Cannot resolve import 'vendor/lib.libsonnet'.",
				Consequence: "Searched JPATH: vendor, lib",
			},
			contains: []string{
				"Cannot resolve import 'vendor/lib.libsonnet'.",
				"Searched JPATH: vendor, lib",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestUsageError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := UsageError("no input file and stdin is a terminal", nil, true)

	expected := []string{
		"USAGE",
		"no input file and stdin is a terminal",
		"Get help: jsonnet --help",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("UsageError() missing expected string: %q", exp)
		}
	}
}

func TestImportError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ImportError("lib/foo.libsonnet", []string{"vendor", "lib"}, true)

	expected := []string{
		"IMPORT FAILED",
		"Cannot resolve import 'lib/foo.libsonnet'.",
		"Searched JPATH: vendor, lib",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ImportError() missing expected string: %q", exp)
		}
	}
}

func TestWriteError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "TEST ERROR",
		Problem: "This is a test",
	}

	WriteError(&buf, opts)

	output := buf.String()
	if !strings.Contains(output, "TEST ERROR") {
		t.Errorf("WriteError() did not write to buffer correctly")
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("Evaluation completed", true)

	if !strings.Contains(result, "✓") {
		t.Errorf("FormatSuccess() missing checkmark")
	}
	if !strings.Contains(result, "Evaluation completed") {
		t.Errorf("FormatSuccess() missing message")
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "Test success", true)

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("WriteSuccess() missing checkmark")
	}
	if !strings.Contains(output, "Test success") {
		t.Errorf("WriteSuccess() missing message")
	}
}

func TestWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Warning("Deprecated feature", []string{"Use new API"}, true)

	expected := []string{
		"⚠️",
		"Deprecated feature",
		"Did you mean: Use new API?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Warning() missing expected string: %q", exp)
		}
	}
}

func TestInfo(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Info("Process starting", true)

	expected := []string{
		"ℹ️",
		"Process starting",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Info() missing expected string: %q", exp)
		}
	}
}
