package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	termRed    = color.New(color.FgRed)
	termBold   = color.New(color.Bold)
	termYellow = color.New(color.FgYellow)
	termBlue   = color.New(color.FgBlue)
	termCyan   = color.New(color.FgCyan)
	termGray   = color.New(color.FgHiBlack)
)

// FormatForTerminal formats a CompilerError for terminal output with ANSI colors
func (e CompilerError) FormatForTerminal() string {
	var sb strings.Builder

	severityColor := getSeverityColor(e.Severity)
	sb.WriteString(severityColor.Sprint(strings.Title(e.Severity.String())))
	sb.WriteString(fmt.Sprintf(": %s\n", e.Message))

	sb.WriteString("  ")
	sb.WriteString(termCyan.Sprint("-->"))
	sb.WriteString(fmt.Sprintf(" %s:%d:%d\n", e.Location.File, e.Location.Line, e.Location.Column))

	if len(e.Context.SourceLines) > 0 {
		sb.WriteString(formatSourceContext(e.Context))
	}

	if e.Suggestion != nil {
		sb.WriteString(formatSuggestion(*e.Suggestion))
	}

	if len(e.RelatedErrors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(termBold.Sprint("Related errors:"))
		sb.WriteString("\n")
		for i, related := range e.RelatedErrors {
			sb.WriteString(fmt.Sprintf("  %d. %s:%d:%d: %s\n",
				i+1,
				related.Location.File,
				related.Location.Line,
				related.Location.Column,
				related.Message))
		}
	}

	return sb.String()
}

// formatSourceContext formats the source code context with highlighting
func formatSourceContext(ctx ErrorContext) string {
	var sb strings.Builder

	sb.WriteString("   ")
	sb.WriteString(termBlue.Sprint("|"))
	sb.WriteString("\n")

	for i, line := range ctx.SourceLines {
		lineNum := i + 1
		isErrorLine := i == ctx.Highlight.Line

		gutterColor := termGray
		if isErrorLine {
			gutterColor = termBlue
		}

		sb.WriteString(gutterColor.Sprintf("%2d", lineNum))
		sb.WriteString(" ")
		sb.WriteString(termBlue.Sprint("|"))
		sb.WriteString(fmt.Sprintf(" %s\n", line))

		if isErrorLine {
			sb.WriteString("   ")
			sb.WriteString(termBlue.Sprint("|"))
			sb.WriteString(" ")

			for j := 0; j < ctx.Highlight.Start; j++ {
				sb.WriteString(" ")
			}

			highlightLength := ctx.Highlight.End - ctx.Highlight.Start
			if highlightLength <= 0 {
				highlightLength = 1
			}
			sb.WriteString(termRed.Sprint(strings.Repeat("^", highlightLength)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("   ")
	sb.WriteString(termBlue.Sprint("|"))
	sb.WriteString("\n")

	return sb.String()
}

// formatSuggestion formats a fix suggestion
func formatSuggestion(suggestion FixSuggestion) string {
	var sb strings.Builder

	help := color.New(color.Bold, color.FgCyan)
	sb.WriteString(help.Sprint("Help:"))
	sb.WriteString(fmt.Sprintf(" %s\n", suggestion.Description))

	if suggestion.NewCode != "" {
		sb.WriteString(help.Sprint("Suggestion:"))
		sb.WriteString("\n")

		lines := strings.Split(suggestion.NewCode, "\n")
		for _, line := range lines {
			sb.WriteString(fmt.Sprintf("    %s\n", line))
		}

		if suggestion.Confidence < 1.0 {
			confidencePercent := int(suggestion.Confidence * 100)
			sb.WriteString(termGray.Sprintf("(Confidence: %d%%)\n", confidencePercent))
		}
	}

	return sb.String()
}

// getSeverityColor returns the color for a severity level
func getSeverityColor(severity Severity) *color.Color {
	switch severity {
	case Info:
		return termBlue
	case Warning:
		return termYellow
	case Error:
		return termRed
	case Fatal:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New()
	}
}

// FormatSummary formats a summary of errors and warnings
func FormatSummary(errorCount, warningCount int) string {
	var parts []string

	if errorCount > 0 {
		parts = append(parts, termRed.Sprintf("%d error(s)", errorCount))
	}

	if warningCount > 0 {
		parts = append(parts, termYellow.Sprintf("%d warning(s)", warningCount))
	}

	if len(parts) == 0 {
		return termBlue.Sprint("No errors or warnings") + "\n"
	}

	return "\n" + termBold.Sprintf("Evaluation failed with %s", strings.Join(parts, " and ")) + "\n"
}

// StripColors removes ANSI color codes from a string (useful for testing)
func StripColors(s string) string {
	result := s
	for strings.Contains(result, "\033[") {
		start := strings.Index(result, "\033[")
		end := strings.Index(result[start:], "m")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}
	return result
}
