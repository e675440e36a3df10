package formatter

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/goccy/go-json"
)

// Formatter canonicalizes rendered units for the language they are written in.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Go code as a string and returns gofmt-formatted Go code
func (f *Formatter) Format(code string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}
	return string(formatted), nil
}

// FormatAs formats code written in language. Go goes through gofmt, JSON is
// re-indented with two spaces, and anything else only has its trailing
// whitespace normalized to a single newline.
func (f *Formatter) FormatAs(language, code string) (string, error) {
	switch language {
	case "go":
		return f.Format(code)
	case "json":
		return f.formatJSON(code)
	default:
		return normalizeTrailingNewline(code), nil
	}
}

func (f *Formatter) formatJSON(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(code), "", "  "); err != nil {
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}
	return normalizeTrailingNewline(buf.String()), nil
}

func normalizeTrailingNewline(code string) string {
	trimmed := strings.TrimRight(code, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
