// Package output prints command results as YAML, JSON or plain text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Texter is implemented by results with a human-readable rendering.
type Texter interface {
	Text() string
}

// ParseFormat validates a --format value. An empty value picks text for a
// terminal and YAML otherwise.
func ParseFormat(s string, out *os.File) (Format, error) {
	switch Format(s) {
	case "":
		if IsTerminal(out) {
			return FormatText, nil
		}
		return FormatYAML, nil
	case FormatYAML, FormatJSON, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml, json or text)", s)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Print serializes v to w in format f.
func Print(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		return PrintJSON(w, v)
	case FormatYAML:
		return PrintYAML(w, v)
	case FormatText:
		return PrintText(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// PrintJSON serializes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v as YAML.
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// PrintText writes v.Text() when v is a Texter, else v formatted with %v.
func PrintText(w io.Writer, v any) error {
	var s string
	if t, ok := v.(Texter); ok {
		s = t.Text()
	} else {
		s = fmt.Sprint(v)
	}
	if s == "" || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
