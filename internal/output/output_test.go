package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type result struct {
	Display string `yaml:"display" json:"display"`
	Label   string `yaml:"clear_label" json:"clear_label"`
}

func (r result) Text() string { return r.Display }

func TestPrintFormats(t *testing.T) {
	v := result{Display: "0,5", Label: "C"}

	var buf bytes.Buffer
	if err := Print(&buf, FormatJSON, v); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON result
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil || fromJSON != v {
		t.Fatalf("json output %q decoded to %+v (%v)", buf.String(), fromJSON, err)
	}

	buf.Reset()
	if err := Print(&buf, FormatYAML, v); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML result
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil || fromYAML != v {
		t.Fatalf("yaml output %q decoded to %+v (%v)", buf.String(), fromYAML, err)
	}

	buf.Reset()
	if err := Print(&buf, FormatText, v); err != nil {
		t.Fatalf("text: %v", err)
	}
	if buf.String() != "0,5\n" {
		t.Fatalf("text output = %q", buf.String())
	}

	buf.Reset()
	if err := Print(&buf, FormatText, 42); err != nil || buf.String() != "42\n" {
		t.Fatalf("text of int = %q (%v)", buf.String(), err)
	}

	if err := Print(&buf, Format("xml"), v); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got, err := ParseFormat("", f); err != nil || got != FormatYAML {
		t.Fatalf("default for a file = %q, %v; want yaml", got, err)
	}
	if got, err := ParseFormat("json", f); err != nil || got != FormatJSON {
		t.Fatalf("json = %q, %v", got, err)
	}
	if _, err := ParseFormat("agent", f); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if IsTerminal(nil) {
		t.Fatal("nil file is not a terminal")
	}
}
