package testutil

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// ReadFile returns a file's content as a string, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// TemplateXML builds a template document holding one <string> element per
// value, nested the way exported project files nest them.
func TemplateXML(values ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<project>\n  <resources>\n")
	for _, v := range values {
		b.WriteString("    <resource>\n      <string>")
		_ = xml.EscapeText(&b, []byte(v))
		b.WriteString("</string>\n    </resource>\n")
	}
	b.WriteString("  </resources>\n</project>\n")
	return b.String()
}
