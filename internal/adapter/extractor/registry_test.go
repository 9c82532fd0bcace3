package extractor

import (
	"strings"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(".txt", NewPlainText())
	r.Register("md", NewPlainText())

	for _, name := range []string{"notes.txt", "README.md", "UPPER.TXT"} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("expected extractor for %s, got error: %v", name, err)
		}
	}
}

func TestRegistryUnsupportedType(t *testing.T) {
	r := NewRegistry()
	r.Register(".txt", NewPlainText())
	r.Register(".md", NewPlainText())

	_, err := r.Lookup("report.pdf")
	if err == nil {
		t.Fatal("expected error for unregistered extension")
	}
	if !strings.Contains(err.Error(), "md, txt") {
		t.Errorf("expected supported types in error, got: %v", err)
	}
}

func TestRegistryNoExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(".txt", NewPlainText())

	if _, err := r.Lookup("Makefile"); err == nil {
		t.Error("expected error for file without extension")
	}
}

func TestRegistryPDFOptIn(t *testing.T) {
	r := NewRegistry()
	r.Register(".txt", NewPlainText())

	if _, err := r.Lookup("doc.pdf"); err == nil {
		t.Fatal("PDF should not be supported before registration")
	}

	r.Register(".pdf", NewPDF())
	if _, err := r.Lookup("doc.pdf"); err != nil {
		t.Errorf("expected PDF extractor after registration, got: %v", err)
	}
}

func TestPlainTextExtract(t *testing.T) {
	e := NewPlainText()

	text, err := e.Extract([]byte("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello world" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestPlainTextStripsBOM(t *testing.T) {
	e := NewPlainText()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("content")...)
	text, err := e.Extract(data)
	if err != nil {
		t.Fatal(err)
	}
	if text != "content" {
		t.Errorf("expected BOM stripped, got %q", text)
	}
}

func TestPlainTextRejectsInvalidUTF8(t *testing.T) {
	e := NewPlainText()

	if _, err := e.Extract([]byte{0xFF, 0xFE, 0x00}); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}
