package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLogger(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })

	var buf bytes.Buffer
	a := GetLogger("[a] ")
	SetOutput(&buf)
	b := GetLogger("[b] ")

	a.Print("first")
	b.Print("second")

	out := buf.String()
	if !strings.Contains(out, "[a] ") || !strings.Contains(out, "first") {
		t.Errorf("expected logger created before SetOutput to be redirected, got %q", out)
	}
	if !strings.Contains(out, "[b] ") || !strings.Contains(out, "second") {
		t.Errorf("expected logger created after SetOutput to use the sink, got %q", out)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })

	path := filepath.Join(t.TempDir(), "skin.log")
	if err := SetOutputFile(path); err != nil {
		t.Fatalf("SetOutputFile: %v", err)
	}
	GetLogger("[file] ").Print("hello")
	if err := SetOutputFile(""); err != nil {
		t.Fatalf("SetOutputFile(\"\"): %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[file] ") {
		t.Errorf("expected prefixed line in log file, got %q", data)
	}
}
