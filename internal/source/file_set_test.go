package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("input.txt", []byte("[1]\n[2]"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("input.txt", []byte("[3]\n[4]"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	if got := string(fs.Get(id1).Content); got != "[1]\n[2]" {
		t.Errorf("first file content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Errorf("Get on unknown id must return nil")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.txt", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pairs.txt", []byte("[1,2]\n[3]\n\n[[4]]"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{4, LineCol{Line: 1, Col: 5}},
		{5, LineCol{Line: 1, Col: 6}}, // сам '\n'
		{6, LineCol{Line: 2, Col: 1}},
		{10, LineCol{Line: 3, Col: 1}},
		{12, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLineAndLineSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pairs.txt", []byte("[1]\n[2,3]\n"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "[1]" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "[2,3]" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q, want empty trailing line", got)
	}
	if _, ok := f.LineSpan(4); ok {
		t.Errorf("LineSpan(4) must not exist")
	}
	if _, ok := f.LineSpan(0); ok {
		t.Errorf("LineSpan(0) must not exist")
	}
	sp, _ := f.LineSpan(2)
	if sp != (Span{File: id, Start: 4, End: 9}) {
		t.Errorf("LineSpan(2) = %+v", sp)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[1]\r\n[2]\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "[1]\n[2]\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLineColAndFlags(t *testing.T) {
	if got := (LineCol{Line: 3, Col: 14}).String(); got != "3:14" {
		t.Errorf("LineCol.String = %q", got)
	}
	flags := FileVirtual | FileHadBOM
	if !flags.Has(FileVirtual) || !flags.Has(FileVirtual|FileHadBOM) || flags.Has(FileNormalizedCRLF) {
		t.Errorf("Has is wrong for %08b", flags)
	}
}
