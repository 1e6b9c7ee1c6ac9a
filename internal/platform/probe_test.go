package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbe(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	dir := filepath.Join(tmp, "dir")
	file := filepath.Join(tmp, "file")
	good := filepath.Join(tmp, "good")
	broken := filepath.Join(tmp, "broken")

	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(dir, good); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(tmp, "gone"), broken); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		kind     Kind
		target   string
		dangling bool
	}{
		{"missing", filepath.Join(tmp, "nope"), KindMissing, "", false},
		{"dir", dir, KindDir, "", false},
		{"file", file, KindFile, "", false},
		{"link", good, KindSymlink, dir, false},
		{"broken link", broken, KindSymlink, filepath.Join(tmp, "gone"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Probe(tt.path)
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
			}
			if e.Target != tt.target {
				t.Errorf("Target = %q, want %q", e.Target, tt.target)
			}
			if e.Dangling != tt.dangling {
				t.Errorf("Dangling = %v, want %v", e.Dangling, tt.dangling)
			}
		})
	}
}

func TestEntryPredicates(t *testing.T) {
	if !(Entry{Kind: KindSymlink}).IsLink() {
		t.Error("symlink entry should be a link")
	}
	if (Entry{Kind: KindSymlink}).IsReal() {
		t.Error("symlink entry should not be real")
	}
	if !(Entry{Kind: KindDir}).IsReal() || !(Entry{Kind: KindFile}).IsReal() {
		t.Error("dir and file entries should be real")
	}
	if (Entry{Kind: KindMissing}).IsReal() || (Entry{Kind: KindMissing}).IsLink() {
		t.Error("missing entry should be neither real nor link")
	}
}

func TestExistsAndIsDir(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "f")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmp) || !IsDir(tmp) {
		t.Error("temp dir should exist and be a dir")
	}
	if !Exists(file) || IsDir(file) {
		t.Error("file should exist and not be a dir")
	}
	if Exists(filepath.Join(tmp, "missing")) {
		t.Error("missing path reported as existing")
	}
}
