package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "kim.assessment.json")
	writeFile(t, root, "2026/march/lee.assessment.json")
	writeFile(t, root, "2026/march/notes.txt")
	writeFile(t, root, "archive/park.assessment.json")

	files, err := NewFileDiscovery(root).Discover("**/*.assessment.json")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{
		"2026/march/lee.assessment.json",
		"archive/park.assessment.json",
		"kim.assessment.json",
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}
	for i, rel := range want {
		if files[i].RelPath != filepath.FromSlash(rel) && files[i].RelPath != rel {
			t.Errorf("files[%d] = %q, want %q", i, files[i].RelPath, rel)
		}
		if files[i].Size == 0 {
			t.Errorf("files[%d] size not populated", i)
		}
	}
}

func TestDiscoverSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "dir.assessment.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "real.assessment.json")

	files, err := NewFileDiscovery(root).Discover("**/*.assessment.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0].RelPath) != "real.assessment.json" {
		t.Errorf("got %+v, want just the regular file", files)
	}
}

func TestDiscoverNoMatches(t *testing.T) {
	files, err := NewFileDiscovery(t.TempDir()).Discover("**/*.assessment.json")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}
