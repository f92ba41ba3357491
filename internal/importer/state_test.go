package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDBRoundTrip(t *testing.T) {
	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("strong.csv", 120, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("fresh state should not know the file")
	}

	if err := state.MarkImported("strong.csv", 120, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	done, err = state.IsImported("strong.csv", 120, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !done {
		t.Error("marked file should be reported as imported")
	}

	// A changed file must be re-imported even under the same name.
	done, err = state.IsImported("strong.csv", 200, "def")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("same name with new size/hash should not count as imported")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.csv")
	if err := os.WriteFile(path, []byte("a;b;c\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 || len(h1) != 64 {
		t.Errorf("hashes %q / %q, want stable 64-char hex", h1, h2)
	}

	if err := os.WriteFile(path, []byte("different"), 0644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h3 == h1 {
		t.Error("changed content should change the hash")
	}
}
