package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func recipeFS() fstest.MapFS {
	return fstest.MapFS{
		"pancakes.md":          {Data: []byte("# Pancakes\n")},
		"waffles.md":           {Data: []byte("# Waffles\n")},
		"notes.txt":            {Data: []byte("not a recipe")},
		"desserts/brownies.md": {Data: []byte("# Brownies\n")},
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{})

	source, err := loader.LoadFile(context.Background(), "pancakes.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if source.Path != "pancakes.md" {
		t.Fatalf("unexpected path %q", source.Path)
	}
	sum := sha256.Sum256([]byte("# Pancakes\n"))
	if string(source.Checksum) != string(sum[:]) {
		t.Fatalf("unexpected checksum %x", source.Checksum)
	}
}

func TestLoaderLoadFileMissing(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{})

	_, err := loader.LoadFile(context.Background(), "missing.md")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestLoaderLoadDirectoryRecursive(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{Recursive: true})

	sources, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	want := []string{"desserts/brownies.md", "pancakes.md", "waffles.md"}
	assertPaths(t, sources, want)
}

func TestLoaderLoadDirectoryNonRecursiveOverride(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{Recursive: true})
	recursive := false

	sources, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Recursive: &recursive})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	assertPaths(t, sources, []string{"pancakes.md", "waffles.md"})
}

func TestLoaderLoadDirectoryPatternOverride(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{Recursive: true})

	sources, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Pattern: "*.txt"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	assertPaths(t, sources, []string{"notes.txt"})
}

func TestLoaderLoadDirectoryCancelled(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, ".", LoadParams{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestLoaderRejectsAbsolutePathWithoutBase(t *testing.T) {
	loader := NewLoader(recipeFS(), LoaderConfig{})

	if _, err := loader.LoadFile(context.Background(), "/tmp/pancakes.md"); err == nil {
		t.Fatal("expected error for absolute path without base path")
	}
}

func assertPaths(t *testing.T, sources []*Source, want []string) {
	t.Helper()
	if len(sources) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(sources))
	}
	for i, source := range sources {
		if source.Path != want[i] {
			t.Fatalf("source %d: expected %q, got %q", i, want[i], source.Path)
		}
	}
}
