package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-recipes/cmd/recipes/internal/bootstrap"
	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
	"github.com/goliatone/go-recipes/recipe"
)

type stubCompiler struct {
	path string
}

func (s *stubCompiler) Compile([]byte) (*recipe.Recipe, error) {
	return nil, nil
}

func (s *stubCompiler) CompileFile(_ context.Context, path string) (*interfaces.CompiledRecipe, error) {
	s.path = path
	return &interfaces.CompiledRecipe{
		Path:     path,
		Checksum: []byte{0xab, 0xcd},
		Recipe:   &recipe.Recipe{RecipeName: `Grandma's "Famous" Pie`, Category: recipe.CategoryOther},
	}, nil
}

func (s *stubCompiler) CompileDirectory(context.Context, string, interfaces.CompileOptions) (*interfaces.CompileResult, error) {
	return nil, nil
}

func TestRunPreviewPrintsRecipe(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubCompiler{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Compiler: svc, Logger: logging.NoOp()}, nil
	}

	var stdout bytes.Buffer
	if err := runPreview([]string{"-file", "pie.md"}, &stdout); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	if svc.path != "pie.md" {
		t.Fatalf("expected pie.md compiled, got %q", svc.path)
	}

	var out preview
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode preview: %v\n%s", err, stdout.String())
	}
	if out.Slug != "grandmas-famous-pie" {
		t.Fatalf("unexpected slug %q", out.Slug)
	}
	if out.Checksum != "abcd" {
		t.Fatalf("unexpected checksum %q", out.Checksum)
	}
	if out.Recipe == nil || out.Recipe.Category != recipe.CategoryOther {
		t.Fatalf("unexpected recipe %#v", out.Recipe)
	}
}

func TestRunPreviewRequiresFile(t *testing.T) {
	if err := runPreview(nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when --file missing")
	}
}
