// Package testsupport loads recipe fixtures and golden records for tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// GoldenCase pairs a recipe document with the golden record expected for it.
type GoldenCase struct {
	Name   string
	Source string
	Golden string
}

// GoldenCases lists every *.md file in dir that has a sibling
// <name>.golden.json, sorted by name.
func GoldenCases(tb testing.TB, dir string) []GoldenCase {
	tb.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		tb.Fatalf("glob fixtures: %v", err)
	}
	sort.Strings(matches)

	cases := make([]GoldenCase, 0, len(matches))
	for _, source := range matches {
		name := strings.TrimSuffix(filepath.Base(source), ".md")
		golden := filepath.Join(dir, name+".golden.json")
		if _, err := os.Stat(golden); err != nil {
			continue
		}
		cases = append(cases, GoldenCase{Name: name, Source: source, Golden: golden})
	}
	return cases
}
