// Package testutil provides helpers for enforcing import boundaries in
// tests: the domain package stays free of infrastructure imports and the
// persistence backends never reach up into the service layer.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// AssertNoTransitiveDependency runs `go list -deps` on pattern and fails
// the test when any dependency path satisfies the forbidden predicate.
func AssertNoTransitiveDependency(t testing.TB, pattern string, forbidden func(path string) bool, reason string) {
	t.Helper()
	out, err := goListDeps(pattern)
	if err != nil {
		t.Fatalf("go list failed: %v\n%s", err, string(out))
	}
	var violations []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && forbidden(line) {
			violations = append(violations, line)
		}
	}
	if len(violations) > 0 {
		t.Fatalf("forbidden transitive dependency (%s):\n%s", reason, strings.Join(violations, "\n"))
	}
}

// AssertNoDirectImports parses the non-test .go files in dir and fails
// when any import path satisfies the forbidden predicate. Build tags are
// not honored.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	fset := token.NewFileSet()
	var violations []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		parsed, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range parsed.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if forbidden(path) {
				violations = append(violations, path+" (in "+name+")")
			}
		}
	}
	if len(violations) > 0 {
		t.Fatalf("forbidden direct imports (%s):\n%s", reason, strings.Join(violations, "\n"))
	}
}

// InternalImportForbidden matches any import path under an internal tree.
func InternalImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/")
}

// ServiceImportForbidden matches imports of the service facade package.
// Persistence backends must depend only on the domain package.
func ServiceImportForbidden(path string) bool {
	return path == "relicore/internal/core" || strings.HasSuffix(path, "/internal/core")
}

var goListDeps = func(pattern string) ([]byte, error) {
	cmd := exec.Command("go", "list", "-deps", pattern)
	return cmd.CombinedOutput()
}
