package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the orcid_cv binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "orcid_cv"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// exportFixture is the sample ORCID export shared with the orcid package tests.
var exportFixture = filepath.Join("..", "..", "internal", "orcid", "testdata", "profile")

// personOnlyExport copies person.xml from the fixture into a fresh directory,
// giving an export with no works and so nothing to enrich over the network.
func personOnlyExport(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(exportFixture, "person.xml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "person.xml"), data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}
