package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matthieukhl/salesgen/internal/export"
)

// chdir moves the test into a fresh working directory so the default
// relative output paths land in a temp dir.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestRootGeneratesAndChecks(t *testing.T) {
	dir := chdir(t)

	// Two runs, then check: the table must hold n rows, not 2n
	for run := 1; run <= 2; run++ {
		rootCmd.SetArgs([]string{})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("run %d failed: %v", run, err)
		}
	}

	for _, name := range []string{"raw_sales.csv", "sales_data.db"} {
		if _, err := os.Stat(filepath.Join(dir, "data", name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	_, rows, err := export.ReadCSV(filepath.Join(dir, "data", "raw_sales.csv"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 10000 {
		t.Errorf("CSV has %d rows, want 10000", len(rows))
	}

	rootCmd.SetArgs([]string{"check"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestCheckWithoutArtifacts(t *testing.T) {
	chdir(t)

	rootCmd.SetArgs([]string{"check"})
	if err := rootCmd.Execute(); err == nil {
		t.Errorf("check should fail when no artifacts exist")
	}
}

func TestRootRejectsArgs(t *testing.T) {
	chdir(t)

	rootCmd.SetArgs([]string{"unexpected"})
	if err := rootCmd.Execute(); err == nil {
		t.Errorf("root command should reject positional arguments")
	}
}
