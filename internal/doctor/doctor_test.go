package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"notebk/internal/config"
)

func codes(r Report) map[string]string {
	out := map[string]string{}
	for _, f := range r.Findings {
		out[f.Code] = f.Path
	}
	return out
}

func write(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func gitRepo(context.Context, string) bool { return true }

func TestDoctorHealthyNotebook(t *testing.T) {
	root := t.TempDir()
	write(t, root, "2024-01-01.md")
	write(t, root, "work/2024-02-01.md")
	write(t, root, ".git/HEAD")

	report := (&Service{Root: root, IsWorkTree: gitRepo}).Run(context.Background())
	if !report.Healthy || len(report.Findings) != 0 {
		t.Fatalf("expected a clean report, got %+v", report)
	}
}

func TestDoctorFlagsNotebookProblems(t *testing.T) {
	root := t.TempDir()
	write(t, root, "2024-01-01.md")
	write(t, root, "work/notes.txt")
	if err := os.Mkdir(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "2024-01-01.md"), filepath.Join(root, "2024-01-02.md")); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	report := (&Service{Root: root}).Run(context.Background())
	if report.Healthy {
		t.Fatalf("expected unhealthy report")
	}
	got := codes(report)
	want := map[string]string{
		"NB_CORRUPT_NAME": filepath.Join("work", "notes.txt"),
		"NB_EMPTY_DIR":    "empty",
		"NB_SYMLINK":      "2024-01-02.md",
		"SYNC_NOT_GIT":    root,
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
}

func TestDoctorWarningsKeepNotebookHealthy(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	report := (&Service{Root: root}).Run(context.Background())
	if !report.Healthy {
		t.Fatalf("warnings alone should stay healthy: %+v", report)
	}
}

func TestDoctorRootProblems(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	report := (&Service{Root: missing}).Run(context.Background())
	if _, ok := codes(report)["DOC_ROOT_MISSING"]; !ok || report.Healthy {
		t.Fatalf("expected DOC_ROOT_MISSING, got %+v", report)
	}

	file := filepath.Join(t.TempDir(), "file")
	write(t, filepath.Dir(file), "file")
	report = (&Service{Root: file}).Run(context.Background())
	if _, ok := codes(report)["DOC_ROOT_NOT_DIR"]; !ok {
		t.Fatalf("expected DOC_ROOT_NOT_DIR, got %+v", report)
	}
}

func TestDoctorConfigProblems(t *testing.T) {
	report := (&Service{ConfigErr: fmt.Errorf("%w: nothing found", config.ErrNotConfigured)}).Run(context.Background())
	if _, ok := codes(report)["DOC_CONFIG_MISSING"]; !ok || len(report.Findings) != 1 {
		t.Fatalf("expected only DOC_CONFIG_MISSING, got %+v", report)
	}

	report = (&Service{ConfigErr: fmt.Errorf("DOC_CONFIG_PARSE: bad")}).Run(context.Background())
	if _, ok := codes(report)["DOC_CONFIG_INVALID"]; !ok || report.Healthy {
		t.Fatalf("expected DOC_CONFIG_INVALID, got %+v", report)
	}
}
