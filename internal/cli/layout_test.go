package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLayoutValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(valid, []byte("groups: [search-paths, other-libs]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("groups: [search-paths, objects]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "layout", "validate", valid)
	if err != nil {
		t.Fatalf("validate failed for valid layout: %v", err)
	}
	if !strings.Contains(stdout, "valid") {
		t.Errorf("unexpected output %q", stdout)
	}

	stdout, _, err = run(t, "layout", "validate", invalid)
	if err == nil {
		t.Fatal("expected error for invalid layout")
	}
	if !strings.Contains(stdout, "/groups/1 [enum]") {
		t.Errorf("expected enum issue in output, got %q", stdout)
	}
}

func TestLayoutInitThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")

	if _, _, err := run(t, "layout", "init", path); err != nil {
		t.Fatalf("layout init failed: %v", err)
	}
	if _, _, err := run(t, "layout", "init", path); err == nil {
		t.Fatal("expected error when layout file already exists")
	}
	if _, _, err := run(t, "layout", "init", "--force", path); err != nil {
		t.Fatalf("layout init --force failed: %v", err)
	}

	stdout, _, err := run(t, "layout", "show", "--layout", path)
	if err != nil {
		t.Fatalf("layout show failed: %v", err)
	}
	if !strings.Contains(stdout, "# source: --layout "+path) {
		t.Errorf("missing source line in %q", stdout)
	}
	for _, g := range []string{"search-paths", "prefix-libs", "archives", "import-libs", "other-libs"} {
		if !strings.Contains(stdout, "- "+g) {
			t.Errorf("expected group %s in output %q", g, stdout)
		}
	}
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()

	// run() isolates each call; pin the same home for both calls here.
	t.Setenv("CLEANLINKRSP_HOME", home)
	var out strings.Builder
	if err := execute([]string{"config", "set", "order", "other-libs"}, &out, &out); err != nil {
		t.Fatalf("config set failed: %v\n%s", err, out.String())
	}

	out.Reset()
	if err := execute([]string{"config", "get", "order"}, &out, &out); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if out.String() != "other-libs\n" {
		t.Errorf("config get = %q", out.String())
	}

	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Errorf("expected config file in %s: %v", home, err)
	}
}

func TestConfigList(t *testing.T) {
	t.Setenv("CLEANLINKRSP_HOME", t.TempDir())
	t.Setenv("CLEANLINKRSP_ORDER", "")
	t.Setenv("CLEANLINKRSP_LAYOUT", "")
	t.Setenv("CLEANLINKRSP_VERBOSE", "")

	var out strings.Builder
	if err := execute([]string{"config", "set", "order", "other-libs"}, &out, &out); err != nil {
		t.Fatalf("config set failed: %v\n%s", err, out.String())
	}

	out.Reset()
	if err := execute([]string{"config", "list"}, &out, &out); err != nil {
		t.Fatalf("config list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 keys, got %d lines:\n%s", len(lines), out.String())
	}
	wantPrefixes := []string{
		`layout   = ""`,
		`order    = "other-libs"`,
		`verbose  = ""`,
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "# comma-separated group order") {
		t.Errorf("missing description in %q", lines[1])
	}
}
