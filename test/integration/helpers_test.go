//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir  string // CLEANLINKRSP_HOME — user config directory
	Prefix   string // toolchain prefix with lib/lib<name>.a archives
	BuildDir string // mock CMake build tree
	RspFile  string // response file inside BuildDir
}

// setupTestEnv creates isolated temp directories and points the config home
// at one of them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		Prefix:   t.TempDir(),
		BuildDir: t.TempDir(),
	}
	env.RspFile = filepath.Join(env.BuildDir, "CMakeFiles", "pulseview.dir", "linkLibs.rsp")

	t.Setenv("CLEANLINKRSP_HOME", env.HomeDir)
	t.Setenv("CLEANLINKRSP_ORDER", "")
	t.Setenv("CLEANLINKRSP_LAYOUT", "")

	if err := os.MkdirAll(filepath.Join(env.Prefix, "lib"), 0755); err != nil {
		t.Fatalf("creating prefix lib dir: %v", err)
	}
	return env
}

// installArchives creates empty static archives under prefix/lib.
func installArchives(t *testing.T, prefix string, names ...string) {
	t.Helper()
	for _, name := range names {
		writeFile(t, filepath.Join(prefix, "lib", "lib"+name+".a"), "!<arch>\n")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
