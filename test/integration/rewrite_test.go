//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sigrok-cross/cleanlinkrsp/internal/layout"
	"github.com/sigrok-cross/cleanlinkrsp/internal/rsp"
)

// A trimmed response file as generated by CMake for a MinGW PulseView build.
func pulseviewRsp(prefix string) string {
	return strings.Join([]string{
		"-Wl,--whole-archive CMakeFiles/pulseview.dir/main.cpp.obj -Wl,--no-whole-archive",
		"-L" + prefix + "//lib",
		"-lsigrokcxx -lsigrok -lglibmm-2.4 -lglib-2.0 -lintl",
		`"` + prefix + `/lib/../lib/libsigrokdecode.a"`,
		"-lsigrok -lzip -lws2_32",
		`"/usr/x86_64-w64-mingw32/lib/libws2_32.dll.a"`,
		`"/usr/x86_64-w64-mingw32/lib/libsetupapi.dll.a"`,
		"-L" + prefix + "/lib",
		"-lglib-2.0 -lintl",
	}, "\n")
}

func TestRewritePulseviewResponseFile(t *testing.T) {
	env := setupTestEnv(t)
	installArchives(t, env.Prefix, "sigrokcxx", "sigrok", "glibmm-2.4", "glib-2.0", "zip")
	writeFile(t, env.RspFile, pulseviewRsp(env.Prefix))

	result, err := rsp.Rewrite(env.RspFile, env.Prefix, rsp.Options{})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	want := strings.Join([]string{
		"-L" + env.Prefix + "/lib",
		"-lsigrokcxx\n-lglibmm-2.4\n-lsigrok\n-lzip\n-lglib-2.0",
		`"` + env.Prefix + `/lib/libsigrokdecode.a"`,
		`"/usr/x86_64-w64-mingw32/lib/libws2_32.dll.a"` + "\n" + `"/usr/x86_64-w64-mingw32/lib/libsetupapi.dll.a"`,
		"-lws2_32\n-lintl",
	}, "\n") + "\n"

	if got := readFile(t, env.RspFile); got != want {
		t.Errorf("rewritten file mismatch:\n got: %q\nwant: %q", got, want)
	}
	if result.Dropped != 3 {
		t.Errorf("expected 3 dropped tokens, got %d", result.Dropped)
	}

	// Rewriting the output again must not change it.
	if _, err := rsp.Rewrite(env.RspFile, env.Prefix, rsp.Options{}); err != nil {
		t.Fatalf("second Rewrite: %v", err)
	}
	if got := readFile(t, env.RspFile); got != want {
		t.Errorf("second rewrite changed the file:\n got: %q\nwant: %q", got, want)
	}
}

func TestRewriteWithDuplicatingLayout(t *testing.T) {
	env := setupTestEnv(t)
	installArchives(t, env.Prefix, "sigrok")
	writeFile(t, env.RspFile, `-lsigrok -lz "libB.a"`)

	layoutFile := filepath.Join(env.HomeDir, "layout.yaml")
	writeFile(t, layoutFile, `version: "1.2.0"
groups:
  - prefix-libs
  - archives
  - prefix-libs
  - other-libs
`)

	l, err := layout.LoadFile(layoutFile)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	order, err := l.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}

	if _, err := rsp.Rewrite(env.RspFile, env.Prefix, rsp.Options{Order: order}); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	want := "-lsigrok\n\"libB.a\"\n-lsigrok\n-lz\n"
	if got := readFile(t, env.RspFile); got != want {
		t.Errorf("rewritten file = %q, want %q", got, want)
	}
}
