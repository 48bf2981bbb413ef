package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "cleanlinkrsp" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if HomeDir() != ".cleanlinkrsp" {
		t.Errorf("HomeDir() = %q", HomeDir())
	}
	if GoModule() == "" || Description() == "" || DisplayName() == "" {
		t.Error("expected non-empty module, description and display name")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("home"); got != "CLEANLINKRSP_HOME" {
		t.Errorf("EnvVar(home) = %q, want CLEANLINKRSP_HOME", got)
	}
}
