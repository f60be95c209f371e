// ABOUTME: Tests for version command
// ABOUTME: Verifies version output and SetVersion

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionCmd_Output(t *testing.T) {
	saved := versionInfo
	t.Cleanup(func() { versionInfo = saved })

	savedFormat := outputFormat
	t.Cleanup(func() { outputFormat = savedFormat })
	outputFormat = "text"

	SetVersion("1.2.3", "abc123", "2026-01-01")

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE() failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"chatter 1.2.3", "Commit: abc123", "Built:  2026-01-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q should contain %q", got, want)
		}
	}
}

func TestVersionCmd_Defaults(t *testing.T) {
	cmd := NewVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	saved := versionInfo
	t.Cleanup(func() { versionInfo = saved })

	SetVersion("1.2.3", "abc123", "2026-01-01")

	out, err := runCLI(t, "", "--format", "json", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	var got VersionInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output %q is not JSON: %v", out, err)
	}
	if got != versionInfo {
		t.Errorf("got %+v, want %+v", got, versionInfo)
	}
}
