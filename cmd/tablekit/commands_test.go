package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/tablekit/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := config.New()
	c.SetAccount("alice", "42")
	c.LinkDevice(&config.LinkedDevice{ID: "p1", Name: "Phone"})
	if err := c.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "dump", "--config", path, "--width", "70")
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	out = ansi.Strip(out)
	for _, want := range []string{"SETTINGS", "alice.42", "Phone", "Read receipts", "Version"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDump_Filter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { dumpFilter = "" })

	out, err := execute(t, "dump", "--config", path, "--width", "70", "--filter", "typing")
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	out = ansi.Strip(out)
	if !strings.Contains(out, "Typing indicators") {
		t.Errorf("filtered output missing the matching row:\n%s", out)
	}
	if strings.Contains(out, "Version") {
		t.Errorf("filtered output kept a non-matching row:\n%s", out)
	}

	out, err = execute(t, "dump", "--config", path, "--filter", "zzzz")
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	if !strings.Contains(out, `No rows match "zzzz".`) {
		t.Errorf("output = %q", out)
	}
}

func TestDump_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := config.New()
	c.Preferences.Pasteboard = "carrier-pigeon"
	if err := c.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "dump", "--config", path); err == nil {
		t.Error("an unknown pasteboard backend should fail setup")
	}
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "availability", "check", "admin", "--config", path)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "admin is taken") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "availability", "check", "--config", path); err == nil {
		t.Error("check without a username should fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--config", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "tablekit ") {
		t.Errorf("output = %q", out)
	}
}

func TestDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "devices", "list", "--config", path)
	if err != nil {
		t.Fatalf("devices list error = %v", err)
	}
	if !strings.Contains(out, "No linked devices.") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "devices", "link", "Work laptop", "--platform", "linux", "--config", path); err != nil {
		t.Fatalf("devices link error = %v", err)
	}
	saved, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.LinkedDevices) != 1 || saved.LinkedDevices[0].Name != "Work laptop" {
		t.Fatalf("LinkedDevices = %+v", saved.LinkedDevices)
	}
	id := saved.LinkedDevices[0].ID

	out, err = execute(t, "devices", "list", "--config", path)
	if err != nil {
		t.Fatalf("devices list error = %v", err)
	}
	if !strings.Contains(out, "Work laptop") || !strings.Contains(out, id[:8]) {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "devices", "unlink", "nope", "--config", path); err == nil {
		t.Error("unlinking an unknown device should fail")
	}
	if _, err := execute(t, "devices", "unlink", id[:8], "--config", path); err != nil {
		t.Fatalf("devices unlink error = %v", err)
	}
	saved, err = config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.LinkedDevices) != 0 {
		t.Errorf("LinkedDevices = %+v, want none", saved.LinkedDevices)
	}
}
