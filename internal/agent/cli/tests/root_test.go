package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/credkeeper/internal/agent/cli"
	"github.com/IvanChernomyrdin/credkeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/utils"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	want := []string{"register", "login", "whoami", "health", "version"}
	for _, w := range want {
		if !names[w] {
			t.Fatalf("expected subcommand %q to exist", w)
		}
	}
}

// --profile указывает на сохранённый файл; whoami читает его через PersistentPreRunE
func TestNewRootCmd_PersistentPreRunE_LoadsProfile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "profile.json")
	if err := config.Save(p, &config.Profile{Server: "http://x", User: utils.Ptr(aliceProfile())}); err != nil {
		t.Fatalf("Save profile: %v", err)
	}

	root := cli.NewRootCmd("1.0.0", "2026-01-16")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--profile", p, "whoami"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "username=alice") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

// без --profile используется файл в HOME
func TestNewRootCmd_DefaultProfilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	root := cli.NewRootCmd("1.0.0", "2026-01-16")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"whoami"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorOnBadProfileFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(p, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	root := cli.NewRootCmd("1.0.0", "2026-01-16")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--profile", p, "version"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
