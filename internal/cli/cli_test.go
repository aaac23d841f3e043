package cli

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// runCLI executes the root command against a fresh SQLite file
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClientsCommands(t *testing.T) {
	t.Setenv("CLIENTSAPI_BACKEND", "sqlite")
	t.Setenv("CLIENTSAPI_SQLITE_PATH", filepath.Join(t.TempDir(), "clients.sqlite3"))
	t.Setenv("CLIENTSAPI_LOG_LEVEL", "error")

	out, err := runCLI(t, "clients", "add", "--nom", "Dupont", "--prenom", "Jean", "--telephone", "0601020304", "--email", "j@d.fr", "--points", "7")
	if err != nil {
		t.Fatalf("clients add: %v\n%s", err, out)
	}
	match := regexp.MustCompile(`Client ID: (\S+)`).FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("clients add printed no id:\n%s", out)
	}
	id := match[1]

	out, err = runCLI(t, "clients", "list")
	if err != nil {
		t.Fatalf("clients list: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "Dupont") {
		t.Errorf("clients list output missing client:\n%s", out)
	}

	out, err = runCLI(t, "clients", "get", id)
	if err != nil {
		t.Fatalf("clients get: %v", err)
	}
	if !strings.Contains(out, "j@d.fr") || !strings.Contains(out, "7") {
		t.Errorf("clients get output:\n%s", out)
	}

	out, err = runCLI(t, "clients", "delete", "--yes", id)
	if err != nil {
		t.Fatalf("clients delete: %v", err)
	}
	if !strings.Contains(out, "deleted successfully") {
		t.Errorf("clients delete output:\n%s", out)
	}

	if _, err := runCLI(t, "clients", "get", id); err == nil {
		t.Error("clients get after delete should fail")
	}
}

func TestVersionSkipsConfig(t *testing.T) {
	t.Setenv("CLIENTSAPI_BACKEND", "not-a-backend")

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "clientsapi ") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"y\n", false},
		{"no\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "sure? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "sure? " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}
