package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "review", "check", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}

func TestParsePRRef(t *testing.T) {
	tests := []struct {
		ref     string
		repo    string
		number  int
		wantErr bool
	}{
		{"acme/widgets#42", "acme/widgets", 42, false},
		{"acme/widgets#0", "", 0, true},
		{"acme/widgets", "", 0, true},
		{"widgets#42", "", 0, true},
		{"acme/widgets#abc", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		repo, number, err := parsePRRef(tt.ref)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePRRef(%q): expected error", tt.ref)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePRRef(%q): %v", tt.ref, err)
			continue
		}
		if repo != tt.repo || number != tt.number {
			t.Errorf("parsePRRef(%q) = %s, %d", tt.ref, repo, number)
		}
	}
}
