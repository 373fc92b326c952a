package cli

import (
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"uppercase", "YES\n", true},
		{"no", "no\n", false},
		{"empty", "\n", false},
		{"garbage", "maybe\n", false},
		{"eof without newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := confirmInput
			confirmInput = strings.NewReader(tt.input)
			defer func() { confirmInput = orig }()

			if got := confirm("Continue?"); got != tt.want {
				t.Errorf("confirm with input %q = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRootRegistersCommands(t *testing.T) {
	want := map[string]bool{"reset": false, "rename": false, "shift": false, "history": false}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRenameRequiresDistinctPatterns(t *testing.T) {
	renameFrom = "MC | 25 09"
	renameTo = "MC | 25 09"
	defer func() { renameFrom, renameTo = "", "" }()

	if err := runRename(renameCmd, nil); err == nil {
		t.Error("identical --from/--to accepted, want error")
	}
}
