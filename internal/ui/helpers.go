package ui

import (
	"os/exec"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate cuts s to maxLen display cells, ending in an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// editorCmd splits an editor setting such as "code --wait" into a command.
func editorCmd(editor, path string) *exec.Cmd {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...)
}
