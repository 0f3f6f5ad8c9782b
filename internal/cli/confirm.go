package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question on writer and reads the answer from reader.
// Only an explicit "y" or "yes" counts as confirmation; anything else,
// including a read error, is a refusal. Destructive store operations (reset,
// restore, import) go through this before anything is written.
func Confirm(reader io.Reader, writer io.Writer, question string) bool {
	fmt.Fprintf(writer, "%s [y/N]: ", WarningStyle.Render(question))

	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
