// Package errors prints command failures for the CLI and exits.
package errors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/tally/internal/logger"
)

// Swapped out in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Hinter is implemented by errors that can suggest a fix to the user.
type Hinter interface {
	Hint() string
}

// Format renders err for the terminal as "Error: ..." followed by the first
// hint found in its chain, if any.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())

	var h Hinter
	if errors.As(err, &h) {
		if hint := h.Hint(); hint != "" {
			b.WriteString("\nHint: ")
			b.WriteString(hint)
		}
	}
	return b.String()
}

// Fatal exits with status 1 after logging and printing err. A nil err does
// nothing.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}
