package gitutil

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTag is returned when no tag is reachable from the to-ref and no
	// explicit from-ref was given.
	ErrNoTag = errors.New("no tag found to diff against")

	// ErrNotARepository is returned when the given path is not inside a Git
	// working tree.
	ErrNotARepository = errors.New("not a git repository")
)

// CommandError reports a failed git invocation together with the stderr text
// the binary produced.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
