package gitutil

import (
	"fmt"
	"strings"

	"github.com/sevigo/patchpack/internal/core"
)

// ParseNameStatus converts `git diff --name-status` output into change
// entries. Rename and copy records carry the destination path; type changes
// are treated as modifications.
func ParseNameStatus(out string) ([]core.ChangeEntry, error) {
	var entries []core.ChangeEntry

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" {
			return nil, fmt.Errorf("malformed diff line %q", line)
		}
		code := fields[0]

		switch code[0] {
		case 'A':
			entries = append(entries, core.ChangeEntry{Path: fields[1], Status: core.StatusAdded})
		case 'M':
			entries = append(entries, core.ChangeEntry{Path: fields[1], Status: core.StatusModified})
		case 'D':
			entries = append(entries, core.ChangeEntry{Path: fields[1], Status: core.StatusDeleted})
		case 'T':
			entries = append(entries, core.ChangeEntry{Path: fields[1], Status: core.StatusModified})
		case 'R':
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed rename line %q", line)
			}
			entries = append(entries, core.ChangeEntry{Path: fields[2], Status: core.StatusRenamed})
		case 'C':
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed copy line %q", line)
			}
			entries = append(entries, core.ChangeEntry{Path: fields[2], Status: core.StatusAdded})
		default:
			return nil, fmt.Errorf("unrecognized diff status %q in line %q", code, line)
		}
	}

	return entries, nil
}
