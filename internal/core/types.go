// Package core defines the domain types shared by the patchpack pipeline.
package core

import "time"

// ChangeStatus classifies how a path changed between two refs.
type ChangeStatus int

const (
	StatusAdded ChangeStatus = iota
	StatusModified
	StatusDeleted
	StatusRenamed
)

// String returns the human-readable name of the status.
func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ChangeEntry is a single changed path reported by the diff between two refs.
// For renames Path holds the new location.
type ChangeEntry struct {
	Path   string
	Status ChangeStatus
}

// RefPair is the effective pair of refs a package is built from.
type RefPair struct {
	From string
	To   string
}

// ArchiveMetadata describes the to-ref commit and is used solely to name the
// output archive. CommitTime is the committer timestamp, so the derived
// filename is stable across repeated runs on an unchanged repository.
type ArchiveMetadata struct {
	ShortHash  string
	Subject    string
	CommitTime time.Time
}

// Summary is the result of one package build.
type Summary struct {
	Refs          RefPair
	OutputPath    string
	ArchiveSize   int64
	FilesIncluded int
	FilesSkipped  int
	MissingPaths  []string
}
