package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/patchpack/internal/core"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    []core.ChangeEntry
		wantErr bool
	}{
		{
			name: "Added modified deleted",
			out:  "A\tapp/New.js\nM\tapp/Main.js\nD\tapp/Old.js\n",
			want: []core.ChangeEntry{
				{Path: "app/New.js", Status: core.StatusAdded},
				{Path: "app/Main.js", Status: core.StatusModified},
				{Path: "app/Old.js", Status: core.StatusDeleted},
			},
		},
		{
			name: "Rename carries new path",
			out:  "R100\told/name.go\tnew/name.go\n",
			want: []core.ChangeEntry{
				{Path: "new/name.go", Status: core.StatusRenamed},
			},
		},
		{
			name: "Copy maps to added",
			out:  "C75\tsrc/a.go\tsrc/b.go\n",
			want: []core.ChangeEntry{
				{Path: "src/b.go", Status: core.StatusAdded},
			},
		},
		{
			name: "Type change maps to modified",
			out:  "T\tbin/tool\n",
			want: []core.ChangeEntry{
				{Path: "bin/tool", Status: core.StatusModified},
			},
		},
		{
			name: "Empty output",
			out:  "",
			want: nil,
		},
		{
			name: "Blank lines ignored",
			out:  "\nM\ta.txt\n\n",
			want: []core.ChangeEntry{
				{Path: "a.txt", Status: core.StatusModified},
			},
		},
		{
			name:    "Missing path",
			out:     "M\n",
			wantErr: true,
		},
		{
			name:    "Rename without destination",
			out:     "R100\tonly/one.go\n",
			wantErr: true,
		},
		{
			name:    "Unknown status letter",
			out:     "X\tweird.txt\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameStatus(tt.out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
