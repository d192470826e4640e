package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := filepath.Join(t.TempDir(), "pkgscout.log")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestTail(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		n     int
		want  []string
	}{
		{name: "fewer lines than requested", lines: 2, n: 5, want: []string{"line 1", "line 2"}},
		{name: "exact", lines: 3, n: 3, want: []string{"line 1", "line 2", "line 3"}},
		{name: "wraps", lines: 7, n: 3, want: []string{"line 5", "line 6", "line 7"}},
		{name: "zero requested", lines: 4, n: 0, want: nil},
		{name: "empty file", lines: 0, n: 3, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(writeLines(t, tt.lines), tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 10)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTail_DirectoryIsAnError(t *testing.T) {
	_, err := Tail(t.TempDir(), 10)
	assert.Error(t, err)
}
