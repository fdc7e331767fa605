package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ FileSystemProvider = (*OSFileSystem)(nil)
	_ FileSystemProvider = (*MemoryFileSystem)(nil)
)

// Both providers answer the same calls the same way.
func TestProviders_Agree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UserData.json"), []byte(`[]`), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	mfs := NewMemoryFileSystem(dir)
	mfs.AddFile("UserData.json", `[]`)
	mfs.AddFile("sub/keep.json", `[]`)

	providers := map[string]FileSystemProvider{"os": NewOSFileSystem(), "memory": mfs}
	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			content, err := p.ReadFile(filepath.Join(dir, "UserData.json"))
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(content))

			_, err = p.ReadFile(filepath.Join(dir, "sub"))
			assert.ErrorContains(t, err, "is a directory")
		})
	}
}
