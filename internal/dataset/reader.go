package dataset

import (
	"fmt"

	"github.com/vvka-141/cosmosload/internal/files/filesystem"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// Reader loads dataset files through a filesystem provider.
type Reader struct {
	fs filesystem.FileSystemProvider
}

// NewReader creates a Reader. Panics if fsProvider is nil.
func NewReader(fsProvider filesystem.FileSystemProvider) *Reader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Reader{fs: fsProvider}
}

// Read reads and parses the dataset at path.
// Every failure is wrapped with cosmosload.ErrDatasetInvalid.
func (r *Reader) Read(path string) ([]cosmosload.Record, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w: %w", path, cosmosload.ErrDatasetInvalid, err)
	}

	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w: %w", path, cosmosload.ErrDatasetInvalid, err)
	}
	return records, nil
}
