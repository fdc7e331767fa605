package filesystem

// FileSystemProvider reads files by path.
type FileSystemProvider interface {
	// ReadFile reads the whole file at the given path.
	// Directories are rejected; missing paths satisfy errors.Is(err, fs.ErrNotExist).
	ReadFile(path string) ([]byte, error)
}
