package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

type memoryFile struct {
	content []byte
	isDir   bool
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Not safe for concurrent mutation; populate it before use.
type MemoryFileSystem struct {
	files map[string]*memoryFile // absolute path -> file
	root  string
	reads []string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.addDir(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem.
// Relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	absPath := mfs.resolve(filePath)
	data := []byte(content)

	mfs.files[absPath] = &memoryFile{content: data}

	for dir := path.Dir(absPath); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, exists := mfs.files[dir]; exists {
			break
		}
		mfs.addDir(dir)
	}
}

// Reads returns the absolute paths passed to ReadFile, in call order.
func (mfs *MemoryFileSystem) Reads() []string {
	return append([]string(nil), mfs.reads...)
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.files[dir] = &memoryFile{isDir: true}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	return path.Join(mfs.root, p)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)
	mfs.reads = append(mfs.reads, absPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return append([]byte(nil), file.content...), nil
}
