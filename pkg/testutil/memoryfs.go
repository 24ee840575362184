package testutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage
type MemoryFS struct {
	mu    sync.Mutex
	files map[string]*memFile

	// Error injection
	readErrors  map[string]error
	writeErrors map[string]error

	// Statistics
	readCount  int
	writeCount int
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:       make(map[string]*memFile),
		readErrors:  make(map[string]error),
		writeErrors: make(map[string]error),
	}
}

// Stat returns file info for name
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &memFileInfo{name: filepath.Base(name), file: f}, nil
}

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++
	path := filepath.Clean(name)

	if err, ok := m.readErrors[path]; ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}

	f, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary
func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++
	path := filepath.Clean(name)

	if err, ok := m.writeErrors[path]; ok {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}

	content := make([]byte, len(data))
	copy(content, data)

	if existing, ok := m.files[path]; ok {
		perm = existing.mode
	}
	m.files[path] = &memFile{content: content, mode: perm, modTime: time.Now()}
	return nil
}

// AddFile seeds a file without touching the counters
func (m *MemoryFS) AddFile(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(name)] = &memFile{content: []byte(content), mode: 0644, modTime: time.Now()}
}

// Content returns a file's content without touching the counters
func (m *MemoryFS) Content(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[filepath.Clean(name)]
	if !ok {
		return "", false
	}
	return string(f.content), true
}

// FailReads makes every read of name fail with err
func (m *MemoryFS) FailReads(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.New("injected read failure")
	}
	m.readErrors[filepath.Clean(name)] = err
}

// FailWrites makes every write of name fail with err
func (m *MemoryFS) FailWrites(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.New("injected write failure")
	}
	m.writeErrors[filepath.Clean(name)] = err
}

// ReadCount returns the number of ReadFile calls
func (m *MemoryFS) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount
}

// WriteCount returns the number of WriteFile calls
func (m *MemoryFS) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

type memFileInfo struct {
	name string
	file *memFile
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return int64(len(i.file.content)) }
func (i *memFileInfo) Mode() fs.FileMode  { return i.file.mode }
func (i *memFileInfo) ModTime() time.Time { return i.file.modTime }
func (i *memFileInfo) IsDir() bool        { return false }
func (i *memFileInfo) Sys() interface{}   { return nil }
