package types

import (
	"io/fs"
)

// FS is the subset of filesystem operations the patcher needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}
