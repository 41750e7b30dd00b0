package meta

import (
	"io/fs"
	"os"
)

// SymLink holds the raw readlink target and whether the target can currently
// be resolved. It is the zero value for anything that is not a symlink.
type SymLink struct {
	Target string
	Valid  bool
}

// NewSymLink inspects path using its symlink-aware metadata. Readlink
// failures degrade to the zero value, they never fail resolution.
func NewSymLink(path string, info os.FileInfo) SymLink {
	if info.Mode()&fs.ModeSymlink == 0 {
		return SymLink{}
	}

	target, err := os.Readlink(path)
	if err != nil {
		return SymLink{}
	}

	_, statErr := os.Stat(path)
	return SymLink{Target: target, Valid: statErr == nil}
}

// IsLink reports whether the entry actually is a symlink.
func (s SymLink) IsLink() bool {
	return s.Target != ""
}
