package meta

import (
	"io/fs"
	"os"
)

// FileKind is the resolved classification of a filesystem entry.
type FileKind int

const (
	KindRegular FileKind = iota
	KindDirectory
	KindSymlink
	KindBlockDevice
	KindCharDevice
	KindPipe
	KindSocket
	KindSpecial
)

func (k FileKind) String() string {
	switch k {
	case KindRegular:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindBlockDevice:
		return "block-device"
	case KindCharDevice:
		return "char-device"
	case KindPipe:
		return "pipe"
	case KindSocket:
		return "socket"
	default:
		return "special"
	}
}

// FileType tags an entry with its kind plus the two classification bits the
// renderers and the walker care about: whether a symlink's target is a
// directory (recursion eligibility) and whether a regular file is executable.
type FileType struct {
	Kind        FileKind
	Exec        bool // regular files on POSIX
	TargetIsDir bool // symlinks only
}

// NewFileType classifies an entry from its chosen metadata. target is the
// target's metadata for a non-dereferenced, intact symlink and nil otherwise.
func NewFileType(info os.FileInfo, target os.FileInfo, perms Permissions) FileType {
	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		return FileType{Kind: KindSymlink, TargetIsDir: target != nil && target.IsDir()}
	case mode.IsDir():
		return FileType{Kind: KindDirectory}
	case mode&fs.ModeCharDevice != 0:
		return FileType{Kind: KindCharDevice}
	case mode&fs.ModeDevice != 0:
		return FileType{Kind: KindBlockDevice}
	case mode&fs.ModeNamedPipe != 0:
		return FileType{Kind: KindPipe}
	case mode&fs.ModeSocket != 0:
		return FileType{Kind: KindSocket}
	case mode.IsRegular():
		return FileType{Kind: KindRegular, Exec: perms.Executable()}
	default:
		return FileType{Kind: KindSpecial}
	}
}

// IsDirectory reports whether the entry itself is a directory.
func (ft FileType) IsDirectory() bool {
	return ft.Kind == KindDirectory
}

// Indicator returns the classification suffix used by -F style renderers.
func (ft FileType) Indicator() string {
	switch ft.Kind {
	case KindDirectory:
		return "/"
	case KindSymlink:
		return "@"
	case KindPipe:
		return "|"
	case KindSocket:
		return "="
	case KindRegular:
		if ft.Exec {
			return "*"
		}
	}
	return ""
}
