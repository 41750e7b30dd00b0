package meta

import (
	"path/filepath"
	"strings"
)

// Name is the display identity of an entry: the final path component, its
// lowercase extension, and the resolved kind tag the renderers select icons
// and colors from.
type Name struct {
	Base string
	Ext  string
	Kind FileKind
}

func NewName(path string, ft FileType) Name {
	base := filepath.Base(path)
	return Name{
		Base: base,
		Ext:  strings.ToLower(filepath.Ext(base)),
		Kind: ft.Kind,
	}
}

func (n Name) String() string {
	return n.Base
}
