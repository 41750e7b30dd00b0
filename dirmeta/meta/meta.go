package meta

import (
	"io/fs"
	"os"
	"slices"
)

// Meta is one resolved entry in the listing tree.
type Meta struct {
	Name     Name
	Path     string
	FileType FileType
	SymLink  SymLink

	// Attr is the optional attribute group. It is nil exactly when the entry
	// is a broken symlink resolved with dereference semantics; every other
	// reachable record carries the full group.
	Attr *Attributes

	// Content is nil until the entry is expanded. An expanded but empty
	// directory holds a non-nil empty slice; the size pass relies on the
	// distinction.
	Content []*Meta
}

// Clone returns a copy that can be renamed or resized without touching the
// original. Children are shared, the attribute group is not.
func (m *Meta) Clone() *Meta {
	c := *m
	if m.Attr != nil {
		attr := *m.Attr
		c.Attr = &attr
	}
	c.Content = slices.Clone(m.Content)
	return &c
}

// Resolver converts paths into Meta records through a platform provider,
// absorbing every downstream failure into the reporter.
type Resolver struct {
	provider Provider
	reporter *Reporter
}

// NewResolver creates a resolver. A nil provider selects the build
// platform's provider, a nil reporter writes to stderr.
func NewResolver(provider Provider, reporter *Reporter) *Resolver {
	if provider == nil {
		provider = DefaultProvider()
	}
	if reporter == nil {
		reporter = NewReporter(nil)
	}
	return &Resolver{provider: provider, reporter: reporter}
}

// Provider exposes the platform provider so callers can share its
// hidden/system checks.
func (r *Resolver) Provider() Provider {
	return r.provider
}

// FromPath resolves path into a record. The only hard failure is the initial
// symlink-aware stat of path itself; a symlink whose target cannot be
// stat-ed degrades to an identity-only record when dereference is set and
// resolves from the link's own metadata otherwise.
func (r *Resolver) FromPath(path string, dereference bool) (*Meta, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	chosen := linkInfo
	var targetInfo os.FileInfo
	broken := false
	if linkInfo.Mode()&fs.ModeSymlink != 0 {
		target, targetErr := os.Stat(path)
		switch {
		case targetErr == nil && dereference:
			chosen = target
		case targetErr == nil:
			targetInfo = target
		case dereference:
			broken = true
			r.reporter.Report(path, targetErr)
		}
	}

	perms := r.provider.Permissions(path, chosen)
	fileType := NewFileType(chosen, targetInfo, perms)

	m := &Meta{
		Name:     NewName(path, fileType),
		Path:     path,
		FileType: fileType,
		SymLink:  NewSymLink(path, linkInfo),
	}

	// The attribute group is populated as a unit or not at all.
	if !broken {
		m.Attr = &Attributes{
			INode:         inodeOf(chosen),
			Links:         linksOf(chosen),
			Size:          chosen.Size(),
			Date:          chosen.ModTime(),
			Owner:         r.provider.Owner(path, chosen),
			Permissions:   perms,
			AccessControl: r.provider.AccessControl(path),
		}
	}

	return m, nil
}
