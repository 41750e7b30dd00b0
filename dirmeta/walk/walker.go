package walk

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"
	"github.com/ZanzyTHEbar/dirmeta/dirmeta/options"

	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
)

// Walker expands directories into resolved metadata records, applying depth
// limits, visibility filters and dereferencing policy. Per-entry I/O
// failures are absorbed into the reporter and the aggregate severity, so a
// single unreadable entry never aborts a traversal.
type Walker struct {
	opts     options.ListOptions
	provider meta.Provider
	resolver *meta.Resolver
	reporter *meta.Reporter
	assert   *assert.AssertHandler
	logger   *slog.Logger
	walkID   uuid.UUID
}

// WalkerOption allows for customization of a Walker
type WalkerOption func(*Walker)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithReporter sets the diagnostic sink
func WithReporter(reporter *meta.Reporter) WalkerOption {
	return func(w *Walker) {
		w.reporter = reporter
	}
}

// WithProvider sets a custom platform provider
func WithProvider(provider meta.Provider) WalkerOption {
	return func(w *Walker) {
		w.provider = provider
	}
}

// NewWalker creates a walker for one immutable set of listing options.
func NewWalker(opts options.ListOptions, wopts ...WalkerOption) *Walker {
	w := &Walker{
		opts:     opts,
		provider: meta.DefaultProvider(),
		reporter: meta.NewReporter(nil),
		assert:   assert.NewAssertHandler(),
		logger:   slog.Default(),
		walkID:   uuid.New(),
	}

	for _, opt := range wopts {
		opt(w)
	}

	w.resolver = meta.NewResolver(w.provider, w.reporter)
	return w
}

// Resolver returns the resolver the walker expands entries with.
func (w *Walker) Resolver() *meta.Resolver {
	return w.resolver
}

// Build resolves root, expands it to the configured depth and, when the
// options ask for it, runs the directory-size pass. Only a root that cannot
// be stat-ed at all is a hard error; everything below it degrades into the
// returned severity.
func (w *Walker) Build(root string) (*meta.Meta, Severity, error) {
	m, err := w.resolver.FromPath(root, w.opts.Dereference)
	if err != nil {
		return nil, OK, err
	}

	w.logger.Debug("starting tree walk",
		"walk_id", w.walkID,
		"root", root,
		"depth", w.opts.Depth)

	severity := OK
	content, expandSeverity, err := w.Expand(m, w.opts.Depth)
	if err != nil {
		w.reporter.Report(root, err)
		severity.Escalate(MinorIssue)
	} else {
		m.Content = content
		severity.Escalate(expandSeverity)
	}

	if w.opts.TotalSize {
		severity.Escalate(w.FinalizeSizes(m))
	}

	w.logger.Info("tree walk complete",
		"walk_id", w.walkID,
		"root", root,
		"severity", severity.String())

	return m, severity, nil
}

// Expand materializes the children of m, remaining depth levels deep. A nil
// list means the entry was not eligible for expansion under the current
// policy; an expanded directory always owns a non-nil (possibly empty) list.
// The returned error is reserved for failures that poison the whole listing
// (resolving the ".." pseudo-entry); everything else degrades in place.
func (w *Walker) Expand(m *meta.Meta, depth int) ([]*meta.Meta, Severity, error) {
	if depth <= 0 {
		return nil, OK, nil
	}

	// A flat directory-only view never needs children materialized.
	if w.opts.Display == options.DisplayDirectoryOnly && w.opts.Layout != options.LayoutTree {
		return nil, OK, nil
	}

	switch m.FileType.Kind {
	case meta.KindDirectory:
	case meta.KindSymlink:
		// One-line mode never follows directory symlinks for expansion.
		if !m.FileType.TargetIsDir || w.opts.Layout == options.LayoutOneLine {
			return nil, OK, nil
		}
	default:
		return nil, OK, nil
	}

	w.assert.Assert(context.Background(),
		m.FileType.IsDirectory() || m.FileType.TargetIsDir,
		"only directories and directory links may be expanded")

	entries, err := os.ReadDir(m.Path)
	if err != nil {
		w.reporter.Report(m.Path, err)
		return nil, MinorIssue, nil
	}

	content := make([]*meta.Meta, 0, len(entries)+2)

	if (w.opts.Display == options.DisplayAll || w.opts.Display == options.DisplaySystemProtected) &&
		w.opts.Layout != options.LayoutTree {
		current := m.Clone()
		current.Name.Base = "."

		parent, err := w.resolver.FromPath(filepath.Join(m.Path, ".."), false)
		if err != nil {
			return nil, OK, err
		}
		parent.Name.Base = ".."

		content = append(content, current, parent)
	}

	severity := OK

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(m.Path, name)

		if w.opts.ShouldIgnore(name) {
			continue
		}

		isHidden := w.provider.IsHidden(path)
		isSystem := w.provider.IsSystemProtected(path)

		switch w.opts.Display {
		// show hidden entries, but ignore system protected ones
		case options.DisplayAll, options.DisplayAlmostAll:
			if isSystem {
				continue
			}
		// ignore hidden and system protected entries
		case options.DisplayVisibleOnly:
			if isHidden || isSystem {
				continue
			}
		}

		child, err := w.resolver.FromPath(path, w.opts.Dereference)
		if err != nil {
			w.reporter.Report(path, err)
			severity.Escalate(MinorIssue)
			continue
		}

		// skip files for tree-drawing directory-only views
		if w.opts.Layout == options.LayoutTree &&
			w.opts.Display == options.DisplayDirectoryOnly && !entry.IsDir() {
			continue
		}

		// An un-dereferenced symlink entry is listed but never expanded,
		// whatever its target is.
		if w.opts.Dereference || child.FileType.Kind != meta.KindSymlink {
			childContent, childSeverity, err := w.Expand(child, depth-1)
			if err != nil {
				w.reporter.Report(path, err)
				severity.Escalate(MinorIssue)
			} else {
				child.Content = childContent
				severity.Escalate(childSeverity)
			}
		}

		content = append(content, child)
	}

	return content, severity, nil
}
