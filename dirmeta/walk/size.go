package walk

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"
)

// FinalizeSizes rewrites directory sizes in place, post-order, so every
// directory reports its own base size plus the total of everything beneath
// it. Records without an attribute group (broken dereferenced symlinks) are
// left untouched. Fallback-walk failures degrade like traversal failures:
// reported, and folded into the returned severity.
func (w *Walker) FinalizeSizes(m *meta.Meta) Severity {
	if m.Attr == nil {
		return OK
	}

	if m.FileType.Kind != meta.KindDirectory {
		return OK
	}

	if m.Content != nil {
		severity := OK
		total := m.Attr.Size
		for _, child := range m.Content {
			severity.Escalate(w.FinalizeSizes(child))
			if child.Attr != nil {
				total += child.Attr.Size
			}
		}
		m.Attr.Size = total
		return severity
	}

	// Depth limits may have truncated the recursion, leaving nothing in the
	// tree to sum. Walk the filesystem directly instead.
	size, severity := w.subtreeSize(m.Path)
	m.Attr.Size = size
	return severity
}

// subtreeSize sums file sizes under path by reading directory entries from
// disk, independent of the built tree. Failed subtrees contribute zero and
// never abort the sum.
func (w *Walker) subtreeSize(path string) (int64, Severity) {
	info, err := os.Lstat(path)
	if err != nil {
		w.reporter.Report(path, err)
		return 0, MinorIssue
	}

	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return info.Size(), OK
	case mode.IsDir():
		size := info.Size()

		entries, err := os.ReadDir(path)
		if err != nil {
			w.reporter.Report(path, err)
			return size, MinorIssue
		}

		severity := OK
		for _, entry := range entries {
			entrySize, entrySeverity := w.subtreeSize(filepath.Join(path, entry.Name()))
			size += entrySize
			severity.Escalate(entrySeverity)
		}
		return size, severity
	default:
		return 0, OK
	}
}
