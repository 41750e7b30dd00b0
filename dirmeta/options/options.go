package options

// DisplayMode selects which directory entries are visible in a listing.
type DisplayMode string

const (
	// DisplayVisibleOnly hides dotfiles and system-protected entries.
	DisplayVisibleOnly DisplayMode = "visible-only"
	// DisplayAlmostAll shows hidden entries but not system-protected ones.
	DisplayAlmostAll DisplayMode = "almost-all"
	// DisplayAll shows hidden entries but not system-protected ones, and
	// synthesizes the "." and ".." pseudo-entries.
	DisplayAll DisplayMode = "all"
	// DisplaySystemProtected shows everything, including system-protected
	// entries.
	DisplaySystemProtected DisplayMode = "system-protected"
	// DisplayDirectoryOnly restricts the listing to directories.
	DisplayDirectoryOnly DisplayMode = "directory-only"
)

// Layout selects how the listing is rendered. The walker only cares about it
// because some layouts change recursion rules, rendering itself lives
// elsewhere.
type Layout string

const (
	LayoutOneLine Layout = "oneline"
	LayoutTree    Layout = "tree"
	LayoutGrid    Layout = "grid"
)

// IgnoreMatcher reports whether an entry name should be excluded from the
// listing. *ignore.GitIgnore from sabhiram/go-gitignore satisfies it.
type IgnoreMatcher interface {
	MatchesPath(path string) bool
}

// ListOptions configures metadata resolution and tree expansion
type ListOptions struct {
	Dereference bool          // Resolve symlinks to their target's metadata
	Display     DisplayMode   // Entry visibility policy
	Layout      Layout        // Active layout, affects recursion rules only
	Depth       int           // Maximum recursion depth (0 = do not expand)
	TotalSize   bool          // Run the directory-size accumulation pass
	Ignore      IgnoreMatcher // Pre-compiled ignore patterns, may be nil
}

// ShouldIgnore reports whether name is excluded by the ignore matcher.
func (o ListOptions) ShouldIgnore(name string) bool {
	return o.Ignore != nil && o.Ignore.MatchesPath(name)
}
