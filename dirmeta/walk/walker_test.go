package walk

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"
	"github.com/ZanzyTHEbar/dirmeta/dirmeta/options"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() options.ListOptions {
	return options.ListOptions{
		Display: options.DisplayVisibleOnly,
		Layout:  options.LayoutGrid,
		Depth:   16,
	}
}

// fixtureTree builds:
//
//	root/
//	  file.txt      (10 bytes)
//	  .hidden
//	  sub/
//	    nested.txt  (4 bytes)
//	  empty/
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("0123456789"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "nested.txt"), []byte("data"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))
	return root
}

func childNames(content []*meta.Meta) []string {
	names := make([]string, 0, len(content))
	for _, child := range content {
		names = append(names, child.Name.Base)
	}
	return names
}

func findChild(t *testing.T, content []*meta.Meta, name string) *meta.Meta {
	t.Helper()
	for _, child := range content {
		if child.Name.Base == name {
			return child
		}
	}
	t.Fatalf("child %q not found in %v", name, childNames(content))
	return nil
}

// markingProvider wraps the platform provider and flags chosen names as
// system-protected, which no real path is on POSIX.
type markingProvider struct {
	meta.Provider
	protected map[string]bool
}

func (p markingProvider) IsSystemProtected(path string) bool {
	return p.protected[filepath.Base(path)]
}

func TestWalker_Expand(t *testing.T) {
	t.Run("zero depth never expands, whatever the entry is", func(t *testing.T) {
		root := fixtureTree(t)
		w := NewWalker(defaultOptions(), WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, err := w.Resolver().FromPath(root, false)
		require.NoError(t, err)

		content, severity, err := w.Expand(m, 0)
		require.NoError(t, err)
		assert.Nil(t, content)
		assert.Equal(t, OK, severity)
	})

	t.Run("flat directory-only view materializes nothing", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Display = options.DisplayDirectoryOnly
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, err := w.Resolver().FromPath(root, false)
		require.NoError(t, err)

		content, severity, err := w.Expand(m, 16)
		require.NoError(t, err)
		assert.Nil(t, content)
		assert.Equal(t, OK, severity)
	})

	t.Run("clean tree aggregates to OK and hides dotfiles by default", func(t *testing.T) {
		root := fixtureTree(t)
		w := NewWalker(defaultOptions(), WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)

		require.NotNil(t, m.Content)
		names := childNames(m.Content)
		assert.ElementsMatch(t, []string{"file.txt", "sub", "empty"}, names)

		sub := findChild(t, m.Content, "sub")
		require.NotNil(t, sub.Content, "nested directory must be expanded")
		assert.ElementsMatch(t, []string{"nested.txt"}, childNames(sub.Content))

		empty := findChild(t, m.Content, "empty")
		require.NotNil(t, empty.Content, "an expanded empty directory owns an empty list")
		assert.Len(t, empty.Content, 0)

		file := findChild(t, m.Content, "file.txt")
		assert.Nil(t, file.Content)
	})

	t.Run("almost-all shows hidden entries", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Display = options.DisplayAlmostAll
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)
		assert.Contains(t, childNames(m.Content), ".hidden")
	})

	t.Run("show-all synthesizes dot and dot-dot outside tree layout", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Display = options.DisplayAll
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)

		require.GreaterOrEqual(t, len(m.Content), 2)
		assert.Equal(t, ".", m.Content[0].Name.Base)
		assert.Equal(t, "..", m.Content[1].Name.Base)
		assert.True(t, m.Content[0].FileType.IsDirectory())
	})

	t.Run("tree layout never synthesizes pseudo-entries", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Display = options.DisplayAll
		opts.Layout = options.LayoutTree
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, _, err := w.Build(root)
		require.NoError(t, err)
		assert.NotContains(t, childNames(m.Content), ".")
		assert.NotContains(t, childNames(m.Content), "..")
	})

	t.Run("negative depth behaves like zero", func(t *testing.T) {
		root := fixtureTree(t)
		w := NewWalker(defaultOptions(), WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, err := w.Resolver().FromPath(root, false)
		require.NoError(t, err)

		content, severity, err := w.Expand(m, -1)
		require.NoError(t, err)
		assert.Nil(t, content)
		assert.Equal(t, OK, severity)
	})

	t.Run("system-protected entries stay hidden until asked for", func(t *testing.T) {
		root := fixtureTree(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "pagefile"), []byte("x"), 0o644))
		provider := markingProvider{
			Provider:  meta.DefaultProvider(),
			protected: map[string]bool{"pagefile": true},
		}

		hiding := []options.DisplayMode{
			options.DisplayVisibleOnly,
			options.DisplayAlmostAll,
			options.DisplayAll,
		}
		for _, display := range hiding {
			opts := defaultOptions()
			opts.Display = display
			w := NewWalker(opts,
				WithProvider(provider),
				WithReporter(meta.NewReporter(&bytes.Buffer{})))

			m, severity, err := w.Build(root)
			require.NoError(t, err)
			assert.Equal(t, OK, severity)
			assert.NotContains(t, childNames(m.Content), "pagefile",
				"display mode %s must hide system-protected entries", display)
		}

		opts := defaultOptions()
		opts.Display = options.DisplaySystemProtected
		w := NewWalker(opts,
			WithProvider(provider),
			WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)
		assert.Contains(t, childNames(m.Content), "pagefile")
	})

	t.Run("tree layout directory-only prunes files but still recurses", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Display = options.DisplayDirectoryOnly
		opts.Layout = options.LayoutTree
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)

		require.NotNil(t, m.Content)
		assert.ElementsMatch(t, []string{"sub", "empty"}, childNames(m.Content))

		sub := findChild(t, m.Content, "sub")
		require.NotNil(t, sub.Content, "nested directories are still expanded")
		assert.Empty(t, sub.Content, "nested files are pruned from the tree view")
	})

	t.Run("ignored children vanish without a trace", func(t *testing.T) {
		root := fixtureTree(t)
		opts := defaultOptions()
		opts.Ignore = ignore.CompileIgnoreLines("sub")
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity, "an ignored child contributes nothing, not even severity")
		assert.NotContains(t, childNames(m.Content), "sub")
	})

	t.Run("unreadable directory degrades to a childless entry", func(t *testing.T) {
		var diag bytes.Buffer
		w := NewWalker(defaultOptions(), WithReporter(meta.NewReporter(&diag)))

		missing := filepath.Join(t.TempDir(), "gone")
		m := &meta.Meta{
			Path:     missing,
			FileType: meta.FileType{Kind: meta.KindDirectory},
		}

		content, severity, err := w.Expand(m, 4)
		require.NoError(t, err)
		assert.Nil(t, content)
		assert.Equal(t, MinorIssue, severity)
		assert.True(t, strings.HasPrefix(diag.String(), missing+": "))
	})

	t.Run("symlinked directories are listed but not expanded without dereference", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlink creation needs privileges on windows")
		}

		root := fixtureTree(t)
		require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "link")))

		w := NewWalker(defaultOptions(), WithReporter(meta.NewReporter(&bytes.Buffer{})))
		m, severity, err := w.Build(root)
		require.NoError(t, err)
		assert.Equal(t, OK, severity)

		link := findChild(t, m.Content, "link")
		assert.Equal(t, meta.KindSymlink, link.FileType.Kind)
		assert.Nil(t, link.Content, "un-dereferenced symlink entries are never expanded")

		opts := defaultOptions()
		opts.Dereference = true
		wDeref := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))
		mDeref, _, err := wDeref.Build(root)
		require.NoError(t, err)

		linkDeref := findChild(t, mDeref.Content, "link")
		assert.True(t, linkDeref.FileType.IsDirectory())
		require.NotNil(t, linkDeref.Content)
		assert.ElementsMatch(t, []string{"nested.txt"}, childNames(linkDeref.Content))
	})

	t.Run("one-line layout never follows directory symlinks", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlink creation needs privileges on windows")
		}

		dir := t.TempDir()
		target := filepath.Join(dir, "target")
		require.NoError(t, os.Mkdir(target, 0o755))
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(target, link))

		opts := defaultOptions()
		opts.Layout = options.LayoutOneLine
		w := NewWalker(opts, WithReporter(meta.NewReporter(&bytes.Buffer{})))

		m, err := w.Resolver().FromPath(link, false)
		require.NoError(t, err)
		require.True(t, m.FileType.TargetIsDir)

		content, severity, err := w.Expand(m, 4)
		require.NoError(t, err)
		assert.Nil(t, content)
		assert.Equal(t, OK, severity)
	})

	t.Run("broken links degrade without escalating severity", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlink creation needs privileges on windows")
		}

		root := fixtureTree(t)
		require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

		opts := defaultOptions()
		opts.Dereference = true
		var diag bytes.Buffer
		w := NewWalker(opts, WithReporter(meta.NewReporter(&diag)))

		m, severity, err := w.Build(root)
		require.NoError(t, err)
		// Broken links degrade silently; the rest of the tree is clean.
		assert.Equal(t, OK, severity)

		dangling := findChild(t, m.Content, "dangling")
		assert.Nil(t, dangling.Attr)
		assert.NotEmpty(t, diag.String(), "broken-link detection emits one diagnostic")

		// The sibling subtree is unaffected.
		sub := findChild(t, m.Content, "sub")
		require.NotNil(t, sub.Content)
	})
}
