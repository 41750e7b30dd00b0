package meta

import "os"

// Provider is the per-OS accessor for attribute sources that diverge between
// platforms: ownership, permission bits, hidden/system flags and access
// control lists. The rest of the package depends only on its normalized
// output, never on raw platform structures.
type Provider interface {
	Owner(path string, info os.FileInfo) Owner
	Permissions(path string, info os.FileInfo) Permissions
	// IsHidden follows the dotfile convention on POSIX and additionally the
	// native hidden attribute where the platform has one.
	IsHidden(path string) bool
	// IsSystemProtected is always false where the platform has no such
	// concept.
	IsSystemProtected(path string) bool
	// AccessControl is best-effort: lookup errors are absorbed into the
	// empty value and never block resolution.
	AccessControl(path string) AccessControl
}

// DefaultProvider returns the provider for the build platform.
func DefaultProvider() Provider {
	return newPlatformProvider()
}
