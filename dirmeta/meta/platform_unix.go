//go:build !windows

package meta

import (
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

type unixProvider struct{}

func newPlatformProvider() Provider {
	return unixProvider{}
}

// aclAttrs are the extended attributes that carry POSIX ACLs on Linux.
// Platforms without them simply fail the lookup, which we absorb.
var aclAttrs = []string{"system.posix_acl_access", "system.posix_acl_default"}

func (unixProvider) Owner(path string, info os.FileInfo) Owner {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Owner{User: "unknown", Group: "unknown"}
	}

	// Fall back to numeric ids when the lookup fails
	owner := Owner{
		User:  strconv.FormatUint(uint64(stat.Uid), 10),
		Group: strconv.FormatUint(uint64(stat.Gid), 10),
	}
	if u, err := user.LookupId(owner.User); err == nil {
		owner.User = u.Username
	}
	if g, err := user.LookupGroupId(owner.Group); err == nil {
		owner.Group = g.Name
	}
	return owner
}

func (unixProvider) Permissions(path string, info os.FileInfo) Permissions {
	mode := info.Mode() & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
	return Permissions{Mode: mode}
}

func (unixProvider) IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func (unixProvider) IsSystemProtected(path string) bool {
	return false
}

func (unixProvider) AccessControl(path string) AccessControl {
	var acl AccessControl
	for _, attr := range aclAttrs {
		size, err := unix.Lgetxattr(path, attr, nil)
		if err != nil || size <= 0 {
			continue
		}
		acl.Entries = append(acl.Entries, attr)
	}
	return acl
}

func inodeOf(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Ino
	}
	return 0
}

func linksOf(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Nlink)
	}
	return 1
}
