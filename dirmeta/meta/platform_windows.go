//go:build windows

package meta

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

type windowsProvider struct{}

func newPlatformProvider() Provider {
	return windowsProvider{}
}

func (windowsProvider) Owner(path string, info os.FileInfo) Owner {
	owner := Owner{User: "unknown", Group: "unknown"}

	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT,
		windows.OWNER_SECURITY_INFORMATION|windows.GROUP_SECURITY_INFORMATION)
	if err != nil {
		return owner
	}

	if sid, _, err := sd.Owner(); err == nil && sid != nil {
		if account, domain, _, err := sid.LookupAccount(""); err == nil {
			owner.User = domain + "\\" + account
		}
	}
	if sid, _, err := sd.Group(); err == nil && sid != nil {
		if account, domain, _, err := sid.LookupAccount(""); err == nil {
			owner.Group = domain + "\\" + account
		}
	}
	return owner
}

func (windowsProvider) Permissions(path string, info os.FileInfo) Permissions {
	return Permissions{Mode: info.Mode().Perm()}
}

func (windowsProvider) IsHidden(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	return hasFileAttribute(path, windows.FILE_ATTRIBUTE_HIDDEN)
}

func (windowsProvider) IsSystemProtected(path string) bool {
	return hasFileAttribute(path, windows.FILE_ATTRIBUTE_SYSTEM)
}

func (windowsProvider) AccessControl(path string) AccessControl {
	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT,
		windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return AccessControl{}
	}
	acl, _, err := sd.DACL()
	if err != nil || acl == nil {
		return AccessControl{}
	}
	return AccessControl{Entries: []string{sd.String()}}
}

func hasFileAttribute(path string, attribute uint32) bool {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&attribute != 0
}

func inodeOf(info os.FileInfo) uint64 {
	return 0
}

func linksOf(info os.FileInfo) uint64 {
	return 1
}
