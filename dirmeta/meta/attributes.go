package meta

import (
	"io/fs"
	"time"
)

// Owner identifies the owning user and group in the platform's
// representation (names where resolvable, numeric ids otherwise).
type Owner struct {
	User  string
	Group string
}

// Permissions wraps the normalized mode bits for an entry.
type Permissions struct {
	Mode fs.FileMode
}

// Executable reports whether any execute bit is set.
func (p Permissions) Executable() bool {
	return p.Mode&0o111 != 0
}

func (p Permissions) String() string {
	return p.Mode.String()
}

// AccessControl is a best-effort summary of the extended ACL attached to a
// path. Lookup failures are absorbed into the empty value.
type AccessControl struct {
	Entries []string
}

// Empty reports whether no extended ACL information was found.
func (a AccessControl) Empty() bool {
	return len(a.Entries) == 0
}

// Attributes is the optional attribute group of a record. It is populated as
// a unit: a record either carries all of these or none of them, so the
// all-or-nothing invariant is structural rather than per-field.
type Attributes struct {
	INode         uint64
	Links         uint64
	Size          int64
	Date          time.Time
	Owner         Owner
	Permissions   Permissions
	AccessControl AccessControl
}
