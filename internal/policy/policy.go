// Package policy defines the role and membership vocabulary for managed
// objects and the role unions that satisfy each access level.
package policy

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/emrgen/manuscript/internal/object"
)

// AccessLevel is the kind of access being requested on a container.
type AccessLevel int

const (
	// Read is satisfied by any member of the container.
	Read AccessLevel = iota
	// Write is satisfied by owners and writers.
	Write
	// Reject allows rejecting a correction or unresolving an annotation.
	Reject
	// Resolve allows approving a correction or resolving an annotation.
	Resolve
	// Contribute allows adding contributions to annotation-like objects.
	Contribute
)

func (l AccessLevel) String() string {
	switch l {
	case Read:
		return "read"
	case Write:
		return "write"
	case Reject:
		return "reject"
	case Resolve:
		return "resolve"
	case Contribute:
		return "contribute"
	default:
		return "unknown"
	}
}

// RoleFields are the membership arrays carried by container objects, in the
// order they are scanned for duplicates.
var RoleFields = []string{"owners", "writers", "viewers", "annotators", "editors"}

// Roles returns the user ids satisfying the access level on a container
// object.
func Roles(container object.Object, level AccessLevel) mapset.Set[string] {
	owners := container.Strings("owners")
	writers := container.Strings("writers")

	switch level {
	case Read:
		union := mapset.NewSet[string]()
		for _, field := range RoleFields {
			union.Append(container.Strings(field)...)
		}
		return union
	case Write:
		union := mapset.NewSet[string](owners...)
		union.Append(writers...)
		return union
	case Reject, Resolve:
		union := mapset.NewSet[string](owners...)
		union.Append(writers...)
		union.Append(container.Strings("editors")...)
		return union
	case Contribute:
		union := mapset.NewSet[string](owners...)
		union.Append(writers...)
		union.Append(container.Strings("editors")...)
		union.Append(container.Strings("annotators")...)
		return union
	default:
		return mapset.NewSet[string]()
	}
}

// Satisfies reports whether userID holds the access level on the container.
// An empty userID never satisfies any level.
func Satisfies(container object.Object, userID string, level AccessLevel) bool {
	if userID == "" {
		return false
	}
	return Roles(container, level).Contains(userID)
}
