package policy

import "strings"

// Object type tags. The set is closed: unknown tags fail validation.
const (
	TypeProject             = "MPProject"
	TypeLibrary             = "MPLibrary"
	TypeLibraryCollection   = "MPLibraryCollection"
	TypeCollaboration       = "MPCollaboration"
	TypeInvitation          = "MPInvitation"
	TypeContainerInvitation = "MPContainerInvitation"
	TypeContainerRequest    = "MPContainerRequest"
	TypePreferences         = "MPPreferences"
	TypeMutedCitationAlert  = "MPMutedCitationAlert"
	TypeCitationAlert       = "MPCitationAlert"
	TypeBibliographyItem    = "MPBibliographyItem"
	TypeCorrection          = "MPCorrection"
	TypeCommentAnnotation   = "MPCommentAnnotation"
	TypeManuscriptNote      = "MPManuscriptNote"
	TypeCommit              = "MPCommit"
	TypeKeyword             = "MPKeyword"
)

// Generic contained types carry no rules of their own; access is delegated
// to their container.
var containedTypes = []string{
	"MPManuscript",
	"MPSection",
	"MPParagraphElement",
	"MPCitation",
	"MPBibliographyElement",
	"MPFigure",
	"MPFigureElement",
	"MPTable",
	"MPTableElement",
	"MPEquation",
	"MPEquationElement",
	"MPContributor",
	"MPAffiliation",
	"MPUserProject",
	"MPSnapshot",
}

// Category groups object types by the rule set that applies to them.
type Category int

const (
	CategoryContained Category = iota
	CategoryContainer
	CategoryCollaboration
	CategoryPreferences
	CategoryMutedCitationAlert
	CategoryCitationAlert
	CategoryBibliographyItem
	CategoryAnnotation
	CategoryCommit
)

var categories = map[string]Category{
	TypeProject:             CategoryContainer,
	TypeLibrary:             CategoryContainer,
	TypeLibraryCollection:   CategoryContainer,
	TypeCollaboration:       CategoryCollaboration,
	TypeInvitation:          CategoryCollaboration,
	TypeContainerInvitation: CategoryCollaboration,
	TypePreferences:         CategoryPreferences,
	TypeMutedCitationAlert:  CategoryMutedCitationAlert,
	TypeCitationAlert:       CategoryCitationAlert,
	TypeBibliographyItem:    CategoryBibliographyItem,
	TypeCorrection:          CategoryAnnotation,
	TypeCommentAnnotation:   CategoryAnnotation,
	TypeManuscriptNote:      CategoryAnnotation,
	TypeCommit:              CategoryCommit,
}

var knownTypes = map[string]bool{}

func init() {
	for t := range categories {
		knownTypes[t] = true
	}
	knownTypes[TypeContainerRequest] = true
	knownTypes[TypeKeyword] = true
	for _, t := range containedTypes {
		knownTypes[t] = true
	}
}

// CategoryOf returns the rule category for an object type. Unknown and
// generic contained types fall into CategoryContained.
func CategoryOf(objectType string) Category {
	if c, ok := categories[objectType]; ok {
		return c
	}
	return CategoryContained
}

// Known reports whether the object type belongs to the closed enumeration.
func Known(objectType string) bool {
	return knownTypes[objectType]
}

// TypeFromID extracts the objectType prefix from an id of the form
// "<objectType>:<tail>".
func TypeFromID(id string) string {
	if i := strings.Index(id, ":"); i > 0 {
		return id[:i]
	}
	return ""
}

// excludedFromContainerRule lists the types whose own rules already cover
// container access, so the transitive containerID write check is skipped.
var excludedFromContainerRule = map[string]bool{
	TypeContainerInvitation: true,
	TypeContainerRequest:    true,
	TypeCorrection:          true,
	TypeCommentAnnotation:   true,
	TypeManuscriptNote:      true,
	TypeCommit:              true,
}

// ExcludedFromContainerRule reports whether the transitive container write
// check is skipped for the type.
func ExcludedFromContainerRule(objectType string) bool {
	return excludedFromContainerRule[objectType]
}
