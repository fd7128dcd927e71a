package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emrgen/manuscript/internal/object"
)

func TestRoles(t *testing.T) {
	container := object.Object{
		"owners":     []string{"o1"},
		"writers":    []string{"w1"},
		"viewers":    []string{"v1"},
		"annotators": []string{"a1"},
		"editors":    []string{"e1"},
	}

	assert.True(t, Satisfies(container, "v1", Read))
	assert.True(t, Satisfies(container, "o1", Read))
	assert.False(t, Satisfies(container, "v1", Write))
	assert.True(t, Satisfies(container, "w1", Write))
	assert.True(t, Satisfies(container, "e1", Reject))
	assert.True(t, Satisfies(container, "e1", Resolve))
	assert.False(t, Satisfies(container, "a1", Resolve))
	assert.True(t, Satisfies(container, "a1", Contribute))
	assert.False(t, Satisfies(container, "v1", Contribute))
}

func TestSatisfies_EmptyUser(t *testing.T) {
	container := object.Object{"owners": []string{"o1"}}

	assert.False(t, Satisfies(container, "", Read))
	assert.False(t, Satisfies(container, "", Write))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryContainer, CategoryOf(TypeProject))
	assert.Equal(t, CategoryContainer, CategoryOf(TypeLibraryCollection))
	assert.Equal(t, CategoryAnnotation, CategoryOf(TypeCorrection))
	assert.Equal(t, CategoryCollaboration, CategoryOf(TypeInvitation))
	assert.Equal(t, CategoryContained, CategoryOf("MPSection"))
	assert.Equal(t, CategoryContained, CategoryOf(TypeKeyword))
}

func TestTypeFromID(t *testing.T) {
	assert.Equal(t, "MPProject", TypeFromID("MPProject:foo"))
	assert.Equal(t, "", TypeFromID("nocolon"))
}

func TestExcludedFromContainerRule(t *testing.T) {
	assert.True(t, ExcludedFromContainerRule(TypeCommit))
	assert.True(t, ExcludedFromContainerRule(TypeCorrection))
	assert.False(t, ExcludedFromContainerRule("MPSection"))
	assert.False(t, ExcludedFromContainerRule(TypeProject))
}
