package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	obj, err := FromJSON([]byte(`{
		"_id": "MPProject:p1",
		"objectType": "MPProject",
		"containerID": "",
		"owners": ["u1", "u2"],
		"_deleted": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, "MPProject:p1", obj.ID())
	assert.Equal(t, "MPProject", obj.ObjectType())
	assert.Equal(t, "", obj.ContainerID())
	assert.True(t, obj.Deleted())
	assert.Equal(t, []string{"u1", "u2"}, obj.Strings("owners"))

	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestAccessors_NilAndMissing(t *testing.T) {
	var obj Object

	assert.Equal(t, "", obj.ID())
	assert.False(t, obj.Deleted())
	assert.False(t, obj.Has("anything"))
	assert.Nil(t, obj.Strings("owners"))

	obj = Object{"n": float64(3), "flag": "yes"}
	assert.Equal(t, "", obj.Str("n"))
	assert.False(t, obj.Bool("flag"))
	assert.True(t, obj.Has("n"))
}

func TestStrings_AcceptsBothArrayForms(t *testing.T) {
	obj := Object{
		"decoded": []any{"a", "b", float64(1)},
		"literal": []string{"c"},
		"scalar":  "d",
	}

	assert.Equal(t, []string{"a", "b"}, obj.Strings("decoded"))
	assert.Equal(t, []string{"c"}, obj.Strings("literal"))
	assert.Nil(t, obj.Strings("scalar"))
}

func TestList(t *testing.T) {
	obj := Object{
		"decoded": []any{map[string]any{"profileID": "p"}},
		"literal": []map[string]any{{"profileID": "q"}},
	}

	assert.Len(t, obj.List("decoded"), 1)
	assert.Len(t, obj.List("literal"), 1)
	assert.Nil(t, obj.List("absent"))
}
