package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrgen/manuscript/internal/access"
	"github.com/emrgen/manuscript/internal/store"
	"github.com/emrgen/manuscript/internal/tester"
)

func newObjectService(t *testing.T) *ObjectService {
	t.Helper()
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	return NewObjectService(gormStore, access.NewEngine(gormStore, nil))
}

func TestObjectService_SaveObject(t *testing.T) {
	svc := newObjectService(t)
	ctx := context.TODO()

	projectJSON := []byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"],"writers":["u2"],"viewers":["u3"]}`)

	obj, err := svc.SaveObject(ctx, projectJSON, "u1")
	require.NoError(t, err)
	assert.Equal(t, "MPProject:p1", obj.ID())

	got, err := svc.GetObject(ctx, "MPProject:p1")
	require.NoError(t, err)
	assert.Equal(t, "MPProject", got.ObjectType())
	assert.Equal(t, []string{"u1"}, got.Strings("owners"))

	// a viewer cannot update the project
	renamed := []byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"],"writers":["u2"],"viewers":["u3"],"title":"renamed"}`)
	_, err = svc.SaveObject(ctx, renamed, "u3")
	var forbidden *access.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "user does not have access", forbidden.Reason)

	// a writer can
	_, err = svc.SaveObject(ctx, renamed, "u2")
	require.NoError(t, err)

	got, err = svc.GetObject(ctx, "MPProject:p1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Str("title"))
}

func TestObjectService_SaveObject_RejectedWriteLeavesNoTrace(t *testing.T) {
	svc := newObjectService(t)
	ctx := context.TODO()

	projectJSON := []byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"]}`)
	_, err := svc.SaveObject(ctx, projectJSON, "u2")
	require.Error(t, err)

	_, err = svc.GetObject(ctx, "MPProject:p1")
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestObjectService_ContainedObjects(t *testing.T) {
	svc := newObjectService(t)
	ctx := context.TODO()

	_, err := svc.SaveObject(ctx,
		[]byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"],"viewers":["u3"]}`), "u1")
	require.NoError(t, err)

	section := []byte(`{"_id":"MPSection:s1","objectType":"MPSection","containerID":"MPProject:p1"}`)

	// only users with write access on the container can add contained objects
	_, err = svc.SaveObject(ctx, section, "u3")
	require.Error(t, err)

	_, err = svc.SaveObject(ctx, section, "u1")
	require.NoError(t, err)

	// viewers can list, strangers cannot
	objects, err := svc.ListContainedObjects(ctx, "MPProject:p1", "u3")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "MPSection:s1", objects[0].ID())

	_, err = svc.ListContainedObjects(ctx, "MPProject:p1", "u4")
	var forbidden *access.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestObjectService_DeleteObject(t *testing.T) {
	svc := newObjectService(t)
	ctx := context.TODO()

	_, err := svc.SaveObject(ctx,
		[]byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"],"viewers":["u3"]}`), "u1")
	require.NoError(t, err)
	_, err = svc.SaveObject(ctx,
		[]byte(`{"_id":"MPSection:s1","objectType":"MPSection","containerID":"MPProject:p1"}`), "u1")
	require.NoError(t, err)

	err = svc.DeleteObject(ctx, "MPSection:s1", "u3")
	var forbidden *access.ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	require.NoError(t, svc.DeleteObject(ctx, "MPSection:s1", "u1"))

	// the tombstone remains readable but drops out of container listings
	got, err := svc.GetObject(ctx, "MPSection:s1")
	require.NoError(t, err)
	assert.True(t, got.Deleted())

	objects, err := svc.ListContainedObjects(ctx, "MPProject:p1", "u1")
	require.NoError(t, err)
	assert.Empty(t, objects)

	// a tombstone rejects further mutation
	err = svc.DeleteObject(ctx, "MPSection:s1", "u1")
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "deleted document cannot be mutated", forbidden.Reason)

	assert.ErrorIs(t, svc.DeleteObject(ctx, "MPSection:absent", "u1"), store.ErrObjectNotFound)
}

func TestObjectService_UndeleteContainedObject(t *testing.T) {
	svc := newObjectService(t)
	ctx := context.TODO()

	_, err := svc.SaveObject(ctx,
		[]byte(`{"_id":"MPProject:p1","objectType":"MPProject","owners":["u1"]}`), "u1")
	require.NoError(t, err)
	_, err = svc.SaveObject(ctx,
		[]byte(`{"_id":"MPSection:s1","objectType":"MPSection","containerID":"MPProject:p1"}`), "u1")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteObject(ctx, "MPSection:s1", "u1"))

	restored := []byte(`{"_id":"MPSection:s1","objectType":"MPSection","containerID":"MPProject:p1","_deleted":false}`)
	_, err = svc.SaveObject(ctx, restored, "u1")
	require.NoError(t, err)

	got, err := svc.GetObject(ctx, "MPSection:s1")
	require.NoError(t, err)
	assert.False(t, got.Deleted())
}
