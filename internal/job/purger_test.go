package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/store"
	"github.com/emrgen/manuscript/internal/tester"
)

func TestDocumentPurger(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	expired := uuid.New()
	require.NoError(t, gormStore.CreateDocument(ctx, &model.Document{
		ID:            expired.String(),
		Content:       "{}",
		SchemaVersion: "2.0.0",
	}))
	require.NoError(t, gormStore.CreateDocumentHistory(ctx, &model.DocumentHistory{
		DocumentID: expired.String(),
		Version:    1,
		Operations: "[]",
		ClientID:   "client-1",
	}))
	require.NoError(t, gormStore.CreateSnapshot(ctx, &model.Snapshot{
		ID:         uuid.New().String(),
		DocumentID: expired.String(),
		Content:    "{}",
	}))
	require.NoError(t, gormStore.CreateMigrationBackup(ctx, &model.MigrationBackup{
		ID:            uuid.New().String(),
		DocumentID:    expired.String(),
		SchemaVersion: "1.0.0",
		Content:       "{}",
	}))

	live := uuid.New()
	require.NoError(t, gormStore.CreateDocument(ctx, &model.Document{
		ID:            live.String(),
		Content:       "{}",
		SchemaVersion: "2.0.0",
	}))

	require.NoError(t, gormStore.DeleteDocument(ctx, expired))

	time.Sleep(10 * time.Millisecond)

	purger := NewDocumentPurger(gormStore, 0, "@every 1h")
	purger.Run()

	// the tombstoned document and every dependent record are gone for good
	docs, err := gormStore.ListDeletedDocumentsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, docs)

	history, err := gormStore.ListDocumentHistory(ctx, expired, 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	snapshots, err := gormStore.ListSnapshots(ctx, expired)
	require.NoError(t, err)
	assert.Empty(t, snapshots)

	backups, err := gormStore.ListMigrationBackups(ctx, expired)
	require.NoError(t, err)
	assert.Empty(t, backups)

	_, err = gormStore.GetDocument(ctx, live)
	assert.NoError(t, err)
}

func TestDocumentPurger_RetentionWindow(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	recent := uuid.New()
	require.NoError(t, gormStore.CreateDocument(ctx, &model.Document{
		ID:            recent.String(),
		Content:       "{}",
		SchemaVersion: "2.0.0",
	}))
	require.NoError(t, gormStore.DeleteDocument(ctx, recent))

	// a tombstone younger than the retention window survives the sweep
	purger := NewDocumentPurger(gormStore, time.Hour, "@every 1h")
	purger.Run()

	docs, err := gormStore.ListDeletedDocumentsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentPurger_StopPreventsRuns(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	docID := uuid.New()
	require.NoError(t, gormStore.CreateDocument(ctx, &model.Document{
		ID:            docID.String(),
		Content:       "{}",
		SchemaVersion: "2.0.0",
	}))
	require.NoError(t, gormStore.DeleteDocument(ctx, docID))

	purger := NewDocumentPurger(gormStore, 0, "@every 1h")
	purger.Stop()
	purger.Run()

	docs, err := gormStore.ListDeletedDocumentsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
