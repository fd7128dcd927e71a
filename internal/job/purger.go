package job

import (
	"context"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emrgen/manuscript/internal/store"
)

// DocumentPurger permanently removes documents whose tombstone is older than
// the retention window, together with their histories, snapshots and
// migration backups.
type DocumentPurger struct {
	store     store.Store
	retention time.Duration
	schedule  string
	done      chan struct{}
}

// NewDocumentPurger creates a purger running on the given cron schedule.
func NewDocumentPurger(store store.Store, retention time.Duration, schedule string) *DocumentPurger {
	return &DocumentPurger{
		store:     store,
		retention: retention,
		schedule:  schedule,
		done:      make(chan struct{}),
	}
}

func (p *DocumentPurger) Schedule() string {
	return p.schedule
}

func (p *DocumentPurger) Stop() {
	close(p.done)
}

func (p *DocumentPurger) Run() {
	select {
	case <-p.done:
		return
	default:
	}

	p.purge()
}

func (p *DocumentPurger) purge() {
	ctx := context.Background()
	cutoff := time.Now().Add(-p.retention)

	docs, err := p.store.ListDeletedDocumentsBefore(ctx, cutoff)
	if err != nil {
		logrus.Error("Error listing soft-deleted documents: ", err)
		return
	}

	purge := goset.NewSet[string]()
	for _, doc := range docs {
		purge.Add(doc.ID)
	}

	if purge.Cardinality() == 0 {
		return
	}

	logrus.Infof("purging %d documents deleted before %s", purge.Cardinality(), cutoff.Format(time.RFC3339))

	for _, id := range purge.ToSlice() {
		docID, err := uuid.Parse(id)
		if err != nil {
			logrus.Errorf("skipping purge of malformed document id %q: %v", id, err)
			continue
		}

		err = p.store.Transaction(ctx, func(tx store.Store) error {
			if err := tx.DeleteDocumentHistory(ctx, docID); err != nil {
				return err
			}
			if err := tx.DeleteDocumentSnapshots(ctx, docID); err != nil {
				return err
			}
			if err := tx.DeleteMigrationBackups(ctx, docID); err != nil {
				return err
			}
			return tx.EraseDocument(ctx, docID)
		})
		if err != nil {
			logrus.Errorf("Error purging document %s: %v", id, err)
		}
	}
}
