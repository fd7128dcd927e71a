package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/emrgen/manuscript/internal/access"
	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/object"
	"github.com/emrgen/manuscript/internal/policy"
	"github.com/emrgen/manuscript/internal/store"
)

// NewObjectService creates the managed-object service. Every write passes
// through the access decision engine before it is persisted.
func NewObjectService(store store.Store, engine *access.Engine) *ObjectService {
	return &ObjectService{
		store:  store,
		engine: engine,
	}
}

// ObjectService is the direct-upsert write path for container objects and
// other managed objects that are not live collaborative documents.
type ObjectService struct {
	store  store.Store
	engine *access.Engine
}

// EvaluateAccess admits or rejects a proposed mutation without persisting
// anything.
func (s *ObjectService) EvaluateAccess(ctx context.Context, proposed, prior object.Object, userID string) error {
	return s.engine.Evaluate(ctx, proposed, prior, userID)
}

// GetObject retrieves a managed object in decoded form, tombstoned rows
// included.
func (s *ObjectService) GetObject(ctx context.Context, id string) (object.Object, error) {
	row, err := s.store.GetObject(ctx, id)
	if err != nil {
		return nil, err
	}
	return object.FromJSON([]byte(row.Data))
}

// SaveObject evaluates the proposed revision against the stored prior
// revision and upserts it when admitted.
func (s *ObjectService) SaveObject(ctx context.Context, raw []byte, userID string) (object.Object, error) {
	proposed, err := object.FromJSON(raw)
	if err != nil {
		return nil, err
	}

	prior, err := s.prior(ctx, proposed.ID())
	if err != nil {
		return nil, err
	}

	if err := s.engine.Evaluate(ctx, proposed, prior, userID); err != nil {
		logrus.Infof("rejected write of %s by user %q: %v", proposed.ID(), userID, err)
		return nil, err
	}

	if err := s.store.SaveObject(ctx, rowFromObject(proposed)); err != nil {
		return nil, err
	}

	return proposed, nil
}

// DeleteObject writes the tombstone revision of an object through the same
// access gate as any other mutation.
func (s *ObjectService) DeleteObject(ctx context.Context, id, userID string) error {
	prior, err := s.prior(ctx, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return store.ErrObjectNotFound
	}

	proposed := make(object.Object, len(prior)+1)
	for k, v := range prior {
		proposed[k] = v
	}
	proposed["_deleted"] = true

	if err := s.engine.Evaluate(ctx, proposed, prior, userID); err != nil {
		return err
	}

	return s.store.SaveObject(ctx, rowFromObject(proposed))
}

// ListContainedObjects lists the live objects of a container, requiring Read
// access for the user.
func (s *ObjectService) ListContainedObjects(ctx context.Context, containerID, userID string) ([]object.Object, error) {
	container, err := s.store.GetContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Checker().Check(container, userID, policy.Read); err != nil {
		return nil, err
	}

	rows, err := s.store.ListContainedObjects(ctx, containerID)
	if err != nil {
		return nil, err
	}

	objects := make([]object.Object, 0, len(rows))
	for _, row := range rows {
		if row.Deleted {
			continue
		}
		obj, err := object.FromJSON([]byte(row.Data))
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

func (s *ObjectService) prior(ctx context.Context, id string) (object.Object, error) {
	row, err := s.store.GetObject(ctx, id)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return object.FromJSON([]byte(row.Data))
}

func rowFromObject(obj object.Object) *model.ManagedObject {
	objectType := obj.ObjectType()
	if objectType == "" {
		objectType = policy.TypeFromID(obj.ID())
	}

	data, _ := obj.ToJSON()

	return &model.ManagedObject{
		ID:          obj.ID(),
		ObjectType:  objectType,
		ContainerID: obj.ContainerID(),
		Deleted:     obj.Deleted(),
		Data:        string(data),
	}
}
