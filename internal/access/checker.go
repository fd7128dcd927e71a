package access

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/emrgen/manuscript/internal/object"
	"github.com/emrgen/manuscript/internal/policy"
)

// ContainerGetter resolves a container object by id. A nil object with a nil
// error means the container does not exist.
type ContainerGetter interface {
	GetContainer(ctx context.Context, id string) (object.Object, error)
}

// Checker verifies that a user holds an access level on a container. The
// check reads from the store when given a container by reference but never
// writes.
type Checker struct {
	store ContainerGetter
}

func NewChecker(store ContainerGetter) *Checker {
	return &Checker{store: store}
}

// Check verifies the access level against an already-resolved container.
func (c *Checker) Check(container object.Object, userID string, level policy.AccessLevel) error {
	if container == nil || !policy.Satisfies(container, userID, level) {
		logrus.Debugf("user %q lacks %s access on %s", userID, level, container.ID())
		return forbidden("user does not have access")
	}
	return nil
}

// CheckByID resolves the container by id and verifies the access level.
func (c *Checker) CheckByID(ctx context.Context, containerID, userID string, level policy.AccessLevel) error {
	container, err := c.store.GetContainer(ctx, containerID)
	if err != nil {
		logrus.Errorf("resolving container %s: %v", containerID, err)
		return err
	}
	return c.Check(container, userID, level)
}
