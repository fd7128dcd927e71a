package access

import (
	"fmt"

	"github.com/emrgen/manuscript/internal/object"
	"github.com/emrgen/manuscript/internal/policy"
)

// Validator checks the structural shape of a proposed object. Failures are
// reported as ValidationError and propagate as the rejection reason.
type Validator interface {
	Validate(obj object.Object) error
}

// SchemaValidator is the default structural validator: the object type must
// belong to the closed enumeration and role arrays must hold strings.
type SchemaValidator struct{}

func (SchemaValidator) Validate(obj object.Object) error {
	objectType := obj.ObjectType()
	if objectType == "" {
		objectType = policy.TypeFromID(obj.ID())
	}
	if !policy.Known(objectType) {
		return &ValidationError{Message: fmt.Sprintf("unknown objectType: %s", objectType)}
	}

	for _, field := range policy.RoleFields {
		raw, ok := obj[field]
		if !ok || raw == nil {
			continue
		}
		switch list := raw.(type) {
		case []string:
		case []any:
			for _, entry := range list {
				if _, ok := entry.(string); !ok {
					return &ValidationError{Message: fmt.Sprintf("%s must be an array of user ids", field)}
				}
			}
		default:
			return &ValidationError{Message: fmt.Sprintf("%s must be an array of user ids", field)}
		}
	}

	return nil
}
