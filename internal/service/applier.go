package service

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// OperationApplier folds an ordered batch of edit operations into document
// content. The reconciler treats operations as opaque; only the applier
// interprets them.
type OperationApplier interface {
	Apply(content []byte, operations []json.RawMessage) ([]byte, error)
}

// JSONPatchApplier interprets each batch as RFC 6902 patch operations
// applied in order.
type JSONPatchApplier struct{}

func (JSONPatchApplier) Apply(content []byte, operations []json.RawMessage) ([]byte, error) {
	raw, err := json.Marshal(operations)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, err
	}

	return patch.Apply(content)
}
