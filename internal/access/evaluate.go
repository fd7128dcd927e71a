// Package access implements the synchronous authorization gate that admits
// or rejects a proposed mutation of a managed object against the prior
// revision and the acting user.
package access

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/emrgen/manuscript/internal/diff"
	"github.com/emrgen/manuscript/internal/object"
	"github.com/emrgen/manuscript/internal/policy"
)

// Engine evaluates mutation requests. It is side-effect-free except for
// container lookups through the store, which are reads only.
type Engine struct {
	checker   *Checker
	validator Validator
}

// NewEngine creates an engine backed by the given container store. A nil
// validator falls back to the default SchemaValidator.
func NewEngine(store ContainerGetter, validator Validator) *Engine {
	if validator == nil {
		validator = SchemaValidator{}
	}
	return &Engine{
		checker:   NewChecker(store),
		validator: validator,
	}
}

// Checker exposes the container access checker for callers that need
// standalone checks.
func (e *Engine) Checker() *Checker {
	return e.checker
}

// Evaluate admits or rejects a proposed revision. prior is nil for a first
// revision, userID is empty for an unauthenticated caller. The checks run
// sequentially and the first failing rule wins.
func (e *Engine) Evaluate(ctx context.Context, proposed, prior object.Object, userID string) error {
	if prior != nil && prior.Deleted() && proposed.Deleted() {
		return forbidden("deleted document cannot be mutated")
	}

	if proposed.ID() == "" {
		return forbidden("missing id")
	}

	if objectType := proposed.ObjectType(); objectType != "" && !strings.HasPrefix(proposed.ID(), objectType) {
		return forbidden("id must have objectType as prefix")
	}

	// An undelete is only possible for contained objects; a tombstoned
	// top-level object is validated for shape and nothing more.
	undeleteAllowed := proposed.ContainerID() != ""
	if prior != nil && prior.Deleted() && !undeleteAllowed {
		return e.validator.Validate(proposed)
	}

	if prior != nil && prior.ObjectType() != proposed.ObjectType() {
		return forbidden("objectType cannot be mutated")
	}
	if prior != nil && prior.ContainerID() != proposed.ContainerID() {
		return forbidden("containerID cannot be mutated")
	}
	if err := e.validator.Validate(proposed); err != nil {
		return err
	}

	switch policy.CategoryOf(proposed.ObjectType()) {
	case policy.CategoryContainer:
		if err := e.evaluateContainer(ctx, proposed, prior, userID); err != nil {
			return err
		}
	case policy.CategoryCollaboration:
		if err := e.evaluateCollaboration(proposed, prior, userID); err != nil {
			return err
		}
	case policy.CategoryPreferences:
		if err := evaluatePreferences(proposed, userID); err != nil {
			return err
		}
	case policy.CategoryMutedCitationAlert:
		if userID == "" || userID != proposed.Str("userID") {
			return forbidden("user does not have access")
		}
	case policy.CategoryCitationAlert:
		if diff.Changed(proposed, prior, "isRead") {
			if userID == "" || userID != proposed.Str("userID") {
				return forbidden("user does not have access")
			}
		}
	case policy.CategoryBibliographyItem:
		for _, keywordID := range proposed.Strings("keywordIDs") {
			if err := e.checker.CheckByID(ctx, keywordID, userID, policy.Reject); err != nil {
				return err
			}
		}
	case policy.CategoryAnnotation:
		if err := e.evaluateAnnotation(ctx, proposed, prior, userID); err != nil {
			return err
		}
	case policy.CategoryCommit:
		level := policy.Write
		if !diff.Changed(proposed, prior, "") {
			level = policy.Contribute
		}
		if err := e.checker.CheckByID(ctx, proposed.ContainerID(), userID, level); err != nil {
			return err
		}
	}

	if containerID := proposed.ContainerID(); containerID != "" &&
		!policy.ExcludedFromContainerRule(proposed.ObjectType()) {
		return e.checker.CheckByID(ctx, containerID, userID, policy.Write)
	}

	return nil
}

func (e *Engine) evaluateContainer(ctx context.Context, proposed, prior object.Object, userID string) error {
	if !proposed.Deleted() && len(proposed.Strings("owners")) == 0 {
		return forbidden("owners cannot be set/updated to be empty")
	}

	rolesChanged := false
	for _, field := range policy.RoleFields {
		if diff.Changed(proposed, prior, field) {
			rolesChanged = true
			break
		}
	}
	if rolesChanged && !memberOf(proposed.Strings("owners"), userID) {
		return forbidden("user does not have access")
	}

	objectType := proposed.ObjectType()
	if objectType == policy.TypeLibrary || objectType == policy.TypeLibraryCollection {
		if diff.Changed(proposed, prior, "category") {
			return forbidden("category cannot be mutated")
		}
	}

	if !proposed.Deleted() {
		seen := mapset.NewSet[string]()
		for _, field := range policy.RoleFields {
			for _, id := range proposed.Strings(field) {
				if seen.Contains(id) {
					return forbidden("duplicate userId:" + id)
				}
				seen.Add(id)
			}
		}
	}

	if prior != nil {
		return e.checker.Check(prior, userID, policy.Write)
	}

	allowed := memberOf(proposed.Strings("owners"), userID)
	if objectType == policy.TypeLibraryCollection {
		allowed = allowed || memberOf(proposed.Strings("writers"), userID)
	}
	if !allowed {
		return forbidden("user does not have access")
	}

	return nil
}

// evaluateCollaboration covers MPCollaboration, MPInvitation and
// MPContainerInvitation. A collaboration is immutable after creation; since
// a first revision is never a mutation, creation passes the whole-object
// change check by construction.
func (e *Engine) evaluateCollaboration(proposed, prior object.Object, userID string) error {
	if proposed.ObjectType() == policy.TypeCollaboration {
		if diff.Changed(proposed, prior, "") {
			return forbidden("collaboration cannot be mutated")
		}
	}

	if userID == "" || userID != proposed.Str("invitingUserID") {
		return forbidden("user does not have access")
	}

	return nil
}

// evaluatePreferences requires the acting user to match the username
// embedded in the id after the ':' separator.
func evaluatePreferences(proposed object.Object, userID string) error {
	sep := strings.Index(proposed.ID(), ":")
	if sep < 0 || userID == "" || userID != proposed.ID()[sep+1:] {
		return forbidden("user does not have access")
	}
	return nil
}

func (e *Engine) evaluateAnnotation(ctx context.Context, proposed, prior object.Object, userID string) error {
	if proposed.Has("contributions") && len(proposed.List("contributions")) != 1 {
		return forbidden("Only one contribution allowed")
	}
	if diff.Changed(proposed, prior, "contributions") {
		return forbidden("contributions cannot be mutated")
	}

	containerID := proposed.ContainerID()
	objectType := proposed.ObjectType()

	statusField := "resolved"
	rejecting := diff.Changed(proposed, prior, "resolved") && !proposed.Bool("resolved")
	if objectType == policy.TypeCorrection {
		statusField = "status"
		status := object.Object(proposed.Map("status"))
		rejecting = status.Str("label") == "rejected"
	}

	switch {
	case rejecting:
		if err := e.checker.CheckByID(ctx, containerID, userID, policy.Reject); err != nil {
			return err
		}
	case prior != nil && diff.Changed(proposed, prior, statusField):
		if err := e.checker.CheckByID(ctx, containerID, userID, policy.Resolve); err != nil {
			return err
		}
	default:
		if err := e.checker.CheckByID(ctx, containerID, userID, policy.Contribute); err != nil {
			return err
		}
	}

	if diff.Changed(proposed, prior, "readBy") {
		profileID := contributionProfileID(proposed)
		if profileID == "" || !memberOf(proposed.Strings("readBy"), profileID) {
			return forbidden("user can set status read only for self and cannot unset it")
		}
		return e.checker.CheckByID(ctx, containerID, userID, policy.Write)
	}

	return nil
}

func contributionProfileID(obj object.Object) string {
	contributions := obj.List("contributions")
	if len(contributions) != 1 {
		return ""
	}
	entry, _ := contributions[0].(map[string]any)
	return object.Object(entry).Str("profileID")
}

func memberOf(ids []string, userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range ids {
		if id == userID {
			return true
		}
	}
	return false
}
