package survey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"eatwise/pkg/logger"
)

// BehaviorUpdate is the profile screen flow for changing focus behaviors after
// onboarding. At most MaxDirectBehaviors may be picked, all high priority, so
// there is no priority stage.
type BehaviorUpdate struct {
	catalog   BehaviorCatalog
	submitter Submitter
	tokens    TokenSource
	log       *logger.Logger

	mu        sync.Mutex
	behaviors map[int]Behavior
	selection Selection
}

func NewBehaviorUpdate(catalog BehaviorCatalog, submitter Submitter, tokens TokenSource, log *logger.Logger) *BehaviorUpdate {
	if log == nil {
		log = logger.Nop()
	}
	return &BehaviorUpdate{
		catalog:   catalog,
		submitter: submitter,
		tokens:    tokens,
		log:       log.With("component", "behavior_update"),
	}
}

func (u *BehaviorUpdate) Load(ctx context.Context) ([]Behavior, error) {
	list, err := u.catalog.Behaviors(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch behaviors: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.behaviors = make(map[int]Behavior, len(list))
	for _, b := range list {
		u.behaviors[b.ID] = b
	}
	return list, nil
}

// Toggle flips id; a fourth pick is ignored. Reports whether anything changed.
func (u *BehaviorUpdate) Toggle(id int) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.behaviors[id]; !ok {
		return false, fmt.Errorf("behavior %d: %w", id, ErrUnknownBehavior)
	}
	if !u.selection.IsSelected(id) && u.selection.Len() >= MaxDirectBehaviors {
		return false, nil
	}
	u.selection.Toggle(id)
	return true, nil
}

func (u *BehaviorUpdate) Selected() []int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.selection.Selected()
}

func (u *BehaviorUpdate) Submit(ctx context.Context) error {
	u.mu.Lock()
	if u.selection.Len() == 0 {
		u.mu.Unlock()
		return &ValidationError{Reason: "please select at least one behavior"}
	}
	items := u.selection.BehaviorList()
	u.mu.Unlock()

	token, ok := u.tokens.Token()
	if !ok || token == "" {
		return &AuthError{}
	}
	if err := u.submitter.SubmitBehaviors(ctx, token, items); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return &AuthError{Err: err}
		}
		u.log.Warn("behavior update failed", "error", err)
		return &SubmissionError{Step: StepBehaviors, Err: err}
	}
	u.log.Info("behaviors updated", "count", len(items))
	return nil
}
