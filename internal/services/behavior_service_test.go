package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eatwise/internal/survey"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

func TestSubmitBehaviorsReplaces(t *testing.T) {
	svc := NewBehaviorService(testCatalog(), newFakeBehaviorRepo(), logger.Nop())
	ctx := context.Background()
	user := uuid.NewString()

	require.NoError(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{
		{BehaviorID: 1, FirstPriority: true, HighPriority: true},
		{BehaviorID: 2, FirstPriority: true, HighPriority: true},
	}))
	require.NoError(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{
		{BehaviorID: 4, FirstPriority: true, HighPriority: true},
		{BehaviorID: 3, FirstPriority: true, HighPriority: false},
		{BehaviorID: 1, FirstPriority: true, HighPriority: false},
		{BehaviorID: 2, FirstPriority: true, HighPriority: false},
	}))

	got, err := svc.GetUserBehaviors(ctx, user)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, 4, got[0].BehaviorID)
	assert.Equal(t, "Eating fast", got[0].BehaviorTitle)
	assert.True(t, got[0].HighPriority)
	assert.False(t, got[1].HighPriority)
}

func TestSubmitBehaviorsRejects(t *testing.T) {
	svc := NewBehaviorService(testCatalog(), newFakeBehaviorRepo(), logger.Nop())
	ctx := context.Background()
	user := uuid.NewString()

	assert.ErrorIs(t, svc.SubmitBehaviors(ctx, user, nil), utils.ErrEmptyBehaviorList)
	assert.ErrorIs(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{{BehaviorID: 42, HighPriority: true}}), utils.ErrBehaviorNotFound)
	assert.ErrorIs(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{
		{BehaviorID: 1, HighPriority: true}, {BehaviorID: 1, HighPriority: true},
	}), utils.ErrInvalidBehaviors)
	assert.ErrorIs(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{{BehaviorID: 1, FirstPriority: true}}), utils.ErrInvalidBehaviors, "no high priority")
	assert.ErrorIs(t, svc.SubmitBehaviors(ctx, user, []survey.BehaviorItem{
		{BehaviorID: 1, HighPriority: true}, {BehaviorID: 2, HighPriority: true},
		{BehaviorID: 3, HighPriority: true}, {BehaviorID: 4, HighPriority: true},
	}), utils.ErrInvalidBehaviors, "four high priority")
}
