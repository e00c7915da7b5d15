package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reportdesk/backend/internal/apperr"
)

func TestNextElementStatus(t *testing.T) {
	next, ok := NextElementStatus(ElementStatusDraft)
	assert.True(t, ok)
	assert.Equal(t, ElementStatusStaged, next)

	next, ok = NextElementStatus(ElementStatusStaged)
	assert.True(t, ok)
	assert.Equal(t, ElementStatusApproved, next)

	// approved is terminal
	_, ok = NextElementStatus(ElementStatusApproved)
	assert.False(t, ok)
}

func TestElementStateMachineOneStepOnly(t *testing.T) {
	sm := NewElementStateMachine()

	assert.True(t, sm.CanTransition(ElementStatusDraft, ElementStatusStaged))
	assert.True(t, sm.CanTransition(ElementStatusStaged, ElementStatusApproved))

	// no skipping and no going back
	assert.False(t, sm.CanTransition(ElementStatusDraft, ElementStatusApproved))
	assert.False(t, sm.CanTransition(ElementStatusStaged, ElementStatusDraft))
	assert.False(t, sm.CanTransition(ElementStatusApproved, ElementStatusStaged))
	assert.False(t, sm.CanTransition(ElementStatusDraft, ElementStatusDraft))
}

func TestElementStateMachineValidateTransition(t *testing.T) {
	sm := NewElementStateMachine()

	assert.NoError(t, sm.ValidateTransition(ElementStatusDraft, ElementStatusStaged))

	err := sm.ValidateTransition(ElementStatusApproved, ElementStatusDraft)
	assert.Equal(t, apperr.KindPreconditionFailed, apperr.KindOf(err))

	err = sm.ValidateTransition(ElementStatusDraft, ElementStatus("reviewed"))
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
