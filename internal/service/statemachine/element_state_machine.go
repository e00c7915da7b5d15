package statemachine

import (
	"github.com/reportdesk/backend/internal/apperr"
)

// ElementStatus covers the approval lifecycle of a content element.
// The sequence is monotonic: draft -> staged -> approved, one step at a
// time, never backwards. Only "approved" is checked by the publish
// guard.
type ElementStatus string

const (
	ElementStatusDraft    ElementStatus = "draft"
	ElementStatusStaged   ElementStatus = "staged"
	ElementStatusApproved ElementStatus = "approved"
)

func IsValidElementStatus(status ElementStatus) bool {
	switch status {
	case ElementStatusDraft, ElementStatusStaged, ElementStatusApproved:
		return true
	}
	return false
}

// NextElementStatus returns the successor in the approval sequence, or
// false when the status is terminal.
func NextElementStatus(status ElementStatus) (ElementStatus, bool) {
	switch status {
	case ElementStatusDraft:
		return ElementStatusStaged, true
	case ElementStatusStaged:
		return ElementStatusApproved, true
	}
	return status, false
}

// ElementStateMachine validates element status promotions.
type ElementStateMachine struct {
	allowedTransitions map[ElementTransition]bool
}

type ElementTransition struct {
	From ElementStatus
	To   ElementStatus
}

func NewElementStateMachine() *ElementStateMachine {
	sm := &ElementStateMachine{
		allowedTransitions: make(map[ElementTransition]bool),
	}

	transitions := []ElementTransition{
		{ElementStatusDraft, ElementStatusStaged},
		{ElementStatusStaged, ElementStatusApproved},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

func (sm *ElementStateMachine) CanTransition(from, to ElementStatus) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[ElementTransition{From: from, To: to}]
}

func (sm *ElementStateMachine) ValidateTransition(from, to ElementStatus) error {
	if !IsValidElementStatus(to) {
		return apperr.InvalidArgument("unknown element status: %s", to)
	}
	if !sm.CanTransition(from, to) {
		return apperr.PreconditionFailed("illegal element status transition: %s -> %s", from, to)
	}
	return nil
}
