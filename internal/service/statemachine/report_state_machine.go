package statemachine

import (
	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/internal/apperr"
)

// ReportStatus covers the report lifecycle.
type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "open"      // editable by its author
	ReportStatusPublished ReportStatus = "published" // terminal, never reverts
)

func IsValidReportStatus(status ReportStatus) bool {
	return status == ReportStatusOpen || status == ReportStatusPublished
}

// ReportStateMachine validates report status transitions. Publishing is
// forward-only: once published a report cannot reopen.
type ReportStateMachine struct {
	allowedTransitions map[ReportTransition]bool
}

type ReportTransition struct {
	From ReportStatus
	To   ReportStatus
}

func NewReportStateMachine() *ReportStateMachine {
	sm := &ReportStateMachine{
		allowedTransitions: make(map[ReportTransition]bool),
	}

	transitions := []ReportTransition{
		{ReportStatusOpen, ReportStatusPublished},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition reports whether from -> to is a legal change. A no-op
// transition (from == to) is always allowed.
func (sm *ReportStateMachine) CanTransition(from, to ReportStatus) bool {
	if from == to {
		return true
	}
	return sm.allowedTransitions[ReportTransition{From: from, To: to}]
}

func (sm *ReportStateMachine) ValidateTransition(from, to ReportStatus) error {
	if !IsValidReportStatus(to) {
		return apperr.InvalidArgument("unknown report status: %s", to)
	}
	if !sm.CanTransition(from, to) {
		if from == ReportStatusPublished {
			return apperr.PreconditionFailed("published reports cannot be reopened")
		}
		return apperr.PreconditionFailed("illegal report state transition: %s -> %s", from, to)
	}
	return nil
}

// Transition validates from -> to and logs the outcome.
func (sm *ReportStateMachine) Transition(from, to ReportStatus, reportID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("report transition rejected: reportID=%d, %s -> %s, error=%v",
			reportID, from, to, err)
		return err
	}

	klog.V(6).Infof("report transition ok: reportID=%d, %s -> %s", reportID, from, to)
	return nil
}
