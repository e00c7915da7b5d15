// Package policy maps (role, action, context) to allowed/denied. It is
// pure: no I/O, no clock, no hidden state. The request layer consults
// it before calling the services; the services trust their callers.
package policy

import (
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/service/statemachine"
)

type Role string
type Action string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleWriter Role = "writer"
	RoleReader Role = "reader"
)

const (
	ActionRead    Action = "read"
	ActionWrite   Action = "write"
	ActionApprove Action = "approve"
	ActionPublish Action = "publish"
	ActionDelete  Action = "delete"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleWriter, RoleReader:
		return true
	}
	return false
}

// Normalize falls back to the least privileged role for anything
// unrecognized.
func Normalize(role string) Role {
	if IsValidRole(Role(role)) {
		return Role(role)
	}
	return RoleReader
}

// Can answers the context-free part of the policy. Writing additionally
// depends on ownership and report state, see CanEditReport.
func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleEditor:
		return action == ActionRead || action == ActionWrite || action == ActionApprove
	case RoleWriter:
		return action == ActionRead || action == ActionWrite
	case RoleReader:
		return action == ActionRead
	default:
		return false
	}
}

// CanEditReport allows admins always, and the report's author as long
// as the report has not been published.
func CanEditReport(role Role, userID uint, report *model.Report) bool {
	if role == RoleAdmin {
		return true
	}
	if report == nil {
		return false
	}
	return report.AuthorID == userID &&
		report.Status != string(statemachine.ReportStatusPublished)
}

// CanApproveReport allows editors and admins.
func CanApproveReport(role Role) bool {
	return role == RoleAdmin || role == RoleEditor
}

// CanPublishReport allows admins only.
func CanPublishReport(role Role) bool {
	return role == RoleAdmin
}

// CanDeleteReport allows admins only.
func CanDeleteReport(role Role) bool {
	return role == RoleAdmin
}
