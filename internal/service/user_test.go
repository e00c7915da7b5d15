package service

import (
	"testing"

	"github.com/reportdesk/backend/internal/apperr"
)

func TestUserServiceCreate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Create("amara", "editor", "reviews finance reports")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if user.Role != "editor" {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	if _, err := env.users.Create("", "writer", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if _, err := env.users.Create("kim", "owner", ""); !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument for unknown role, got %v", err)
	}

	if _, err := env.users.Get(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
