package validation_test

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/validation"
)

func assertValidationError(t *testing.T, err error, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation kind, got %v (%v)", apperrors.KindOf(err), err)
	}
	if wantMessage != "" && err.Error() != wantMessage {
		t.Fatalf("expected message %q, got %q", wantMessage, err.Error())
	}
}

func TestDedupeIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	deduped := validation.DedupeIDs([]primitive.ObjectID{a, b, a, c, b})
	if len(deduped) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(deduped))
	}
	if deduped[0] != a || deduped[1] != b || deduped[2] != c {
		t.Fatal("expected first-occurrence order to be preserved")
	}

	if got := validation.DedupeIDs(nil); len(got) != 0 {
		t.Fatalf("expected empty result for nil input, got %d ids", len(got))
	}
}

func TestTaskAssignment(t *testing.T) {
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	project := &models.Project{AssignedUsers: []primitive.ObjectID{member}}

	if err := validation.TaskAssignment(project, member); err != nil {
		t.Fatalf("expected member to be assignable: %v", err)
	}
	assertValidationError(t, validation.TaskAssignment(project, outsider), "assigned user is not part of this project")
}

func TestDateRange(t *testing.T) {
	earlier := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	if err := validation.DateRange(earlier, later); err != nil {
		t.Fatalf("chronological range rejected: %v", err)
	}
	if err := validation.DateRange(earlier, earlier); err != nil {
		t.Fatalf("equal dates must be accepted: %v", err)
	}
	assertValidationError(t, validation.DateRange(later, earlier), "end date must be after start date")
}

func TestStatus(t *testing.T) {
	for _, s := range []models.TaskStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		if err := validation.Status(s); err != nil {
			t.Fatalf("status %q rejected: %v", s, err)
		}
	}
	for _, s := range []models.TaskStatus{"", "done", "in progress", "PENDING"} {
		assertValidationError(t, validation.Status(s), "invalid status value")
	}
}

func TestNameAndDescription(t *testing.T) {
	if err := validation.NameAndDescription("Alpha", "a project"); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	assertValidationError(t, validation.NameAndDescription("", "d"), "name is required")
	assertValidationError(t, validation.NameAndDescription("n", ""), "description is required")
	assertValidationError(t, validation.NameAndDescription(strings.Repeat("x", 101), "d"), "")
	assertValidationError(t, validation.NameAndDescription("n", strings.Repeat("x", 501)), "")

	if err := validation.NameAndDescription(strings.Repeat("x", 100), strings.Repeat("y", 500)); err != nil {
		t.Fatalf("payload at the limits rejected: %v", err)
	}
}

func TestRole(t *testing.T) {
	if err := validation.Role(models.RoleAdmin); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := validation.Role(models.RoleUser); err != nil {
		t.Fatalf("user rejected: %v", err)
	}
	assertValidationError(t, validation.Role("manager"), "invalid role value")
}
