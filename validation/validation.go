// Package validation enforces the payload and referential invariants shared
// by the project and task services: assigned users must exist, a task's
// assignee must belong to its project, date ranges must be chronological and
// status values must come from the known set.
package validation

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
)

// Checker resolves referential checks against the users collection. The
// collection handle is injected so tests can point it at a scratch database.
type Checker struct {
	Users *mongo.Collection
}

func NewChecker(users *mongo.Collection) *Checker {
	return &Checker{Users: users}
}

// AssignedUsers deduplicates ids and verifies that every one of them
// resolves to an existing user. Returns the deduplicated set; the order of
// first appearance is kept.
func (c *Checker) AssignedUsers(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	deduped := DedupeIDs(ids)
	if len(deduped) == 0 {
		return nil, apperrors.Validationf("at least one assigned user is required")
	}

	count, err := c.Users.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": deduped}})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("counting assigned users: %w", err), "failed to verify assigned users")
	}
	if int(count) != len(deduped) {
		return nil, apperrors.Validationf("one or more users not found")
	}
	return deduped, nil
}

// DedupeIDs removes duplicate ids, keeping first occurrences in order.
func DedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	deduped := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}

// TaskAssignment checks that the assignee is part of the project's
// assigned-user set. Re-run whenever the assignee changes.
func TaskAssignment(project *models.Project, assignedUser primitive.ObjectID) error {
	if project.HasMember(assignedUser) {
		return nil
	}
	return apperrors.Validationf("assigned user is not part of this project")
}

// DateRange rejects inverted ranges. Equal start and end dates are allowed.
func DateRange(start, end time.Time) error {
	if start.After(end) {
		return apperrors.Validationf("end date must be after start date")
	}
	return nil
}

// Status accepts only the known status values. Transitions between them are
// unrestricted.
func Status(s models.TaskStatus) error {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return nil
	}
	return apperrors.Validationf("invalid status value")
}

// Name applies the shared length limit on project and task names.
func Name(name string) error {
	if name == "" {
		return apperrors.Validationf("name is required")
	}
	if len(name) > models.MaxNameLength {
		return apperrors.Validationf("name cannot be more than %d characters", models.MaxNameLength)
	}
	return nil
}

// Description applies the shared length limit on descriptions.
func Description(description string) error {
	if description == "" {
		return apperrors.Validationf("description is required")
	}
	if len(description) > models.MaxDescriptionLength {
		return apperrors.Validationf("description cannot be more than %d characters", models.MaxDescriptionLength)
	}
	return nil
}

// NameAndDescription checks both required payload fields on create.
func NameAndDescription(name, description string) error {
	if err := Name(name); err != nil {
		return err
	}
	return Description(description)
}

// Role accepts only the two known roles.
func Role(role string) error {
	if role == models.RoleAdmin || role == models.RoleUser {
		return nil
	}
	return apperrors.Validationf("invalid role value")
}
