// Package policy holds the access decisions for every resource operation.
// The functions are pure: they look only at the principal and the already
// loaded resource, never at the database. Callers must resolve the resource
// first so that a missing id yields not-found before any denial.
package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
)

// CanViewProject allows admins and assigned members.
func CanViewProject(p models.Principal, project *models.Project) error {
	if p.IsAdmin() || project.HasMember(p.ID) {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to access this project")
}

// CanMutateProject covers project create, update and delete. Admin only.
func CanMutateProject(p models.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to modify projects")
}

func CanViewProjectTasks(p models.Principal, project *models.Project) error {
	if p.IsAdmin() || project.HasMember(p.ID) {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to access tasks for this project")
}

func CanCreateTaskOnProject(p models.Principal, project *models.Project) error {
	if p.IsAdmin() || project.HasMember(p.ID) {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to add tasks to this project")
}

// CanViewTask allows admins, the assignee and the creator.
func CanViewTask(p models.Principal, task *models.Task) error {
	if p.IsAdmin() || task.AssignedUser == p.ID || task.CreatedBy == p.ID {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to access this task")
}

// CanUpdateTask covers full task updates; status-only changes go through
// CanUpdateTaskStatus instead.
func CanUpdateTask(p models.Principal, task *models.Task) error {
	if p.IsAdmin() || task.CreatedBy == p.ID {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to update this task")
}

func CanDeleteTask(p models.Principal, task *models.Task) error {
	if p.IsAdmin() || task.CreatedBy == p.ID {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to delete this task")
}

// CanUpdateTaskStatus allows admins and the assignee only. The creator has
// no say over status unless they also hold one of those roles.
func CanUpdateTaskStatus(p models.Principal, task *models.Task) error {
	if p.IsAdmin() || task.AssignedUser == p.ID {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to update this task's status")
}

// CanViewUserTasks allows admins and the user themselves.
func CanViewUserTasks(p models.Principal, targetUserID primitive.ObjectID) error {
	if p.IsAdmin() || p.ID == targetUserID {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to access tasks for this user")
}

// CanManageUsers covers the whole user management surface, including
// listing a user's projects. Admin only.
func CanManageUsers(p models.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return apperrors.Unauthorizedf("not authorized to manage users")
}
