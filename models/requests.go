package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request payloads. Optional fields on update requests are pointers so that
// "not sent" and "sent as zero value" can be told apart.

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type CreateProjectRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	AssignedUsers []primitive.ObjectID `json:"assignedUsers"`
}

type UpdateProjectRequest struct {
	Name          *string              `json:"name"`
	Description   *string              `json:"description"`
	AssignedUsers []primitive.ObjectID `json:"assignedUsers"`
}

type CreateTaskRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	AssignedUser primitive.ObjectID `json:"assignedUser"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	Status       TaskStatus         `json:"status"`
}

type UpdateTaskRequest struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	AssignedUser *primitive.ObjectID `json:"assignedUser"`
	StartDate    *time.Time          `json:"startDate"`
	EndDate      *time.Time          `json:"endDate"`
	Status       *TaskStatus         `json:"status"`
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
