package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type Task struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	ProjectID    primitive.ObjectID `bson:"project" json:"project"`
	AssignedUser primitive.ObjectID `bson:"assignedUser" json:"assignedUser"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Status       TaskStatus         `bson:"status" json:"status"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedTask is a task with its project and user references expanded.
// References that no longer resolve (a deleted user, for example) are
// rendered as null rather than failing the read.
type PopulatedTask struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Project      *ProjectSummary    `json:"project"`
	AssignedUser *UserSummary       `json:"assignedUser"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	Status       TaskStatus         `json:"status"`
	CreatedBy    *UserSummary       `json:"createdBy"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
