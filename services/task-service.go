package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/logging"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/policy"
	"github.com/jitendra-jitu/Project-Mang-system/validation"
)

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
}

func NewTaskService(tasks, projects, users *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasks,
		ProjectsCollection: projects,
		UsersCollection:    users,
	}
}

// ListTasks returns every task for admins; everyone else sees tasks they
// are assigned to or created.
func (s *TaskService) ListTasks(ctx context.Context, p models.Principal) ([]models.PopulatedTask, error) {
	filter := bson.M{}
	if !p.IsAdmin() {
		filter = bson.M{"$or": []bson.M{
			{"assignedUser": p.ID},
			{"createdBy": p.ID},
		}}
	}

	cursor, err := s.TasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing tasks: %w", err), "failed to retrieve tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding tasks: %w", err), "failed to retrieve tasks")
	}

	return populateTasks(ctx, s.UsersCollection, s.ProjectsCollection, tasks)
}

// GetTask loads a single task for the admin, the assignee or the creator.
func (s *TaskService) GetTask(ctx context.Context, p models.Principal, taskID primitive.ObjectID) (*models.PopulatedTask, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewTask(p, task); err != nil {
		return nil, err
	}

	populated, err := populateTasks(ctx, s.UsersCollection, s.ProjectsCollection, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// CreateTask inserts a task under the given project. The assignee must be a
// member of the project and the date range must be chronological.
func (s *TaskService) CreateTask(ctx context.Context, p models.Principal, projectID primitive.ObjectID, req models.CreateTaskRequest) (*models.Task, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreateTaskOnProject(p, project); err != nil {
		return nil, err
	}
	if err := validation.NameAndDescription(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := validation.TaskAssignment(project, req.AssignedUser); err != nil {
		return nil, err
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperrors.Validationf("start date and end date are required")
	}
	if err := validation.DateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if err := validation.Status(status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Description:  req.Description,
		ProjectID:    projectID,
		AssignedUser: req.AssignedUser,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       status,
		CreatedBy:    p.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("inserting task: %w", err), "failed to create task")
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created on project %s by %s", task.ID.Hex(), projectID.Hex(), p.ID.Hex())
	return task, nil
}

// UpdateTask applies the provided fields for the admin or the creator. A
// changed assignee is re-checked against the parent project, and a changed
// date is re-checked against the stored value of the other one.
func (s *TaskService) UpdateTask(ctx context.Context, p models.Principal, taskID primitive.ObjectID, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateTask(p, task); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		if err := validation.Name(*req.Name); err != nil {
			return nil, err
		}
		set["name"] = *req.Name
	}
	if req.Description != nil {
		if err := validation.Description(*req.Description); err != nil {
			return nil, err
		}
		set["description"] = *req.Description
	}
	if req.AssignedUser != nil {
		project, err := s.findProject(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := validation.TaskAssignment(project, *req.AssignedUser); err != nil {
			return nil, err
		}
		set["assignedUser"] = *req.AssignedUser
	}
	if req.StartDate != nil || req.EndDate != nil {
		startDate := task.StartDate
		endDate := task.EndDate
		if req.StartDate != nil {
			startDate = *req.StartDate
			set["startDate"] = startDate
		}
		if req.EndDate != nil {
			endDate = *req.EndDate
			set["endDate"] = endDate
		}
		if err := validation.DateRange(startDate, endDate); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := validation.Status(*req.Status); err != nil {
			return nil, err
		}
		set["status"] = *req.Status
	}

	var updated models.Task
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.TasksCollection.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("task not found with id of %s", taskID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("updating task: %w", err), "failed to update task")
	}
	return &updated, nil
}

// DeleteTask removes a single task for the admin or the creator.
func (s *TaskService) DeleteTask(ctx context.Context, p models.Principal, taskID primitive.ObjectID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteTask(p, task); err != nil {
		return err
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return apperrors.Internal(fmt.Errorf("deleting task: %w", err), "failed to delete task")
	}
	return nil
}

// UpdateTaskStatus changes only the status, for the admin or the assignee.
// Any value from the known set is accepted regardless of the current one.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, p models.Principal, taskID primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateTaskStatus(p, task); err != nil {
		return nil, err
	}
	if err := validation.Status(status); err != nil {
		return nil, err
	}

	var updated models.Task
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	err = s.TasksCollection.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("task not found with id of %s", taskID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("updating task status: %w", err), "failed to update task status")
	}

	logging.Logger.Infof("Event ID: TASK_STATUS_CHANGED, Description: Task %s status set to %s by %s", taskID.Hex(), status, p.ID.Hex())
	return &updated, nil
}

// TasksForUser lists the tasks assigned to a given user, for admins or the
// user themselves.
func (s *TaskService) TasksForUser(ctx context.Context, p models.Principal, userID primitive.ObjectID) ([]models.PopulatedTask, error) {
	if err := policy.CanViewUserTasks(p, userID); err != nil {
		return nil, err
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"assignedUser": userID})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing user tasks: %w", err), "failed to retrieve tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding user tasks: %w", err), "failed to retrieve tasks")
	}

	return populateTasks(ctx, s.UsersCollection, s.ProjectsCollection, tasks)
}

func (s *TaskService) findTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("task not found with id of %s", taskID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("fetching task: %w", err), "failed to retrieve task")
	}
	return &task, nil
}

func (s *TaskService) findProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("project not found with id of %s", projectID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("fetching project: %w", err), "failed to retrieve project")
	}
	return &project, nil
}
