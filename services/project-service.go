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

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
	UsersCollection    *mongo.Collection
	Checker            *validation.Checker
}

// NewProjectService initializes a new ProjectService with the necessary
// MongoDB collections.
func NewProjectService(projects, tasks, users *mongo.Collection, checker *validation.Checker) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projects,
		TasksCollection:    tasks,
		UsersCollection:    users,
		Checker:            checker,
	}
}

// ListProjects returns every project for admins and only the projects the
// principal is assigned to for everyone else.
func (s *ProjectService) ListProjects(ctx context.Context, p models.Principal) ([]models.PopulatedProject, error) {
	filter := bson.M{}
	if !p.IsAdmin() {
		filter = bson.M{"assignedUsers": p.ID}
	}

	cursor, err := s.ProjectsCollection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing projects: %w", err), "failed to retrieve projects")
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding projects: %w", err), "failed to retrieve projects")
	}

	return populateProjects(ctx, s.UsersCollection, projects)
}

// GetProject loads a single project, enforcing membership for non-admins.
func (s *ProjectService) GetProject(ctx context.Context, p models.Principal, projectID primitive.ObjectID) (*models.PopulatedProject, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewProject(p, project); err != nil {
		return nil, err
	}

	populated, err := populateProjects(ctx, s.UsersCollection, []models.Project{*project})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// CreateProject inserts a new project after verifying the payload and the
// assigned-user references. Duplicate ids in the input are deduplicated
// before the existence check runs.
func (s *ProjectService) CreateProject(ctx context.Context, p models.Principal, req models.CreateProjectRequest) (*models.Project, error) {
	if err := policy.CanMutateProject(p); err != nil {
		return nil, err
	}
	if err := validation.NameAndDescription(req.Name, req.Description); err != nil {
		return nil, err
	}

	assignedUsers, err := s.Checker.AssignedUsers(ctx, req.AssignedUsers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		Description:   req.Description,
		AssignedUsers: assignedUsers,
		CreatedBy:     p.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("inserting project: %w", err), "failed to create project")
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by %s", project.ID.Hex(), p.ID.Hex())
	return project, nil
}

// UpdateProject applies the provided fields. A replacement assignedUsers
// list goes through the same dedupe-and-resolve check as on create.
func (s *ProjectService) UpdateProject(ctx context.Context, p models.Principal, projectID primitive.ObjectID, req models.UpdateProjectRequest) (*models.Project, error) {
	if _, err := s.findProject(ctx, projectID); err != nil {
		return nil, err
	}
	if err := policy.CanMutateProject(p); err != nil {
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
	if req.AssignedUsers != nil {
		assignedUsers, err := s.Checker.AssignedUsers(ctx, req.AssignedUsers)
		if err != nil {
			return nil, err
		}
		set["assignedUsers"] = assignedUsers
	}

	var updated models.Project
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.ProjectsCollection.FindOneAndUpdate(ctx, bson.M{"_id": projectID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("project not found with id of %s", projectID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("updating project: %w", err), "failed to update project")
	}
	return &updated, nil
}

// DeleteProject removes the project and every task that references it. The
// two deletes are separate operations with no transaction between them; a
// concurrent reader can observe tasks whose project is already gone.
func (s *ProjectService) DeleteProject(ctx context.Context, p models.Principal, projectID primitive.ObjectID) error {
	if _, err := s.findProject(ctx, projectID); err != nil {
		return err
	}
	if err := policy.CanMutateProject(p); err != nil {
		return err
	}

	result, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": projectID})
	if err != nil {
		return apperrors.Internal(fmt.Errorf("deleting project tasks: %w", err), "failed to delete project tasks")
	}
	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return apperrors.Internal(fmt.Errorf("deleting project: %w", err), "failed to delete project")
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted by %s along with %d tasks", projectID.Hex(), p.ID.Hex(), result.DeletedCount)
	return nil
}

// ProjectTasks lists the tasks under a project for admins and members.
func (s *ProjectService) ProjectTasks(ctx context.Context, p models.Principal, projectID primitive.ObjectID) ([]models.PopulatedTask, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewProjectTasks(p, project); err != nil {
		return nil, err
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing project tasks: %w", err), "failed to retrieve tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding project tasks: %w", err), "failed to retrieve tasks")
	}

	return populateTasks(ctx, s.UsersCollection, s.ProjectsCollection, tasks)
}

// ProjectsForUser lists the projects a given user is assigned to. Admin
// only; reached through the users resource.
func (s *ProjectService) ProjectsForUser(ctx context.Context, p models.Principal, userID primitive.ObjectID) ([]models.PopulatedProject, error) {
	if err := policy.CanManageUsers(p); err != nil {
		return nil, err
	}

	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"assignedUsers": userID})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing user projects: %w", err), "failed to retrieve projects")
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding user projects: %w", err), "failed to retrieve projects")
	}

	return populateProjects(ctx, s.UsersCollection, projects)
}

func (s *ProjectService) findProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
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
