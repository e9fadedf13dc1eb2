package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
)

// Read-side joins. Responses embed referenced users and projects as summary
// objects; the references are fetched in one $in query per collection after
// the policy checks pass. A reference that no longer resolves is rendered as
// null (or dropped from an embedded list) instead of failing the read, since
// deleting a user leaves dangling ids behind.

func fetchUserSummaries(ctx context.Context, users *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("fetching referenced users: %w", err), "failed to load referenced users")
	}
	defer cursor.Close(ctx)

	var found []models.User
	if err := cursor.All(ctx, &found); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding referenced users: %w", err), "failed to load referenced users")
	}

	for _, u := range found {
		summaries[u.ID] = models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	return summaries, nil
}

func fetchProjectSummaries(ctx context.Context, projects *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProjectSummary, error) {
	summaries := make(map[primitive.ObjectID]models.ProjectSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := projects.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("fetching referenced projects: %w", err), "failed to load referenced projects")
	}
	defer cursor.Close(ctx)

	var found []models.Project
	if err := cursor.All(ctx, &found); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding referenced projects: %w", err), "failed to load referenced projects")
	}

	for _, p := range found {
		summaries[p.ID] = models.ProjectSummary{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	return summaries, nil
}

func populateProjects(ctx context.Context, users *mongo.Collection, projects []models.Project) ([]models.PopulatedProject, error) {
	var userIDs []primitive.ObjectID
	for _, p := range projects {
		userIDs = append(userIDs, p.AssignedUsers...)
		userIDs = append(userIDs, p.CreatedBy)
	}

	summaries, err := fetchUserSummaries(ctx, users, userIDs)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedProject, 0, len(projects))
	for _, p := range projects {
		populated = append(populated, assembleProject(p, summaries))
	}
	return populated, nil
}

func assembleProject(p models.Project, users map[primitive.ObjectID]models.UserSummary) models.PopulatedProject {
	assigned := make([]models.UserSummary, 0, len(p.AssignedUsers))
	for _, id := range p.AssignedUsers {
		if summary, ok := users[id]; ok {
			assigned = append(assigned, summary)
		}
	}

	out := models.PopulatedProject{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		AssignedUsers: assigned,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if creator, ok := users[p.CreatedBy]; ok {
		creator.Role = ""
		out.CreatedBy = &creator
	}
	return out
}

func populateTasks(ctx context.Context, users, projects *mongo.Collection, tasks []models.Task) ([]models.PopulatedTask, error) {
	var userIDs, projectIDs []primitive.ObjectID
	for _, t := range tasks {
		userIDs = append(userIDs, t.AssignedUser, t.CreatedBy)
		projectIDs = append(projectIDs, t.ProjectID)
	}

	userSummaries, err := fetchUserSummaries(ctx, users, userIDs)
	if err != nil {
		return nil, err
	}
	projectSummaries, err := fetchProjectSummaries(ctx, projects, projectIDs)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedTask, 0, len(tasks))
	for _, t := range tasks {
		out := models.PopulatedTask{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if summary, ok := projectSummaries[t.ProjectID]; ok {
			out.Project = &summary
		}
		if summary, ok := userSummaries[t.AssignedUser]; ok {
			summary.Role = ""
			out.AssignedUser = &summary
		}
		if summary, ok := userSummaries[t.CreatedBy]; ok {
			summary.Role = ""
			out.CreatedBy = &summary
		}
		populated = append(populated, out)
	}
	return populated, nil
}
