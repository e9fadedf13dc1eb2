package policy_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/policy"
)

var (
	adminID    = primitive.NewObjectID()
	memberID   = primitive.NewObjectID()
	creatorID  = primitive.NewObjectID()
	strangerID = primitive.NewObjectID()

	admin    = models.Principal{ID: adminID, Role: models.RoleAdmin}
	member   = models.Principal{ID: memberID, Role: models.RoleUser}
	creator  = models.Principal{ID: creatorID, Role: models.RoleUser}
	stranger = models.Principal{ID: strangerID, Role: models.RoleUser}
)

func testProject() *models.Project {
	return &models.Project{
		ID:            primitive.NewObjectID(),
		Name:          "Alpha",
		AssignedUsers: []primitive.ObjectID{memberID},
		CreatedBy:     adminID,
	}
}

func testTask() *models.Task {
	return &models.Task{
		ID:           primitive.NewObjectID(),
		AssignedUser: memberID,
		CreatedBy:    creatorID,
	}
}

func assertAllowed(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

func assertDenied(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected deny, got allow")
	}
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized kind, got %v (%v)", apperrors.KindOf(err), err)
	}
}

func TestCanViewProject(t *testing.T) {
	project := testProject()
	assertAllowed(t, policy.CanViewProject(admin, project))
	assertAllowed(t, policy.CanViewProject(member, project))
	assertDenied(t, policy.CanViewProject(stranger, project))
}

func TestCanMutateProject(t *testing.T) {
	assertAllowed(t, policy.CanMutateProject(admin))
	assertDenied(t, policy.CanMutateProject(member))
	assertDenied(t, policy.CanMutateProject(stranger))
}

func TestCanViewProjectTasks(t *testing.T) {
	project := testProject()
	assertAllowed(t, policy.CanViewProjectTasks(admin, project))
	assertAllowed(t, policy.CanViewProjectTasks(member, project))
	assertDenied(t, policy.CanViewProjectTasks(stranger, project))
}

func TestCanCreateTaskOnProject(t *testing.T) {
	project := testProject()
	assertAllowed(t, policy.CanCreateTaskOnProject(admin, project))
	assertAllowed(t, policy.CanCreateTaskOnProject(member, project))
	assertDenied(t, policy.CanCreateTaskOnProject(stranger, project))
}

func TestCanViewTask(t *testing.T) {
	task := testTask()
	assertAllowed(t, policy.CanViewTask(admin, task))
	assertAllowed(t, policy.CanViewTask(member, task))  // assignee
	assertAllowed(t, policy.CanViewTask(creator, task)) // creator
	assertDenied(t, policy.CanViewTask(stranger, task))
}

func TestCanUpdateAndDeleteTask(t *testing.T) {
	task := testTask()
	assertAllowed(t, policy.CanUpdateTask(admin, task))
	assertAllowed(t, policy.CanUpdateTask(creator, task))
	assertDenied(t, policy.CanUpdateTask(member, task)) // assignee alone is not enough
	assertDenied(t, policy.CanUpdateTask(stranger, task))

	assertAllowed(t, policy.CanDeleteTask(admin, task))
	assertAllowed(t, policy.CanDeleteTask(creator, task))
	assertDenied(t, policy.CanDeleteTask(member, task))
	assertDenied(t, policy.CanDeleteTask(stranger, task))
}

func TestCanUpdateTaskStatus(t *testing.T) {
	task := testTask()
	assertAllowed(t, policy.CanUpdateTaskStatus(admin, task))
	assertAllowed(t, policy.CanUpdateTaskStatus(member, task)) // assignee
	assertDenied(t, policy.CanUpdateTaskStatus(creator, task)) // creator alone is not enough
	assertDenied(t, policy.CanUpdateTaskStatus(stranger, task))
}

func TestCanViewUserTasks(t *testing.T) {
	assertAllowed(t, policy.CanViewUserTasks(admin, memberID))
	assertAllowed(t, policy.CanViewUserTasks(member, memberID)) // self
	assertDenied(t, policy.CanViewUserTasks(stranger, memberID))
}

func TestCanManageUsers(t *testing.T) {
	assertAllowed(t, policy.CanManageUsers(admin))
	assertDenied(t, policy.CanManageUsers(member))
}
