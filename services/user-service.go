package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/logging"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/policy"
	"github.com/jitendra-jitu/Project-Mang-system/validation"
)

type UserService struct {
	UsersCollection *mongo.Collection
}

func NewUserService(users *mongo.Collection) *UserService {
	return &UserService{UsersCollection: users}
}

// ListUsers returns all users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, p models.Principal) ([]models.User, error) {
	if err := policy.CanManageUsers(p); err != nil {
		return nil, err
	}

	cursor, err := s.UsersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("listing users: %w", err), "failed to retrieve users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decoding users: %w", err), "failed to retrieve users")
	}
	return users, nil
}

// GetUser loads a single user. Admin only; the existence check still runs
// first so a missing id reads as not-found rather than a denial.
func (s *UserService) GetUser(ctx context.Context, p models.Principal, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanManageUsers(p); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user with a hashed password. Email must not be
// taken; the unique index backs this up against racing creates.
func (s *UserService) CreateUser(ctx context.Context, p models.Principal, req models.CreateUserRequest) (*models.User, error) {
	if err := policy.CanManageUsers(p); err != nil {
		return nil, err
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validationf("name, email and password are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validation.Role(role); err != nil {
		return nil, err
	}

	count, err := s.UsersCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("checking email uniqueness: %w", err), "failed to create user")
	}
	if count > 0 {
		return nil, apperrors.Validationf("user with email %s already exists", req.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hashing password: %w", err), "failed to create user")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.UsersCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validationf("user with email %s already exists", req.Email)
		}
		return nil, apperrors.Internal(fmt.Errorf("inserting user: %w", err), "failed to create user")
	}

	logging.Logger.Infof("Event ID: USER_CREATED, Description: User %s created by %s", user.ID.Hex(), p.ID.Hex())
	return user, nil
}

// UpdateUser applies the provided fields. Admin only.
func (s *UserService) UpdateUser(ctx context.Context, p models.Principal, userID primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := policy.CanManageUsers(p); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Role != nil {
		if err := validation.Role(*req.Role); err != nil {
			return nil, err
		}
		set["role"] = *req.Role
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("hashing password: %w", err), "failed to update user")
		}
		set["password"] = string(hashed)
	}

	var updated models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.UsersCollection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("user not found with id of %s", userID.Hex())
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validationf("a user with that email already exists")
		}
		return nil, apperrors.Internal(fmt.Errorf("updating user: %w", err), "failed to update user")
	}
	return &updated, nil
}

// DeleteUser removes the user document. References to the user from
// projects and tasks are left in place; reads tolerate the dangling ids.
func (s *UserService) DeleteUser(ctx context.Context, p models.Principal, userID primitive.ObjectID) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}
	if err := policy.CanManageUsers(p); err != nil {
		return err
	}

	if _, err := s.UsersCollection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return apperrors.Internal(fmt.Errorf("deleting user: %w", err), "failed to delete user")
	}

	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted by %s", userID.Hex(), p.ID.Hex())
	return nil
}

// Authenticate verifies email and password and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Unauthorizedf("invalid credentials")
		}
		return nil, apperrors.Internal(fmt.Errorf("fetching user by email: %w", err), "failed to authenticate")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorizedf("invalid credentials")
	}
	return &user, nil
}

func (s *UserService) findUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("user not found with id of %s", userID.Hex())
		}
		return nil, apperrors.Internal(fmt.Errorf("fetching user: %w", err), "failed to retrieve user")
	}
	return &user, nil
}
