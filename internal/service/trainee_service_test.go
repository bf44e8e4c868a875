package service

import (
	"context"
	"testing"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func emptyUsernames(ctx context.Context) ([]string, error) { return nil, nil }

func traineeIdentity(username string) Identity {
	return Identity{ID: primitive.NewObjectID(), Username: username, Kind: domain.KindTrainee}
}

func TestTraineeCreate(t *testing.T) {
	var created *domain.Trainee
	traineeRepo := &mockTraineeRepo{
		ListUsernamesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"john.doe"}, nil
		},
		CreateFunc: func(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error) {
			created = trainee
			return primitive.NewObjectID(), nil
		},
	}
	trainerRepo := &mockTrainerRepo{ListUsernamesFunc: emptyUsernames}
	svc := NewTraineeService(traineeRepo, trainerRepo, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, &mockAuth{}, testLogger())

	creds, err := svc.Create(context.Background(), CreateTraineeRequest{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	assert.Equal(t, "john.doe1", creds.Username)
	assert.Len(t, creds.Password, PasswordLength)

	require.NotNil(t, created)
	assert.Equal(t, "john.doe1", created.Username)
	assert.Equal(t, creds.Password, created.Password)
	assert.True(t, created.IsActive, "new trainees start active")
}

func TestTraineeCreate_BlankName(t *testing.T) {
	traineeRepo := &mockTraineeRepo{ListUsernamesFunc: emptyUsernames}
	trainerRepo := &mockTrainerRepo{ListUsernamesFunc: emptyUsernames}
	svc := NewTraineeService(traineeRepo, trainerRepo, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, &mockAuth{}, testLogger())

	_, err := svc.Create(context.Background(), CreateTraineeRequest{FirstName: "", LastName: "Doe"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTraineeUpdateProfile_RenameRegeneratesUsername(t *testing.T) {
	trainee := &domain.Trainee{User: domain.User{
		ID: primitive.NewObjectID(), FirstName: "John", LastName: "Doe", Username: "john.doe",
	}}
	var updated *domain.Trainee
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return trainee, nil
		},
		ListUsernamesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"john.doe", "jane.smith"}, nil
		},
		UpdateFunc: func(ctx context.Context, tr *domain.Trainee) error {
			updated = tr
			return nil
		},
	}
	trainerRepo := &mockTrainerRepo{
		ListUsernamesFunc: emptyUsernames,
		GetByIDsFunc: func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
			return nil, nil
		},
	}
	typeRepo := &mockTrainingTypeRepo{
		ListFunc: func(ctx context.Context) ([]domain.TrainingType, error) { return nil, nil },
	}
	svc := NewTraineeService(traineeRepo, trainerRepo, &mockTrainingRepo{}, typeRepo, okAuth(traineeIdentity("john.doe")), testLogger())

	newLast := "Smith"
	profile, err := svc.UpdateProfile(context.Background(), basicToken("john.doe", "x"), UpdateTraineeRequest{LastName: &newLast})
	require.NoError(t, err)

	require.NotNil(t, updated)
	// jane.smith exists but does not collide with john.smith.
	assert.Equal(t, "john.smith", updated.Username)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "john.smith", profile.Username)
}

func TestTraineeUpdateProfile_SameNameKeepsUsername(t *testing.T) {
	trainee := &domain.Trainee{User: domain.User{
		ID: primitive.NewObjectID(), FirstName: "John", LastName: "Doe", Username: "john.doe",
	}}
	var updated *domain.Trainee
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return trainee, nil
		},
		UpdateFunc: func(ctx context.Context, tr *domain.Trainee) error {
			updated = tr
			return nil
		},
	}
	trainerRepo := &mockTrainerRepo{
		GetByIDsFunc: func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
			return nil, nil
		},
	}
	typeRepo := &mockTrainingTypeRepo{
		ListFunc: func(ctx context.Context) ([]domain.TrainingType, error) { return nil, nil },
	}
	svc := NewTraineeService(traineeRepo, trainerRepo, &mockTrainingRepo{}, typeRepo, okAuth(traineeIdentity("john.doe")), testLogger())

	address := "1 Main St"
	_, err := svc.UpdateProfile(context.Background(), basicToken("john.doe", "x"), UpdateTraineeRequest{Address: &address})
	require.NoError(t, err)

	// No rename, so no username regeneration and no ListUsernames calls.
	assert.Equal(t, "john.doe", updated.Username)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestTraineeChangePassword(t *testing.T) {
	trainee := &domain.Trainee{User: domain.User{Username: "john.doe", Password: "old-secret"}}
	var updated *domain.Trainee
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return trainee, nil
		},
		UpdateFunc: func(ctx context.Context, tr *domain.Trainee) error {
			updated = tr
			return nil
		},
	}
	svc := NewTraineeService(traineeRepo, &mockTrainerRepo{}, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, okAuth(traineeIdentity("john.doe")), testLogger())

	err := svc.ChangePassword(context.Background(), basicToken("john.doe", "old-secret"), "abcdef1234")
	require.NoError(t, err)
	assert.Equal(t, "abcdef1234", updated.Password)
}

func TestTraineeChangePassword_InvalidLength(t *testing.T) {
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{Username: "john.doe"}}, nil
		},
	}
	svc := NewTraineeService(traineeRepo, &mockTrainerRepo{}, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, okAuth(traineeIdentity("john.doe")), testLogger())

	err := svc.ChangePassword(context.Background(), basicToken("john.doe", "x"), "short")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestTraineeToggleStatus_Involution(t *testing.T) {
	trainee := &domain.Trainee{User: domain.User{Username: "john.doe", IsActive: true}}
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return trainee, nil
		},
		UpdateFunc: func(ctx context.Context, tr *domain.Trainee) error { return nil },
	}
	svc := NewTraineeService(traineeRepo, &mockTrainerRepo{}, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, okAuth(traineeIdentity("john.doe")), testLogger())

	token := basicToken("john.doe", "x")
	active, err := svc.ToggleStatus(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleStatus(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, active, "two toggles restore the original state")
}

func TestTraineeDelete_CascadesTrainings(t *testing.T) {
	id := primitive.NewObjectID()
	var calls []string
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{ID: id, Username: "john.doe"}}, nil
		},
		DeleteFunc: func(ctx context.Context, deleteID primitive.ObjectID) error {
			assert.Equal(t, id, deleteID)
			calls = append(calls, "trainee")
			return nil
		},
	}
	trainingRepo := &mockTrainingRepo{
		DeleteByTraineeIDFunc: func(ctx context.Context, traineeID primitive.ObjectID) error {
			assert.Equal(t, id, traineeID)
			calls = append(calls, "trainings")
			return nil
		},
	}
	svc := NewTraineeService(traineeRepo, &mockTrainerRepo{}, trainingRepo, &mockTrainingTypeRepo{}, okAuth(traineeIdentity("john.doe")), testLogger())

	err := svc.Delete(context.Background(), basicToken("john.doe", "x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"trainings", "trainee"}, calls)
}

func TestTraineeOps_RejectTrainerToken(t *testing.T) {
	auth := okAuth(Identity{ID: primitive.NewObjectID(), Username: "amy.lee", Kind: domain.KindTrainer})
	svc := NewTraineeService(&mockTraineeRepo{}, &mockTrainerRepo{}, &mockTrainingRepo{}, &mockTrainingTypeRepo{}, auth, testLogger())

	_, err := svc.GetProfile(context.Background(), basicToken("amy.lee", "x"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.Delete(context.Background(), basicToken("amy.lee", "x"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}
