package service

import (
	"context"
	"errors"
	"testing"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func notFoundTrainee(ctx context.Context, username string) (*domain.Trainee, error) {
	return nil, repository.ErrNotFound
}

func notFoundTrainer(ctx context.Context, username string) (*domain.Trainer, error) {
	return nil, repository.ErrNotFound
}

func TestAuthenticate_TraineeSuccess(t *testing.T) {
	id := primitive.NewObjectID()
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			require.Equal(t, "john.doe", username)
			return &domain.Trainee{User: domain.User{ID: id, Username: "john.doe", Password: "secret1234"}}, nil
		},
	}
	// Trainer repo must never be consulted when the trainee matched.
	svc := NewAuthService(traineeRepo, &mockTrainerRepo{}, testLogger())

	identity, err := svc.Authenticate(context.Background(), "john.doe", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
	assert.Equal(t, domain.KindTrainee, identity.Kind)
}

func TestAuthenticate_FallsThroughToTrainer(t *testing.T) {
	id := primitive.NewObjectID()
	traineeRepo := &mockTraineeRepo{GetByUsernameFunc: notFoundTrainee}
	trainerRepo := &mockTrainerRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainer, error) {
			return &domain.Trainer{User: domain.User{ID: id, Username: "amy.lee", Password: "secret1234"}}, nil
		},
	}
	svc := NewAuthService(traineeRepo, trainerRepo, testLogger())

	identity, err := svc.Authenticate(context.Background(), "amy.lee", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, domain.KindTrainer, identity.Kind)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{Username: "john.doe", Password: "secret1234"}}, nil
		},
	}
	svc := NewAuthService(traineeRepo, &mockTrainerRepo{}, testLogger())

	_, err := svc.Authenticate(context.Background(), "john.doe", "wrongwrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate_EmptyStoredPassword(t *testing.T) {
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{Username: "john.doe"}}, nil
		},
	}
	svc := NewAuthService(traineeRepo, &mockTrainerRepo{}, testLogger())

	// An empty supplied password must not match an empty stored one.
	_, err := svc.Authenticate(context.Background(), "john.doe", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate_UnknownUsername(t *testing.T) {
	svc := NewAuthService(
		&mockTraineeRepo{GetByUsernameFunc: notFoundTrainee},
		&mockTrainerRepo{GetByUsernameFunc: notFoundTrainer},
		testLogger(),
	)

	_, err := svc.Authenticate(context.Background(), "ghost", "secret1234")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	// Unknown user and wrong password must be indistinguishable to the
	// caller.
	withUser := NewAuthService(&mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{Username: "john.doe", Password: "secret1234"}}, nil
		},
	}, &mockTrainerRepo{}, testLogger())
	withoutUser := NewAuthService(
		&mockTraineeRepo{GetByUsernameFunc: notFoundTrainee},
		&mockTrainerRepo{GetByUsernameFunc: notFoundTrainer},
		testLogger(),
	)

	_, errWrongPassword := withUser.Authenticate(context.Background(), "john.doe", "bad")
	_, errUnknownUser := withoutUser.Authenticate(context.Background(), "ghost", "bad")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownUser)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestAuthenticate_RepoErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection reset")
	svc := NewAuthService(&mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return nil, wantErr
		},
	}, &mockTrainerRepo{}, testLogger())

	_, err := svc.Authenticate(context.Background(), "john.doe", "secret1234")
	assert.ErrorIs(t, err, wantErr)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateToken(t *testing.T) {
	traineeRepo := &mockTraineeRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.Trainee, error) {
			return &domain.Trainee{User: domain.User{Username: "john.doe", Password: "secret1234"}}, nil
		},
	}
	svc := NewAuthService(traineeRepo, &mockTrainerRepo{}, testLogger())

	identity, err := svc.AuthenticateToken(context.Background(), basicToken("john.doe", "secret1234"))
	require.NoError(t, err)
	assert.Equal(t, "john.doe", identity.Username)

	_, err = svc.AuthenticateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
