package repository

import (
	"context"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TraineeRepository defines the interface for interacting with trainee data.
type TraineeRepository interface {
	Create(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Trainee, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainee, error)
	Update(ctx context.Context, trainee *domain.Trainee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ListUsernames returns every trainee username; unioned with the
	// trainer usernames for cross-kind uniqueness checks.
	ListUsernames(ctx context.Context) ([]string, error)
	// AddTrainersToRoster adds the given trainers to the trainee's roster
	// with $addToSet semantics, so duplicates are never introduced and a
	// concurrently added edge is never lost.
	AddTrainersToRoster(ctx context.Context, traineeID primitive.ObjectID, trainerIDs []primitive.ObjectID) error
	// RemoveTrainerFromRosters pulls the trainer from every roster it
	// appears on. Used when a trainer is deleted.
	RemoveTrainerFromRosters(ctx context.Context, trainerID primitive.ObjectID) error
	// GetByTrainerID returns trainees whose roster contains the trainer.
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Trainee, error)
}

// TrainerRepository defines the interface for interacting with trainer data.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Trainer, error)
	// GetByUsernames is the batch lookup behind the roster merge call.
	// Unknown usernames are silently absent from the result.
	GetByUsernames(ctx context.Context, usernames []string) ([]domain.Trainer, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error)
	// ListActiveExcluding returns active trainers whose ID is not in the
	// given set. An empty set means all active trainers.
	ListActiveExcluding(ctx context.Context, excludeIDs []primitive.ObjectID) ([]domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListUsernames(ctx context.Context) ([]string, error)
}

// TrainingFilter carries the optional criteria for training queries.
// Nil fields mean "no constraint"; date bounds are inclusive.
type TrainingFilter struct {
	TraineeID      *primitive.ObjectID
	TrainerID      *primitive.ObjectID
	TrainingTypeID *primitive.ObjectID
	From           *time.Time
	To             *time.Time
}

// TrainingRepository defines the interface for interacting with training data.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	Find(ctx context.Context, filter TrainingFilter) ([]domain.Training, error)
	DeleteByTraineeID(ctx context.Context, traineeID primitive.ObjectID) error
	DeleteByTrainerID(ctx context.Context, trainerID primitive.ObjectID) error
}

// TrainingTypeRepository defines the interface for the training-type catalogue.
type TrainingTypeRepository interface {
	Create(ctx context.Context, trainingType *domain.TrainingType) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingType, error)
	GetByName(ctx context.Context, name string) (*domain.TrainingType, error)
	List(ctx context.Context) ([]domain.TrainingType, error)
}
