package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingCollectionName = "trainings"

// mongoTrainingRepository implements repository.TrainingRepository using MongoDB.
type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new instance of mongoTrainingRepository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// Create inserts a new training record. Trainings are append-only.
func (r *mongoTrainingRepository) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	if training.TraineeID == primitive.NilObjectID || training.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training trainee and trainer are required")
	}
	if training.TrainingTypeID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training type is required")
	}

	training.ID = primitive.NewObjectID()
	training.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, training)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// buildTrainingQuery translates a TrainingFilter into a Mongo query
// document. All criteria are ANDed; nil fields are skipped, date bounds
// are inclusive on both ends.
func buildTrainingQuery(filter repository.TrainingFilter) bson.M {
	query := bson.M{}
	if filter.TraineeID != nil {
		query["traineeId"] = *filter.TraineeID
	}
	if filter.TrainerID != nil {
		query["trainerId"] = *filter.TrainerID
	}
	if filter.TrainingTypeID != nil {
		query["trainingTypeId"] = *filter.TrainingTypeID
	}
	if filter.From != nil || filter.To != nil {
		dateRange := bson.M{}
		if filter.From != nil {
			dateRange["$gte"] = *filter.From
		}
		if filter.To != nil {
			dateRange["$lte"] = *filter.To
		}
		query["date"] = dateRange
	}
	return query
}

// Find returns trainings matching the filter. An empty result is an
// empty slice, never an error.
func (r *mongoTrainingRepository) Find(ctx context.Context, filter repository.TrainingFilter) ([]domain.Training, error) {
	cursor, err := r.collection.Find(ctx, buildTrainingQuery(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trainings := []domain.Training{}
	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

// DeleteByTraineeID removes all trainings owned by the trainee.
func (r *mongoTrainingRepository) DeleteByTraineeID(ctx context.Context, traineeID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"traineeId": traineeID})
	return err
}

// DeleteByTrainerID removes all trainings owned by the trainer.
func (r *mongoTrainingRepository) DeleteByTrainerID(ctx context.Context, trainerID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"trainerId": trainerID})
	return err
}

// EnsureTrainingIndexes creates necessary indexes for the trainings collection.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "traineeId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
