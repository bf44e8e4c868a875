package mongo

import (
	"context"
	"errors"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingTypeCollectionName = "training_types"

// mongoTrainingTypeRepository implements repository.TrainingTypeRepository using MongoDB.
type mongoTrainingTypeRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingTypeRepository creates a new instance of mongoTrainingTypeRepository.
func NewMongoTrainingTypeRepository(db *mongo.Database) repository.TrainingTypeRepository {
	return &mongoTrainingTypeRepository{
		collection: db.Collection(trainingTypeCollectionName),
	}
}

// Create inserts a new training type.
func (r *mongoTrainingTypeRepository) Create(ctx context.Context, trainingType *domain.TrainingType) (primitive.ObjectID, error) {
	if trainingType.Name == "" {
		return primitive.NilObjectID, errors.New("training type name is required")
	}

	trainingType.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, trainingType)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.New("training type with this name already exists")
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a training type by its ObjectID.
func (r *mongoTrainingTypeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingType, error) {
	var trainingType domain.TrainingType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trainingType)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainingType, nil
}

// GetByName retrieves a training type by its unique name.
func (r *mongoTrainingTypeRepository) GetByName(ctx context.Context, name string) (*domain.TrainingType, error) {
	var trainingType domain.TrainingType
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&trainingType)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainingType, nil
}

// List returns the full training-type catalogue.
func (r *mongoTrainingTypeRepository) List(ctx context.Context) ([]domain.TrainingType, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	types := []domain.TrainingType{}
	if err = cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// EnsureTrainingTypeIndexes creates necessary indexes for the training_types collection.
func EnsureTrainingTypeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
