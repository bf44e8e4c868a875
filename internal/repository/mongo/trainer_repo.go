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

const trainerCollectionName = "trainers"

// mongoTrainerRepository implements repository.TrainerRepository using MongoDB.
type mongoTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new instance of mongoTrainerRepository.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer into the database.
func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Username == "" || trainer.Password == "" {
		return primitive.NilObjectID, errors.New("trainer username and password are required")
	}
	if trainer.SpecializationID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("trainer specialization is required")
	}

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.New("trainer with this username already exists")
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a trainer by their MongoDB ObjectID.
func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	var trainer domain.Trainer
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByUsername retrieves a trainer by their unique username.
func (r *mongoTrainerRepository) GetByUsername(ctx context.Context, username string) (*domain.Trainer, error) {
	var trainer domain.Trainer
	filter := bson.M{"username": username}

	err := r.collection.FindOne(ctx, filter).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByUsernames retrieves every trainer whose username is in the list.
// Usernames that resolve to nothing are simply absent from the result;
// the caller decides whether that is an error.
func (r *mongoTrainerRepository) GetByUsernames(ctx context.Context, usernames []string) ([]domain.Trainer, error) {
	if len(usernames) == 0 {
		return []domain.Trainer{}, nil
	}
	filter := bson.M{"username": bson.M{"$in": usernames}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// GetByIDs retrieves every trainer whose ID is in the list.
func (r *mongoTrainerRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
	if len(ids) == 0 {
		return []domain.Trainer{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// ListActiveExcluding returns active trainers not in the excluded set.
func (r *mongoTrainerRepository) ListActiveExcluding(ctx context.Context, excludeIDs []primitive.ObjectID) ([]domain.Trainer, error) {
	filter := bson.M{"isActive": true}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update replaces the mutable profile fields of an existing trainer.
func (r *mongoTrainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	filter := bson.M{"_id": trainer.ID}
	update := bson.M{
		"$set": bson.M{
			"firstName":        trainer.FirstName,
			"lastName":         trainer.LastName,
			"username":         trainer.Username,
			"password":         trainer.Password,
			"isActive":         trainer.IsActive,
			"specializationId": trainer.SpecializationID,
			"updatedAt":        time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a trainer document.
func (r *mongoTrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListUsernames returns all trainer usernames.
func (r *mongoTrainerRepository) ListUsernames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Username string `bson:"username"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	usernames := make([]string, len(docs))
	for i, d := range docs {
		usernames[i] = d.Username
	}
	return usernames, nil
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
