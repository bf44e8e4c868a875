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

const traineeCollectionName = "trainees"

// mongoTraineeRepository implements repository.TraineeRepository using MongoDB.
type mongoTraineeRepository struct {
	collection *mongo.Collection
}

// NewMongoTraineeRepository creates a new instance of mongoTraineeRepository.
// It expects a connected *mongo.Database instance.
func NewMongoTraineeRepository(db *mongo.Database) repository.TraineeRepository {
	return &mongoTraineeRepository{
		collection: db.Collection(traineeCollectionName),
	}
}

// Create inserts a new trainee into the database.
func (r *mongoTraineeRepository) Create(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error) {
	if trainee.Username == "" || trainee.Password == "" {
		return primitive.NilObjectID, errors.New("trainee username and password are required")
	}

	trainee.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainee.CreatedAt = now
	trainee.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.New("trainee with this username already exists")
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a trainee by their MongoDB ObjectID.
func (r *mongoTraineeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error) {
	var trainee domain.Trainee
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&trainee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainee, nil
}

// GetByUsername retrieves a trainee by their unique username.
func (r *mongoTraineeRepository) GetByUsername(ctx context.Context, username string) (*domain.Trainee, error) {
	var trainee domain.Trainee
	filter := bson.M{"username": username}

	err := r.collection.FindOne(ctx, filter).Decode(&trainee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainee, nil
}

// GetByIDs retrieves every trainee whose ID is in the list.
func (r *mongoTraineeRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainee, error) {
	if len(ids) == 0 {
		return []domain.Trainee{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainees []domain.Trainee
	if err = cursor.All(ctx, &trainees); err != nil {
		return nil, err
	}
	return trainees, nil
}

// Update replaces the mutable profile fields of an existing trainee.
func (r *mongoTraineeRepository) Update(ctx context.Context, trainee *domain.Trainee) error {
	filter := bson.M{"_id": trainee.ID}
	update := bson.M{
		"$set": bson.M{
			"firstName":   trainee.FirstName,
			"lastName":    trainee.LastName,
			"username":    trainee.Username,
			"password":    trainee.Password,
			"isActive":    trainee.IsActive,
			"dateOfBirth": trainee.DateOfBirth,
			"address":     trainee.Address,
			"updatedAt":   time.Now().UTC(),
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

// Delete removes a trainee document. The roster edges live on this
// document, so they disappear with it.
func (r *mongoTraineeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListUsernames returns all trainee usernames.
func (r *mongoTraineeRepository) ListUsernames(ctx context.Context) ([]string, error) {
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

// AddTrainersToRoster adds the trainers to the trainee's roster.
// $addToSet prevents duplicates and makes the merge atomic on the
// trainee document, so concurrent merges cannot drop each other's edges.
func (r *mongoTraineeRepository) AddTrainersToRoster(ctx context.Context, traineeID primitive.ObjectID, trainerIDs []primitive.ObjectID) error {
	if len(trainerIDs) == 0 {
		return nil
	}
	filter := bson.M{"_id": traineeID}
	update := bson.M{
		"$addToSet": bson.M{"trainerIds": bson.M{"$each": trainerIDs}},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	// ModifiedCount may be 0 when every trainer was already on the roster,
	// which is fine.
	return nil
}

// RemoveTrainerFromRosters pulls the trainer from every trainee roster.
func (r *mongoTraineeRepository) RemoveTrainerFromRosters(ctx context.Context, trainerID primitive.ObjectID) error {
	filter := bson.M{"trainerIds": trainerID}
	update := bson.M{
		"$pull": bson.M{"trainerIds": trainerID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// GetByTrainerID returns all trainees whose roster contains the trainer.
func (r *mongoTraineeRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Trainee, error) {
	filter := bson.M{"trainerIds": trainerID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainees []domain.Trainee
	if err = cursor.All(ctx, &trainees); err != nil {
		return nil, err
	}
	return trainees, nil
}

// EnsureTraineeIndexes creates necessary indexes for the trainees collection.
// Call this once during application startup.
func EnsureTraineeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "trainerIds", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
