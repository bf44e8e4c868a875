package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dialTimeout = 10 * time.Second

// Connect dials MongoDB, verifies the deployment answers a primary
// ping, and returns the client together with the named database handle.
// The initial connect can succeed against an unresponsive server, so
// the ping is not optional.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), dialTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}

// Disconnect closes the client with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on. Index
// creation is idempotent in Mongo, so this runs on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureTraineeIndexes(ctx, db.Collection(traineeCollectionName))
	EnsureTrainerIndexes(ctx, db.Collection(trainerCollectionName))
	EnsureTrainingIndexes(ctx, db.Collection(trainingCollectionName))
	EnsureTrainingTypeIndexes(ctx, db.Collection(trainingTypeCollectionName))
}
