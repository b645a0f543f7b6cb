package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunRepo handles the persistence of finished runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run in the repository.
func (r *RunRepo) Save(ctx context.Context, run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{
		"$set": bson.M{
			"goal":        run.Goal,
			"position":    run.Position,
			"steps":       run.Steps,
			"expansions":  run.Expansions,
			"reachedGoal": run.ReachedGoal,
			"finished":    run.Finished,
			"createdAt":   run.CreatedAt,
			"updatedAt":   run.UpdatedAt,
			"snapshot":    run.Snapshot,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a run by its ID.
func (r *RunRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run dmn.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrRunNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
