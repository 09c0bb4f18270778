// Package repo implements MongoDB-backed persistence.
package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlayerRepo handles the persistence of player models.
type PlayerRepo struct {
	collection *mongo.Collection
}

// NewPlayerRepo creates a new PlayerRepo with the given MongoDB client,
// database name, and collection name.
func NewPlayerRepo(client *mongo.Client, dbName, collectionName string) *PlayerRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PlayerRepo{
		collection: collection,
	}
}

// Save inserts or updates a player in the repository.
// If the player already exists, it updates the existing record.
// If the player does not exist, it adds a new record.
func (r *PlayerRepo) Save(player *dmn.Player) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": player.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     player.Username,
			"passwordHash": player.PasswordHash,
			"solves":       player.Solves,
			"bestSteps":    player.BestSteps,
			"updatedAt":    time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("username conflict")
		}
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a player by their ID.
// Returns an error if the player is not found or if an unexpected error occurs.
func (r *PlayerRepo) ByID(id uuid.UUID) (*dmn.Player, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var player dmn.Player
	if err := r.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("player not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &player, nil
}

// ByUsername retrieves a player by their username.
// Returns an error if the player is not found or if an unexpected error occurs.
func (r *PlayerRepo) ByUsername(username string) (*dmn.Player, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"username": username}
	var player dmn.Player
	if err := r.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("player not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &player, nil
}
