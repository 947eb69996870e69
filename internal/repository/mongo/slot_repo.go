package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/hoops-trainer/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotCollectionName = "slots"

// slotDocument is one persisted slot. The slot key is the document _id.
type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSlotRepository implements repository.SlotStore
type mongoSlotRepository struct {
	collection *mongo.Collection
}

// NewMongoSlotRepository creates a SlotStore backed by MongoDB.
func NewMongoSlotRepository(db *mongo.Database) repository.SlotStore {
	return &mongoSlotRepository{
		collection: db.Collection(slotCollectionName),
	}
}

// Get retrieves the value stored under key.
func (r *mongoSlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var doc slotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, err
	}
	return doc.Value, true, nil
}

// Set replaces the whole slot, inserting it on first write.
func (r *mongoSlotRepository) Set(ctx context.Context, key, value string) error {
	doc := slotDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts)
	if err != nil {
		return fmt.Errorf("%w: slot %q: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}
