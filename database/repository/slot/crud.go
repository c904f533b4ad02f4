// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"transformai/models"
)

func (r *mongoSlotRepo) InsertMany(ctx context.Context, slots []models.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		docs[i] = slot
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *mongoSlotRepo) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (r *mongoSlotRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoSlotRepo) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) FindInRange(ctx context.Context, start, end string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
