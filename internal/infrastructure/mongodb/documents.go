package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// seqField holds an ObjectID assigned on first insert. ObjectIDs from one
// process increase monotonically, so it orders documents by insertion.
const seqField = "seq"

// newestFirst breaks created_at ties (stored at millisecond precision) by insertion order.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: seqField, Value: -1}}

// fields encodes doc as a field map without _id, ready for $set.
func fields(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "_id")
	return m, nil
}

// upsertUpdate overwrites every field of doc and stamps the sequence only when inserting.
func upsertUpdate(doc any) (bson.M, error) {
	m, err := fields(doc)
	if err != nil {
		return nil, err
	}
	return bson.M{
		"$set":         m,
		"$setOnInsert": bson.M{seqField: primitive.NewObjectID()},
	}, nil
}

type documents[T any] struct {
	col *mongo.Collection
}

func (d documents[T]) save(ctx context.Context, id string, doc T) error {
	update, err := upsertUpdate(doc)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", d.col.Name(), id, err)
	}
	_, err = d.col.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s %s: %w", d.col.Name(), id, err)
	}
	return nil
}

func (d documents[T]) get(ctx context.Context, id string) (T, error) {
	var doc T
	err := d.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, repository.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("get %s %s: %w", d.col.Name(), id, err)
	}
	return doc, nil
}

func (d documents[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := d.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", d.col.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.col.Name(), err)
	}
	return out, nil
}

func (d documents[T]) delete(ctx context.Context, id string) error {
	res, err := d.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", d.col.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
