package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

const collectionName = "auctions"

// Store keeps one document per auction in the auctions collection, with the
// composite guild/channel key as _id.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(collectionName)}
}

type document struct {
	Key           string `bson:"_id"`
	domain.Record `bson:",inline"`
}

func (s *Store) Get(ctx context.Context, key string) (*domain.Record, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find record %q: %w", key, err)
	}
	rec := doc.Record
	return &rec, nil
}

func (s *Store) Set(ctx context.Context, key string, rec *domain.Record) error {
	doc := document{Key: key, Record: *rec}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert record %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": key})
	if err != nil {
		return false, fmt.Errorf("count record %q: %w", key, err)
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Record, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	recs := make([]*domain.Record, 0, len(docs))
	for _, doc := range docs {
		rec := doc.Record
		recs = append(recs, &rec)
	}
	return recs, nil
}
