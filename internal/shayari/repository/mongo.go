package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suryaansh001/shayari-backend/internal/shayari"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores records in a MongoDB collection keyed by string _id.
// Documents written by earlier deployments carry ObjectId keys; they decode
// to their hex form and are addressed through idFilter.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo wraps col and ensures the listing indexes exist.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isPublic", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Insert(ctx context.Context, s *shayari.Shayari) error {
	if _, err := m.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert shayari: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*shayari.Shayari, error) {
	var s shayari.Shayari
	err := m.col.FindOne(ctx, idFilter(id)).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find shayari: %w", err)
	}
	s.Normalize()
	return &s, nil
}

func (m *MongoRepo) List(ctx context.Context, publicOnly bool) ([]*shayari.Shayari, error) {
	filter := bson.M{}
	if publicOnly {
		filter["isPublic"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list shayaris: %w", err)
	}
	defer cur.Close(ctx)
	out := []*shayari.Shayari{}
	for cur.Next(ctx) {
		var s shayari.Shayari
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode shayari: %w", err)
		}
		s.Normalize()
		out = append(out, &s)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list shayaris: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Replace(ctx context.Context, id string, r shayari.Replacement, now time.Time) (*shayari.Shayari, error) {
	set := bson.M{
		"title":     r.Title,
		"content":   r.Content,
		"moodTags":  r.MoodTags,
		"isPublic":  r.IsPublic,
		"updatedAt": now,
	}
	return m.findAndUpdate(ctx, idFilter(id), bson.M{"$set": set})
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("delete shayari: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementReaction relies on $inc so concurrent increments never lose updates.
func (m *MongoRepo) IncrementReaction(ctx context.Context, id string, e shayari.Emoji, now time.Time) (*shayari.Shayari, error) {
	update := bson.M{
		"$inc": bson.M{"reactions." + e.Symbol(): 1},
		"$set": bson.M{"updatedAt": now},
	}
	filter := idFilter(id)
	filter["isPublic"] = true
	return m.findAndUpdate(ctx, filter, update)
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

// idFilter matches id as a string key and, when it is a valid hex ObjectId,
// as the ObjectId it was decoded from.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (m *MongoRepo) findAndUpdate(ctx context.Context, filter, update bson.M) (*shayari.Shayari, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s shayari.Shayari
	err := m.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update shayari: %w", err)
	}
	s.Normalize()
	return &s, nil
}
