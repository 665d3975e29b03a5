package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
)

const postsCounterID = "posts"

// MongoRepo implements a MongoDB-backed repository for posts.
// Posts keep integer ids (stored as _id) drawn from a sequence document in
// the counters collection so numeric lookups behave like the other backends.
type MongoRepo struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

// NewMongoRepo uses the "posts" and "counters" collections of db.
func NewMongoRepo(ctx context.Context, db *mongo.Database) (*MongoRepo, error) {
	col := db.Collection("posts")
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		return nil, fmt.Errorf("create post indexes: %w", err)
	}
	return &MongoRepo{col: col, counters: db.Collection("counters")}, nil
}

func (m *MongoRepo) nextID(ctx context.Context) (int64, error) {
	var seq struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": postsCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&seq)
	if err != nil {
		return 0, fmt.Errorf("next post id: %w", err)
	}
	return seq.Seq, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*post.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)
	out := []*post.Post{}
	for cur.Next(ctx) {
		var p post.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (m *MongoRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*post.Post, error) {
	var p post.Post
	if err := m.col.FindOne(ctx, filter, opts...).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoRepo) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return m.findOne(ctx, bson.M{"slug": slug}, opts)
}

func (m *MongoRepo) Create(ctx context.Context, p *post.Post) error {
	id, err := m.nextID(ctx)
	if err != nil {
		return err
	}
	p.ID = id
	if _, err := m.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (m *MongoRepo) Update(ctx context.Context, p *post.Post) error {
	set := bson.M{
		"title":     p.Title,
		"content":   p.Content,
		"label":     p.Label,
		"slug":      p.Slug,
		"image":     p.Image,
		"updatedAt": p.UpdatedAt,
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id int64) (*post.Post, error) {
	var p post.Post
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete post %d: %w", id, err)
	}
	return &p, nil
}
