// Package mongo stores threads and posts as MongoDB documents, one
// collection each.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	threadsCollection = "threads"
	postsCollection   = "posts"
	defaultDBName     = "unforum"
)

type Storage struct {
	client  *mongodriver.Client
	db      *mongodriver.Database
	threads *mongodriver.Collection
	posts   *mongodriver.Collection
}

// New connects, pings and ensures indexes. The database name is taken from
// the URI path.
func New(ctx context.Context, uri string) (*Storage, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(uri))
	s := &Storage{
		client:  cli,
		db:      db,
		threads: db.Collection(threadsCollection),
		posts:   db.Collection(postsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes covers the three queries the forum runs: the newest-first
// thread list, the per-author list and posts by thread.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	threadModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("author_created_desc"),
		},
	}
	if _, err := s.threads.Indexes().CreateMany(ctx, threadModels); err != nil {
		return fmt.Errorf("mongo ensure thread indexes: %w", err)
	}

	postModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "threadId", Value: 1}},
			Options: options.Index().SetName("thread_id"),
		},
	}
	if _, err := s.posts.Indexes().CreateMany(ctx, postModels); err != nil {
		return fmt.Errorf("mongo ensure post indexes: %w", err)
	}
	return nil
}

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// objectID parses a document id. Ids that are not ObjectIDs cannot exist in
// the store, so the caller treats ok=false as not found.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	return oid, err == nil
}

func allIds(ctx context.Context, coll *mongodriver.Collection) ([]string, error) {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			Id primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.Id.Hex())
	}
	return ids, cur.Err()
}
