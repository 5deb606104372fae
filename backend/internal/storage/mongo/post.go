package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postDocument struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	ThreadId  string             `bson:"threadId"`
	Content   string             `bson:"content"`
	AuthorId  string             `bson:"authorId"`
	Author    domain.Author      `bson:"author"`
	Likes     int                `bson:"likes"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty"`
}

func (d postDocument) toDomain() domain.PostDocument {
	return domain.PostDocument{
		Id:        d.Id.Hex(),
		ThreadId:  d.ThreadId,
		Content:   d.Content,
		AuthorId:  d.AuthorId,
		Author:    d.Author,
		Likes:     d.Likes,
		CreatedAt: utc(d.CreatedAt),
		UpdatedAt: utc(d.UpdatedAt),
	}
}

func (s *Storage) InsertPost(ctx context.Context, doc domain.PostDocument) (domain.PostId, error) {
	res, err := s.posts.InsertOne(ctx, postDocument{
		ThreadId:  doc.ThreadId,
		Content:   doc.Content,
		AuthorId:  doc.AuthorId,
		Author:    doc.Author,
		Likes:     doc.Likes,
		CreatedAt: toMS(doc.CreatedAt),
		UpdatedAt: toMS(doc.UpdatedAt),
	})
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert post: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListPosts filters by threadId only; ordering is left to the caller.
func (s *Storage) ListPosts(ctx context.Context, threadId domain.ThreadId) ([]domain.PostDocument, error) {
	cur, err := s.posts.Find(ctx, bson.D{{Key: "threadId", Value: threadId}})
	if err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", threadId, err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", threadId, err)
	}
	out := make([]domain.PostDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	if _, err := s.posts.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (s *Storage) PostIds(ctx context.Context) ([]domain.PostId, error) {
	ids, err := allIds(ctx, s.posts)
	if err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	return ids, nil
}
