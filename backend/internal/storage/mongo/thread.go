package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type threadDocument struct {
	Id         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	AuthorId   string             `bson:"authorId"`
	Author     domain.Author      `bson:"author"`
	CategoryId string             `bson:"categoryId"`
	Category   domain.Category    `bson:"category"`
	Tags       []string           `bson:"tags"`
	ReplyCount int                `bson:"replyCount"`
	ViewCount  int                `bson:"viewCount"`
	Likes      int                `bson:"likes"`
	CreatedAt  *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt  *time.Time         `bson:"updatedAt,omitempty"`
}

func fromThread(doc domain.ThreadDocument) threadDocument {
	tags := doc.Tags
	if tags == nil {
		tags = domain.Tags{}
	}
	return threadDocument{
		Title:      doc.Title,
		Content:    doc.Content,
		AuthorId:   doc.AuthorId,
		Author:     doc.Author,
		CategoryId: doc.CategoryId,
		Category:   doc.Category,
		Tags:       tags,
		ReplyCount: doc.ReplyCount,
		ViewCount:  doc.ViewCount,
		Likes:      doc.Likes,
		CreatedAt:  toMS(doc.CreatedAt),
		UpdatedAt:  toMS(doc.UpdatedAt),
	}
}

func (d threadDocument) toDomain() domain.ThreadDocument {
	return domain.ThreadDocument{
		Id:         d.Id.Hex(),
		Title:      d.Title,
		Content:    d.Content,
		AuthorId:   d.AuthorId,
		Author:     d.Author,
		CategoryId: d.CategoryId,
		Category:   d.Category,
		Tags:       d.Tags,
		ReplyCount: d.ReplyCount,
		ViewCount:  d.ViewCount,
		Likes:      d.Likes,
		CreatedAt:  utc(d.CreatedAt),
		UpdatedAt:  utc(d.UpdatedAt),
	}
}

// toMS truncates to the millisecond precision of BSON dates.
func toMS(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Millisecond)
	return &v
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func (s *Storage) InsertThread(ctx context.Context, doc domain.ThreadDocument) (domain.ThreadId, error) {
	res, err := s.threads.InsertOne(ctx, fromThread(doc))
	if err != nil {
		return "", fmt.Errorf("insert thread: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert thread: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.ThreadDocument, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, internal_errors.ErrNotFound
	}
	var doc threadDocument
	if err := s.threads.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, internal_errors.ErrNotFound
		}
		return nil, fmt.Errorf("get thread %s: %w", id, err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (s *Storage) ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]domain.ThreadDocument, error) {
	query := bson.D{}
	if filter.AuthorId != "" {
		query = append(query, bson.E{Key: "authorId", Value: filter.AuthorId})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := s.threads.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer cur.Close(ctx)

	var docs []threadDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	out := make([]domain.ThreadDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	if _, err := s.threads.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}

// IncrementThread applies $inc, which the server executes atomically.
func (s *Storage) IncrementThread(ctx context.Context, id domain.ThreadId, field domain.CounterField, delta int) error {
	if !field.Valid() {
		return fmt.Errorf("unknown counter %q", field)
	}
	oid, ok := objectID(id)
	if !ok {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, internal_errors.ErrNotFound)
	}
	res, err := s.threads.UpdateByID(ctx, oid, bson.D{
		{Key: "$inc", Value: bson.D{{Key: string(field), Value: delta}}},
	})
	if err != nil {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, internal_errors.ErrNotFound)
	}
	return nil
}

func (s *Storage) ThreadIds(ctx context.Context) ([]domain.ThreadId, error) {
	ids, err := allIds(ctx, s.threads)
	if err != nil {
		return nil, fmt.Errorf("list thread ids: %w", err)
	}
	return ids, nil
}
