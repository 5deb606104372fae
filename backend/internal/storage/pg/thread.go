package pg

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
)

var threadColumns = []string{
	"id", "title", "content", "author_id", "author", "category_id", "category", "tags",
	"reply_count", "view_count", "likes", "created_at", "updated_at",
}

type threadRow struct {
	Id         string                 `db:"id"`
	Title      string                 `db:"title"`
	Content    string                 `db:"content"`
	AuthorId   string                 `db:"author_id"`
	Author     jsonb[domain.Author]   `db:"author"`
	CategoryId string                 `db:"category_id"`
	Category   jsonb[domain.Category] `db:"category"`
	Tags       pq.StringArray         `db:"tags"`
	ReplyCount int                    `db:"reply_count"`
	ViewCount  int                    `db:"view_count"`
	Likes      int                    `db:"likes"`
	CreatedAt  sql.NullTime           `db:"created_at"`
	UpdatedAt  sql.NullTime           `db:"updated_at"`
}

func (r threadRow) document() domain.ThreadDocument {
	return domain.ThreadDocument{
		Id:         r.Id,
		Title:      r.Title,
		Content:    r.Content,
		AuthorId:   r.AuthorId,
		Author:     r.Author.V,
		CategoryId: r.CategoryId,
		Category:   r.Category.V,
		Tags:       domain.Tags(r.Tags),
		ReplyCount: r.ReplyCount,
		ViewCount:  r.ViewCount,
		Likes:      r.Likes,
		CreatedAt:  timePtr(r.CreatedAt),
		UpdatedAt:  timePtr(r.UpdatedAt),
	}
}

func (s *Storage) InsertThread(ctx context.Context, doc domain.ThreadDocument) (domain.ThreadId, error) {
	tags := doc.Tags
	if tags == nil {
		tags = domain.Tags{}
	}
	query, args, err := psql.Insert("threads").
		Columns("title", "content", "author_id", "author", "category_id", "category", "tags",
			"reply_count", "view_count", "likes", "created_at", "updated_at").
		Values(doc.Title, doc.Content, doc.AuthorId, jsonb[domain.Author]{doc.Author}, doc.CategoryId,
			jsonb[domain.Category]{doc.Category}, pq.StringArray(tags),
			doc.ReplyCount, doc.ViewCount, doc.Likes, nullTime(doc.CreatedAt), nullTime(doc.UpdatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert thread: %w", err)
	}

	var id string
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("insert thread: %w", err)
	}
	return id, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.ThreadDocument, error) {
	query, args, err := psql.Select(threadColumns...).From("threads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get thread: %w", err)
	}

	var row threadRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, internal_errors.ErrNotFound
		}
		return nil, fmt.Errorf("get thread %s: %w", id, err)
	}
	doc := row.document()
	return &doc, nil
}

func (s *Storage) ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]domain.ThreadDocument, error) {
	builder := psql.Select(threadColumns...).From("threads").OrderBy("created_at DESC NULLS LAST", "id")
	if filter.AuthorId != "" {
		builder = builder.Where(sq.Eq{"author_id": filter.AuthorId})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list threads: %w", err)
	}

	var rows []threadRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	docs := make([]domain.ThreadDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.document())
	}
	return docs, nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	query, args, err := psql.Delete("threads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete thread: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}

func (s *Storage) IncrementThread(ctx context.Context, id domain.ThreadId, field domain.CounterField, delta int) error {
	return incrementThread(ctx, s.db, id, field, delta)
}

func incrementThread(ctx context.Context, db sq.ExecerContext, id domain.ThreadId, field domain.CounterField, delta int) error {
	column, err := counterColumn(field)
	if err != nil {
		return err
	}
	query, args, err := psql.Update("threads").
		Set(column, sq.Expr(column+" + ?", delta)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, err)
	}
	if n == 0 {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, internal_errors.ErrNotFound)
	}
	return nil
}

func (s *Storage) ThreadIds(ctx context.Context) ([]domain.ThreadId, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM threads"); err != nil {
		return nil, fmt.Errorf("list thread ids: %w", err)
	}
	return ids, nil
}
