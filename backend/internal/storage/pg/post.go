package pg

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/unforum-dev/unforum/shared/domain"
)

type postRow struct {
	Id        string               `db:"id"`
	ThreadId  string               `db:"thread_id"`
	Content   string               `db:"content"`
	AuthorId  string               `db:"author_id"`
	Author    jsonb[domain.Author] `db:"author"`
	Likes     int                  `db:"likes"`
	CreatedAt sql.NullTime         `db:"created_at"`
	UpdatedAt sql.NullTime         `db:"updated_at"`
}

func (r postRow) document() domain.PostDocument {
	return domain.PostDocument{
		Id:        r.Id,
		ThreadId:  r.ThreadId,
		Content:   r.Content,
		AuthorId:  r.AuthorId,
		Author:    r.Author.V,
		Likes:     r.Likes,
		CreatedAt: timePtr(r.CreatedAt),
		UpdatedAt: timePtr(r.UpdatedAt),
	}
}

func insertPostQuery(doc domain.PostDocument) (string, []any, error) {
	return psql.Insert("posts").
		Columns("thread_id", "content", "author_id", "author", "likes", "created_at", "updated_at").
		Values(doc.ThreadId, doc.Content, doc.AuthorId, jsonb[domain.Author]{doc.Author}, doc.Likes,
			nullTime(doc.CreatedAt), nullTime(doc.UpdatedAt)).
		Suffix("RETURNING id").
		ToSql()
}

func (s *Storage) InsertPost(ctx context.Context, doc domain.PostDocument) (domain.PostId, error) {
	query, args, err := insertPostQuery(doc)
	if err != nil {
		return "", fmt.Errorf("build insert post: %w", err)
	}
	var id string
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

// InsertPostWithReply inserts the post and bumps the parent's replyCount in
// one transaction. A missing parent rolls the insert back.
func (s *Storage) InsertPostWithReply(ctx context.Context, doc domain.PostDocument) (_ domain.PostId, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query, args, err := insertPostQuery(doc)
	if err != nil {
		return "", fmt.Errorf("build insert post: %w", err)
	}
	var id string
	if err = tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	if err = incrementThread(ctx, tx, doc.ThreadId, domain.FieldReplyCount, 1); err != nil {
		return "", err
	}
	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("commit post: %w", err)
	}
	return id, nil
}

func (s *Storage) ListPosts(ctx context.Context, threadId domain.ThreadId) ([]domain.PostDocument, error) {
	query, args, err := psql.Select("id", "thread_id", "content", "author_id", "author", "likes", "created_at", "updated_at").
		From("posts").
		Where(sq.Eq{"thread_id": threadId}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts: %w", err)
	}

	var rows []postRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", threadId, err)
	}
	docs := make([]domain.PostDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.document())
	}
	return docs, nil
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	query, args, err := psql.Delete("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete post: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (s *Storage) PostIds(ctx context.Context) ([]domain.PostId, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM posts"); err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	return ids, nil
}
