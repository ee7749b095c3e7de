package post

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"
	_ "github.com/jackc/pgx/v4/stdlib"

	"stream/pkg/content"
	"stream/pkg/logger"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS feed_post (
	post_id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	author        VARCHAR(100) NOT NULL,
	avatar        VARCHAR(10)  NOT NULL,
	timestamp     VARCHAR(100) NOT NULL,
	location      VARCHAR(100),
	content_type  VARCHAR(10)  NOT NULL,
	code_snippet  JSONB,
	image_content JSONB,
	caption       TEXT   NOT NULL,
	hashtags      TEXT[] NOT NULL,
	sort_order    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS feed_post_sort_order_idx ON feed_post (sort_order, post_id);`

const pgColumns = `post_id, author, avatar, timestamp, location, content_type,
	code_snippet, image_content, caption, hashtags, sort_order`

type pgTxKey struct{}

// sqlConn is satisfied by both *sql.DB and *sql.Tx.
type sqlConn interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// PgRepo keeps posts in the feed_post table. Ids come from the identity
// column, so post_id order is insertion order.
type PgRepo struct {
	db *sql.DB
}

func NewPgRepo(db *sql.DB) *PgRepo {
	return &PgRepo{
		db: db,
	}
}

func (r *PgRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, pgSchema); err != nil {
		return fmt.Errorf("post/pg: failed creating schema: %w", err)
	}
	return nil
}

func (r *PgRepo) conn(ctx context.Context) sqlConn {
	if tx, ok := ctx.Value(pgTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

func (r *PgRepo) Insert(ctx context.Context, p *Post) (PostId, error) {
	args, err := pgArgs(p)
	if err != nil {
		return 0, err
	}

	var id PostId
	err = r.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO feed_post (author, avatar, timestamp, location, content_type,
			code_snippet, image_content, caption, hashtags, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING post_id`,
		args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("post/pg: failed inserting a post: %w", err)
	}
	return id, nil
}

func (r *PgRepo) FindById(ctx context.Context, id PostId) (*Post, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		"SELECT "+pgColumns+" FROM feed_post WHERE post_id = $1", id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post/pg: could not scan row: %w", err)
	}
	return p, nil
}

func (r *PgRepo) FindAllOrdered(ctx context.Context) ([]*Post, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		"SELECT "+pgColumns+" FROM feed_post ORDER BY sort_order ASC, post_id ASC")
	if err != nil {
		return nil, fmt.Errorf("post/pg: failed executing query for all posts: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("post/pg: could not scan row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("post/pg: failed iterating posts: %w", err)
	}
	return posts, nil
}

func (r *PgRepo) ExistsById(ctx context.Context, id PostId) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM feed_post WHERE post_id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post/pg: failed checking post %d: %w", id, err)
	}
	return exists, nil
}

func (r *PgRepo) Replace(ctx context.Context, id PostId, p *Post) error {
	args, err := pgArgs(p)
	if err != nil {
		return err
	}

	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE feed_post SET author = $2, avatar = $3, timestamp = $4, location = $5,
			content_type = $6, code_snippet = $7, image_content = $8, caption = $9,
			hashtags = $10, sort_order = $11
		WHERE post_id = $1`,
		append([]interface{}{id}, args...)...)
	if err != nil {
		return fmt.Errorf("post/pg: failed updating post %d: %w", id, err)
	}
	return checkAffected(result, id)
}

func (r *PgRepo) DeleteById(ctx context.Context, id PostId) error {
	result, err := r.conn(ctx).ExecContext(ctx, "DELETE FROM feed_post WHERE post_id = $1", id)
	if err != nil {
		return fmt.Errorf("post/pg: failed deleting post %d: %w", id, err)
	}
	return checkAffected(result, id)
}

func (r *PgRepo) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return r.withTx(ctx, nil, fn)
}

func (r *PgRepo) WithReadTx(ctx context.Context, fn func(context.Context) error) error {
	return r.withTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (r *PgRepo) withTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context) error) error {
	if _, ok := ctx.Value(pgTxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("post/pg: failed starting transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, pgTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log(ctx).Errorf("post/pg: rollback failed: %v", rbErr)
			return fmt.Errorf("tx err: %w, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("post/pg: failed committing transaction: %w", err)
	}
	return nil
}

func (r *PgRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// pgArgs returns the ten writable columns in INSERT order.
func pgArgs(p *Post) ([]interface{}, error) {
	codeSnippet, err := jsonbArg(p.CodeSnippet)
	if err != nil {
		return nil, err
	}
	imageContent, err := jsonbArg(p.ImageContent)
	if err != nil {
		return nil, err
	}

	var hashtags pgtype.TextArray
	if err := hashtags.Set(copyStrings(p.Hashtags)); err != nil {
		return nil, fmt.Errorf("post/pg: bad hashtags: %w", err)
	}

	return []interface{}{
		p.Author, p.Avatar, p.Timestamp, p.Location, string(p.ContentType),
		codeSnippet, imageContent, p.Caption, hashtags, p.SortOrder,
	}, nil
}

func jsonbArg(doc content.Document) (interface{}, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("post/pg: failed encoding document: %w", err)
	}
	return string(raw), nil
}

type rowScanner interface {
	Scan(...interface{}) error
}

func scanPost(row rowScanner) (*Post, error) {
	p := new(Post)
	var (
		location     sql.NullString
		contentType  string
		codeSnippet  []byte
		imageContent []byte
		hashtags     pgtype.TextArray
	)
	err := row.Scan(&p.Id, &p.Author, &p.Avatar, &p.Timestamp, &location, &contentType,
		&codeSnippet, &imageContent, &p.Caption, &hashtags, &p.SortOrder)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		p.Location = &location.String
	}
	p.ContentType = content.Type(contentType)
	if p.CodeSnippet, err = content.ParseDocument(codeSnippet, p.ContentType); err != nil {
		return nil, err
	}
	if p.ImageContent, err = content.ParseDocument(imageContent, p.ContentType); err != nil {
		return nil, err
	}
	if err := hashtags.AssignTo(&p.Hashtags); err != nil {
		return nil, err
	}
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	return p, nil
}

func checkAffected(result sql.Result, id PostId) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("post/pg: failed reading affected rows for post %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
