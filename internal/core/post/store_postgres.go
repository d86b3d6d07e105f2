package post

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrfuxi/gae-blog/internal/platform/database/schema"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
	"github.com/mrfuxi/gae-blog/pkg/uuid"
)

// PostgresRepository implements [Repository] on the blog.post table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) (string, error) {
	id := post.ID
	if id == "" {
		id = uuid.New()
	}

	columns := schema.BlogPost.Columns()
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.BlogPost.Table, schema.List(columns), schema.Placeholders(len(columns)),
	)

	if _, err := repository.db.Exec(context, query, id, post.Title, post.Body, post.Author, post.CreatedAt); err != nil {
		return "", dberr.Wrap(err, "create_post")
	}

	return id, nil
}

func (repository *PostgresRepository) Overwrite(context context.Context, id string, post *Post) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		schema.BlogPost.Table,
		schema.BlogPost.Title, schema.BlogPost.Body, schema.BlogPost.Author,
		schema.BlogPost.ID,
	)

	tag, err := repository.db.Exec(context, query, id, post.Title, post.Body, post.Author)
	if err != nil {
		return dberr.Wrap(err, "overwrite_post")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BlogPost.Table, schema.BlogPost.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) ScanAll(context context.Context) ([]*Post, error) {
	// Scan order follows schema.BlogPost.Columns()
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		schema.List(schema.AsText(schema.BlogPost.Columns(), schema.BlogPost.ID)),
		schema.BlogPost.Table,
		schema.BlogPost.CreatedAt, schema.BlogPost.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_posts")
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Post, error) {
		post := &Post{}
		err := row.Scan(&post.ID, &post.Title, &post.Body, &post.Author, &post.CreatedAt)
		return post, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_posts")
	}

	return posts, nil
}
