// Package store runs the posts queries against a database/sql pool.
package store

import (
	"context"
	"database/sql"
	"errors"

	"postboard/domain"
)

type PostStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func New(db *sql.DB, d Dialect) *PostStore {
	return &PostStore{DB: db, Dialect: d}
}

// withConn acquires one pooled connection for fn and always returns it to
// the pool afterwards.
func (s *PostStore) withConn(ctx context.Context, op string, fn func(*sql.Conn) error) error {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return &domain.StoreError{Op: op, Err: err}
	}
	defer conn.Close()

	if err := fn(conn); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.StoreError{Op: op, Err: err}
	}
	return nil
}

func (s *PostStore) Create(ctx context.Context, in domain.PostInput) (int64, error) {
	var id int64
	err := s.withConn(ctx, "create post", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, insertPostSQL,
			in.Title, in.Image, in.CategoryID, in.Description, in.Content, in.StatusID,
		).Scan(&id)
	})
	return id, err
}

func (s *PostStore) Update(ctx context.Context, id int64, in domain.PostInput) error {
	return s.withConn(ctx, "update post", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, updatePostSQL,
			in.Title, in.Image, in.CategoryID, in.Description, in.Content, in.StatusID, id,
		)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	return s.withConn(ctx, "delete post", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, deletePostSQL, id)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

func (s *PostStore) Get(ctx context.Context, id int64) (domain.Post, error) {
	var p domain.Post
	err := s.withConn(ctx, "get post", func(conn *sql.Conn) error {
		err := scanPost(conn.QueryRowContext(ctx, selectPostSQL, id), &p)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	return p, err
}

// List fetches one page and the total count of matching posts. Both queries
// run on the same connection but outside a transaction.
func (s *PostStore) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	lq := buildList(s.Dialect, q)
	var (
		posts []domain.Post
		total int64
	)
	err := s.withConn(ctx, "list posts", func(conn *sql.Conn) error {
		var err error
		if posts, err = queryPosts(ctx, conn, lq.SQL, lq.Args); err != nil {
			return err
		}
		return conn.QueryRowContext(ctx, lq.CountSQL, lq.CountArgs...).Scan(&total)
	})
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(q, posts, total), nil
}

func queryPosts(ctx context.Context, conn *sql.Conn, query string, args []any) ([]domain.Post, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p := domain.Post{}
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner, p *domain.Post) error {
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Image, &p.CategoryID, &description, &p.Content, &p.StatusID); err != nil {
		return err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
