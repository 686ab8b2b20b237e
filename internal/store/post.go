package store

import (
	"context"
	"errors"
	"fmt"

	"blogly/internal/database"
	"blogly/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreatePost(ctx context.Context, db database.DB, p *model.Post) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO posts (title, content, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.Title,
		p.Content,
		p.UserID,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreatePost: %w", err)
	}
	return p, nil
}

func GetPostByID(ctx context.Context, db database.DB, postID int) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, content, created_at, user_id
		 FROM posts WHERE id = $1`,
		postID,
	)
	p := &model.Post{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.CreatedAt,
		&p.UserID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetPostByID: %w", err)
	}
	return p, nil
}

// ListRecentPosts returns at most limit posts, newest first. Equal
// timestamps resolve to the most recently inserted row first.
func ListRecentPosts(ctx context.Context, db database.DB, limit int) ([]model.Post, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, content, created_at, user_id
		 FROM posts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRecentPosts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows, "ListRecentPosts")
}

// ListPostsByUser returns every post owned by the user, newest first.
func ListPostsByUser(ctx context.Context, db database.DB, userID int) ([]model.Post, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, content, created_at, user_id
		 FROM posts
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPostsByUser: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows, "ListPostsByUser")
}

// GetPostOwner returns the user owning the given post.
func GetPostOwner(ctx context.Context, db database.DB, postID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.image_url
		 FROM users u
		 JOIN posts p ON p.user_id = u.id
		 WHERE p.id = $1`,
		postID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.ImageURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetPostOwner: %w", err)
	}
	return u, nil
}

// UpdatePost overwrites title and content. user_id and created_at are
// immutable after creation.
func UpdatePost(ctx context.Context, db database.DB, p *model.Post) error {
	tag, err := db.Exec(ctx,
		`UPDATE posts SET title = $1, content = $2
		 WHERE id = $3`,
		p.Title,
		p.Content,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdatePost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func DeletePost(ctx context.Context, db database.DB, postID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM posts WHERE id = $1`,
		postID,
	)
	if err != nil {
		return fmt.Errorf("DeletePost: %w", err)
	}
	return nil
}

func scanPosts(rows pgx.Rows, op string) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return posts, nil
}
