package store

import (
	"context"
	"errors"
	"fmt"

	"blogly/internal/database"
	"blogly/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.FirstName,
		u.LastName,
		u.ImageURL,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, first_name, last_name, image_url
		 FROM users WHERE id = $1`,
		userID,
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
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// ListUsers returns every user ordered by last name then first name.
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, first_name, last_name, image_url
		 FROM users
		 ORDER BY last_name, first_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// UpdateUser overwrites every mutable field of the user row.
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, image_url = $3
		 WHERE id = $4`,
		u.FirstName,
		u.LastName,
		u.ImageURL,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user row. Posts owned by the user are removed by
// the ON DELETE CASCADE constraint on posts.user_id.
func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
