package model

// DefaultImageURL is stored when a user form leaves image_url blank.
const DefaultImageURL = "https://www.gravatar.com/avatar?d=mp&s=200"

type User struct {
	ID        int    `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	ImageURL  string `db:"image_url"`
}

// FullName is derived, never persisted.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
