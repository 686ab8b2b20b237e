// Package store holds the SQL persistence operations for users and posts.
package store

import "errors"

// ErrNotFound reports that an id did not resolve to a record. Handlers map
// it to HTTP 404.
var ErrNotFound = errors.New("record not found")
