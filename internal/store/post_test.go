package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogly/internal/database"
	"blogly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakePostRow implements pgx.Row for single-post scans.
type fakePostRow struct {
	scanErr error
	post    *model.Post
}

func (r *fakePostRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	p := r.post
	switch len(dest) {
	case 5:
		// GetPostByID: id, title, content, created_at, user_id
		*dest[0].(*int) = p.ID
		*dest[1].(*string) = p.Title
		*dest[2].(*string) = p.Content
		*dest[3].(*time.Time) = p.CreatedAt
		*dest[4].(*int) = p.UserID
	case 2:
		// CreatePost: id, created_at
		*dest[0].(*int) = p.ID
		*dest[1].(*time.Time) = p.CreatedAt
	default:
		panic("fakePostRow.Scan: unexpected number of dest")
	}
	return nil
}

// fakePostRows implements pgx.Rows for the post list queries.
type fakePostRows struct {
	data    []model.Post
	idx     int
	scanErr error
	err     error
}

func (r *fakePostRows) Close()                                       {}
func (r *fakePostRows) Err() error                                   { return r.err }
func (r *fakePostRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakePostRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakePostRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakePostRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	p := r.data[r.idx]
	r.idx++
	*dest[0].(*int) = p.ID
	*dest[1].(*string) = p.Title
	*dest[2].(*string) = p.Content
	*dest[3].(*time.Time) = p.CreatedAt
	*dest[4].(*int) = p.UserID
	return nil
}
func (r *fakePostRows) Values() ([]any, error) { return nil, nil }
func (r *fakePostRows) RawValues() [][]byte    { return nil }
func (r *fakePostRows) Conn() *pgx.Conn        { return nil }

func TestPostStore(t *testing.T) {
	now := time.Now().UTC()
	sample := model.Post{ID: 1, Title: "First!", Content: "hello", CreatedAt: now, UserID: 2}

	t.Run("Create ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakePostRow{post: &sample}
			},
		}
		post := &model.Post{Title: "First!", Content: "hello", UserID: 2}
		got, err := CreatePost(context.Background(), p, post)
		require.NoError(t, err)
		require.Equal(t, 1, got.ID)
		require.Equal(t, now, got.CreatedAt)
		require.Equal(t, 2, got.UserID)
	})

	t.Run("Create err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakePostRow{scanErr: errors.New("insert")}
			},
		}
		_, err := CreatePost(context.Background(), p, &model.Post{})
		require.Error(t, err)
	})

	t.Run("Get ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakePostRow{post: &sample}
			},
		}
		got, err := GetPostByID(context.Background(), p, 1)
		require.NoError(t, err)
		require.Equal(t, "First!", got.Title)
	})

	t.Run("Get not found", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakePostRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetPostByID(context.Background(), p, 999999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListRecent passes limit", func(t *testing.T) {
		var gotLimit any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				gotLimit = args[0]
				return &fakePostRows{data: []model.Post{sample}}, nil
			},
		}
		got, err := ListRecentPosts(context.Background(), p, 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, 5, gotLimit)
	})

	t.Run("ListRecent query err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("query")
			},
		}
		_, err := ListRecentPosts(context.Background(), p, 5)
		require.Error(t, err)
	})

	t.Run("ListByUser ok", func(t *testing.T) {
		var gotUser any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				gotUser = args[0]
				return &fakePostRows{data: []model.Post{sample, sample}}, nil
			},
		}
		got, err := ListPostsByUser(context.Background(), p, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 2, gotUser)
	})

	t.Run("ListByUser scan err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakePostRows{data: []model.Post{sample}, scanErr: errors.New("scan")}, nil
			},
		}
		_, err := ListPostsByUser(context.Background(), p, 2)
		require.Error(t, err)
	})

	t.Run("ListByUser rows err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakePostRows{err: errors.New("rows")}, nil
			},
		}
		_, err := ListPostsByUser(context.Background(), p, 2)
		require.Error(t, err)
	})

	t.Run("Owner ok", func(t *testing.T) {
		owner := model.User{ID: 2, FirstName: "Ada", LastName: "Lovelace", ImageURL: model.DefaultImageURL}
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{user: &owner}
			},
		}
		got, err := GetPostOwner(context.Background(), p, 1)
		require.NoError(t, err)
		require.Equal(t, 2, got.ID)
	})

	t.Run("Owner not found", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetPostOwner(context.Background(), p, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update ok", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdatePost(context.Background(), p, &sample))
	})

	t.Run("Update not found", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, UpdatePost(context.Background(), p, &sample), ErrNotFound)
	})

	t.Run("Update err", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("exec")
			},
		}
		require.Error(t, UpdatePost(context.Background(), p, &sample))
	})

	t.Run("Delete ok", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeletePost(context.Background(), p, 1))
	})

	t.Run("Delete err", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("exec")
			},
		}
		require.Error(t, DeletePost(context.Background(), p, 1))
	})
}
