package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"postboard/config"
	"postboard/db"
	"postboard/domain"
	"postboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.PostStore {
	t.Helper()
	c := config.DB{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "posts.db"),
	}
	pool, err := db.Open(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	require.NoError(t, db.Migrate(pool, c.Driver))
	return store.New(pool, store.SQLite)
}

func strp(s string) *string { return &s }

func input(title string, category int64) domain.PostInput {
	return domain.PostInput{
		Title:       title,
		Image:       "https://example.com/" + title + ".png",
		CategoryID:  category,
		Description: strp("about " + title),
		Content:     "content of " + title,
		StatusID:    1,
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, input("first", 2))
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "first", p.Title)
	assert.Equal(t, int64(2), p.CategoryID)
	require.NotNil(t, p.Description)
	assert.Equal(t, "about first", *p.Description)
}

func TestCreateWithoutDescription(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := input("bare", 1)
	in.Description = nil
	id, err := s.Create(ctx, in)
	require.NoError(t, err)

	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p.Description)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, err := s.Create(ctx, input("old", 1))
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, id, input("new", 4)))

	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", p.Title)
	assert.Equal(t, int64(4), p.CategoryID)
}

func TestUpdateMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, err := s.Create(ctx, input("kept", 1))
	require.NoError(t, err)

	err = s.Update(ctx, id+100, input("ghost", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", p.Title)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, err := s.Create(ctx, input("doomed", 1))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.ErrorIs(t, s.Delete(ctx, id), domain.ErrNotFound)
}

func TestListPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := s.Create(ctx, input(fmt.Sprintf("post%d", i), 1))
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, input("other", 2))
	require.NoError(t, err)

	page, err := s.List(ctx, domain.ListQuery{Page: 1, Limit: 5, CategoryID: int64p(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.TotalPosts)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
	require.Len(t, page.Posts, 5)
	for i := 1; i < len(page.Posts); i++ {
		assert.Greater(t, page.Posts[i-1].ID, page.Posts[i].ID)
	}
	assert.Equal(t, "post6", page.Posts[0].Title)

	page, err = s.List(ctx, domain.ListQuery{Page: 2, Limit: 5, CategoryID: int64p(1)})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.Nil(t, page.NextPage)
}

func TestListKeyword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := input("Learning FOO fast", 1)
	b := input("plain", 2)
	b.Description = strp("all about foo")
	c := input("plain again", 3)
	c.Content = "deep Foo dive"
	d := input("unrelated", 1)
	for _, in := range []domain.PostInput{a, b, c, d} {
		_, err := s.Create(ctx, in)
		require.NoError(t, err)
	}

	page, err := s.List(ctx, domain.ListQuery{Page: 1, Limit: 6, Keyword: "foo"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalPosts)
	assert.Len(t, page.Posts, 3)
	for _, p := range page.Posts {
		assert.NotEqual(t, "unrelated", p.Title)
	}

	page, err = s.List(ctx, domain.ListQuery{Page: 1, Limit: 6, Keyword: "foo", CategoryID: int64p(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPosts)
	assert.Equal(t, "Learning FOO fast", page.Posts[0].Title)
}

func TestListKeywordIsLiteral(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.Create(ctx, input("save 50% now", 1))
	require.NoError(t, err)
	_, err = s.Create(ctx, input("save 500 now", 1))
	require.NoError(t, err)

	page, err := s.List(ctx, domain.ListQuery{Page: 1, Limit: 6, Keyword: "50%"})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "save 50% now", page.Posts[0].Title)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	page, err := s.List(context.Background(), domain.ListQuery{Page: 1, Limit: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalPosts)
	assert.NotNil(t, page.Posts)
	assert.Nil(t, page.NextPage)
}

func TestStoreErrorOnClosedPool(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.DB.Close())

	_, err := s.List(context.Background(), domain.ListQuery{Page: 1, Limit: 6})
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list posts", storeErr.Op)
}

func int64p(v int64) *int64 { return &v }
