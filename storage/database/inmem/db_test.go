package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core"
)

type doc struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug,omitempty"`
	Rank      int       `json:"rank"`
	Sticky    bool      `json:"sticky"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d doc) GetID() string { return d.ID }

func TestDB(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	coll := core.CourseCollection
	now := core.Now()

	docs := []doc{
		{ID: "a", Slug: "a", Rank: 2, Tags: []string{"go", "db"}, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "b", Slug: "b", Rank: 1, Sticky: true, Tags: []string{"js"}, CreatedAt: now.Add(-time.Hour)},
		{ID: "c", Slug: "c", Rank: 2, Tags: []string{"go"}, CreatedAt: now},
	}
	for _, d := range docs {
		require.NoError(t, db.Insert(ctx, coll, d))
	}

	t.Run("insert duplicates", func(t *testing.T) {
		err := db.Insert(ctx, coll, doc{ID: "a"})
		assert.Equal(t, ErrDuplicateKey, errors.Cause(err))

		err = db.Insert(ctx, coll, doc{ID: "d", Slug: "b"})
		assert.Equal(t, ErrDuplicateKey, errors.Cause(err))
	})

	t.Run("get", func(t *testing.T) {
		var got doc
		require.NoError(t, db.Get(ctx, coll, "b", &got))
		assert.Equal(t, docs[1], got)

		assert.Equal(t, core.ErrNoDocument, db.Get(ctx, coll, "x", &got))
		assert.Equal(t, core.ErrNoDocument, db.Get(ctx, "unknown", "a", &got))
	})

	t.Run("find", func(t *testing.T) {
		tests := []struct {
			name      string
			filter    core.Filter
			orderings []core.DBOrdering
			wantIDs   []string
		}{
			{name: "newest first", orderings: core.DefaultOrdering, wantIDs: []string{"c", "b", "a"}},
			{name: "no ordering: last inserted first", wantIDs: []string{"c", "b", "a"}},
			{name: "scalar filter", filter: core.Filter{"rank": 2}, wantIDs: []string{"c", "a"}},
			{name: "array membership", filter: core.Filter{"tags": "go"}, orderings: core.DefaultOrdering, wantIDs: []string{"c", "a"}},
			{name: "no match", filter: core.Filter{"tags": "rust"}, wantIDs: []string{}},
			{
				name:      "several orderings",
				orderings: []core.DBOrdering{{Field: "sticky"}, {Field: "rank", Ascending: true}, {Field: "createdAt"}},
				wantIDs:   []string{"b", "c", "a"},
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				var got []doc
				require.NoError(t, db.Find(ctx, coll, tc.filter, tc.orderings, &got))

				ids := make([]string, 0, len(got))
				for _, d := range got {
					ids = append(ids, d.ID)
				}
				assert.Equal(t, tc.wantIDs, ids)
			})
		}
	})

	t.Run("find one & count", func(t *testing.T) {
		var got doc
		require.NoError(t, db.FindOne(ctx, coll, core.Filter{"slug": "a"}, &got))
		assert.Equal(t, "a", got.ID)
		assert.Equal(t, core.ErrNoDocument, db.FindOne(ctx, coll, core.Filter{"slug": "z"}, &got))

		n, err := db.Count(ctx, coll, core.Filter{"tags": "go"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("replace", func(t *testing.T) {
		upd := docs[0]
		upd.Rank = 5
		require.NoError(t, db.Replace(ctx, coll, upd))

		var got doc
		require.NoError(t, db.Get(ctx, coll, "a", &got))
		assert.Equal(t, 5, got.Rank)

		upd.Slug = "c"
		assert.Equal(t, ErrDuplicateKey, errors.Cause(db.Replace(ctx, coll, upd)))
		assert.Equal(t, core.ErrNoDocument, db.Replace(ctx, coll, doc{ID: "x"}))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, db.Delete(ctx, coll, "a"))
		assert.Equal(t, core.ErrNoDocument, db.Delete(ctx, coll, "a"))

		n, err := db.Count(ctx, coll, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}
