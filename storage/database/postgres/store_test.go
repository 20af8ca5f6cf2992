package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core"
)

func TestNewQuery(t *testing.T) {
	q, err := newQuery(core.MCQCollection, core.Filter{"status": "active", "id": "abc", "tags": "go"})
	require.NoError(t, err)

	assert.Equal(t,
		" WHERE collection = $1 AND id = $2 AND data -> $3::text @> $4::jsonb AND data -> $5::text @> $6::jsonb",
		q.whereClause(),
	)
	assert.Equal(t, []interface{}{"mcqs", "abc", "status", `"active"`, "tags", `"go"`}, q.args)
}

func TestQueryOrderBy(t *testing.T) {
	q, err := newQuery(core.NoticeCollection, core.Filter{})
	require.NoError(t, err)

	orderBy := q.orderBy([]core.DBOrdering{{Field: "isSticky"}, {Field: "createdAt"}})
	assert.Equal(t, " ORDER BY data -> $2::text DESC, created_at DESC, seq DESC", orderBy)
	assert.Equal(t, []interface{}{"notices", "isSticky"}, q.args)

	q, err = newQuery(core.CourseCollection, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY seq DESC", q.orderBy(nil))
}
