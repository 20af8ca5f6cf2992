package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

// ErrDuplicateKey is returned when a write breaks a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

const uniqueViolation = "23505"

// DB stores every collection in the documents table, one JSONB document per row.
type DB struct {
	db *sqlx.DB
}

var _ core.DocumentStore = (*DB)(nil)

// SQL exposes the underlying connection pool, e.g. for migrations.
func (db *DB) SQL() *sql.DB {
	return db.db.DB
}

// query builds a parametrized statement from a documents filter.
type query struct {
	where []string
	args  []interface{}
}

func newQuery(collection string, filter core.Filter) (*query, error) {
	q := &query{where: []string{"collection = $1"}, args: []interface{}{collection}}

	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "id" {
			q.where = append(q.where, "id = "+q.arg(filter[key]))
			continue
		}
		// containment matches scalars by equality and arrays by membership
		val, err := json.Marshal(filter[key])
		if err != nil {
			return nil, errors.Wrapf(err, "encoding filter %s", key)
		}
		q.where = append(q.where, fmt.Sprintf("data -> %s::text @> %s::jsonb", q.arg(key), q.arg(string(val))))
	}
	return q, nil
}

func (q *query) arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *query) whereClause() string {
	return " WHERE " + strings.Join(q.where, " AND ")
}

func (q *query) orderBy(orderings []core.DBOrdering) string {
	terms := make([]string, 0, len(orderings)+1)
	for _, ord := range orderings {
		direction := "DESC"
		if ord.Ascending {
			direction = "ASC"
		}
		switch ord.Field {
		case "createdAt":
			terms = append(terms, "created_at "+direction)
		case "id":
			terms = append(terms, "id "+direction)
		default:
			terms = append(terms, fmt.Sprintf("data -> %s::text %s", q.arg(ord.Field), direction))
		}
	}
	terms = append(terms, "seq DESC")
	return " ORDER BY " + strings.Join(terms, ", ")
}

func wrapWriteErr(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.Wrap(ErrDuplicateKey, msg)
	}
	return errors.Wrap(err, msg)
}

func (db *DB) Insert(ctx context.Context, collection string, doc core.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	var meta struct {
		CreatedAt *time.Time `json:"createdAt"`
	}
	if err = json.Unmarshal(data, &meta); err != nil {
		return errors.Wrap(err, "decoding document metadata")
	}
	createdAt := core.Now()
	if meta.CreatedAt != nil && !meta.CreatedAt.IsZero() {
		createdAt = *meta.CreatedAt
	}

	_, err = db.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, created_at, data) VALUES ($1, $2, $3, $4::jsonb)",
		collection, doc.GetID(), createdAt, string(data),
	)
	if err != nil {
		return wrapWriteErr(err, "inserting document")
	}
	return nil
}

func (db *DB) Replace(ctx context.Context, collection string, doc core.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}

	res, err := db.db.ExecContext(ctx,
		"UPDATE documents SET data = $3::jsonb WHERE collection = $1 AND id = $2",
		collection, doc.GetID(), string(data),
	)
	if err != nil {
		return wrapWriteErr(err, "replacing document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "replacing document")
	}
	if n == 0 {
		return core.ErrNoDocument
	}
	return nil
}

func (db *DB) Get(ctx context.Context, collection, id string, out interface{}) error {
	return db.FindOne(ctx, collection, core.Filter{"id": id}, out)
}

func (db *DB) FindOne(ctx context.Context, collection string, filter core.Filter, out interface{}) error {
	q, err := newQuery(collection, filter)
	if err != nil {
		return err
	}

	var data string
	stmt := "SELECT data FROM documents" + q.whereClause() + " ORDER BY seq DESC LIMIT 1"
	if err = db.db.GetContext(ctx, &data, stmt, q.args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNoDocument
		}
		return errors.Wrap(err, "finding document")
	}
	return errors.Wrap(json.Unmarshal([]byte(data), out), "decoding document")
}

func (db *DB) Find(ctx context.Context, collection string, filter core.Filter, orderings []core.DBOrdering, out interface{}) error {
	q, err := newQuery(collection, filter)
	if err != nil {
		return err
	}

	var docs []string
	stmt := "SELECT data FROM documents" + q.whereClause() + q.orderBy(orderings)
	if err = db.db.SelectContext(ctx, &docs, stmt, q.args...); err != nil {
		return errors.Wrap(err, "finding documents")
	}
	return errors.Wrap(json.Unmarshal([]byte("["+strings.Join(docs, ",")+"]"), out), "decoding documents")
}

func (db *DB) Count(ctx context.Context, collection string, filter core.Filter) (int64, error) {
	q, err := newQuery(collection, filter)
	if err != nil {
		return 0, err
	}

	var n int64
	err = db.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM documents"+q.whereClause(), q.args...)
	return n, errors.Wrap(err, "counting documents")
}

func (db *DB) Delete(ctx context.Context, collection, id string) error {
	res, err := db.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = $1 AND id = $2", collection, id)
	if err != nil {
		return errors.Wrap(err, "deleting document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting document")
	}
	if n == 0 {
		return core.ErrNoDocument
	}
	return nil
}

func (db *DB) Close(context.Context) error {
	return db.db.Close()
}
