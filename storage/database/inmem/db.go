package inmemdb

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

// ErrDuplicateKey mirrors the unique indexes of the persistent stores.
var ErrDuplicateKey = errors.New("duplicate key")

// uniqueFields per collection
var uniqueFields = map[string][]string{
	core.UserCollection:     {"email"},
	core.CategoryCollection: {"slug"},
	core.NewsCollection:     {"slug"},
	core.CourseCollection:   {"slug"},
	core.CMSPageCollection:  {"slug"},
}

type record struct {
	raw    []byte
	fields map[string]interface{}
	seq    int64
}

type table map[string]*record

// DB keeps documents as JSON in memory. It is meant for tests & local development.
type DB struct {
	mutex  sync.RWMutex
	seq    int64
	tables map[string]table
}

var _ core.DocumentStore = (*DB)(nil)

func NewDB() *DB {
	return &DB{tables: make(map[string]table)}
}

func encode(doc core.Document) (*record, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}
	var fields map[string]interface{}
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(err, "decoding document fields")
	}
	return &record{raw: raw, fields: fields}, nil
}

// canonical returns v as it would read back from a decoded JSON document.
func canonical(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err = json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func (rec *record) matches(filter core.Filter) bool {
	for key, want := range filter {
		want = canonical(want)
		got := rec.fields[key]
		if reflect.DeepEqual(got, want) {
			continue
		}
		items, ok := got.([]interface{})
		if !ok {
			return false
		}
		var found bool
		for _, item := range items {
			if reflect.DeepEqual(item, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compare orders JSON values: nil first, then bools, numbers & strings (RFC 3339 strings as times).
func compare(a, b interface{}) int {
	switch av := a.(type) {
	case nil:
		if b == nil {
			return 0
		}
		return -1
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 1
		}
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 1
		}
		at, aErr := time.Parse(time.RFC3339Nano, av)
		bt, bErr := time.Parse(time.RFC3339Nano, bv)
		if aErr == nil && bErr == nil {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
		return strings.Compare(av, bv)
	}
	if b == nil {
		return 1
	}
	return 0
}

func (db *DB) checkUnique(collection string, rec *record, id string) error {
	for _, fld := range uniqueFields[collection] {
		val, ok := rec.fields[fld]
		if !ok || val == "" {
			continue
		}
		for otherID, other := range db.tables[collection] {
			if otherID != id && reflect.DeepEqual(other.fields[fld], val) {
				return errors.Wrapf(ErrDuplicateKey, "%s.%s", collection, fld)
			}
		}
	}
	return nil
}

func (db *DB) Insert(_ context.Context, collection string, doc core.Document) error {
	rec, err := encode(doc)
	if err != nil {
		return err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	tbl, ok := db.tables[collection]
	if !ok {
		tbl = make(table)
		db.tables[collection] = tbl
	}
	if _, exists := tbl[doc.GetID()]; exists {
		return errors.Wrapf(ErrDuplicateKey, "%s.id", collection)
	}
	if err = db.checkUnique(collection, rec, doc.GetID()); err != nil {
		return err
	}
	db.seq++
	rec.seq = db.seq
	tbl[doc.GetID()] = rec
	return nil
}

func (db *DB) Replace(_ context.Context, collection string, doc core.Document) error {
	rec, err := encode(doc)
	if err != nil {
		return err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	orig, ok := db.tables[collection][doc.GetID()]
	if !ok {
		return core.ErrNoDocument
	}
	if err = db.checkUnique(collection, rec, doc.GetID()); err != nil {
		return err
	}
	rec.seq = orig.seq
	db.tables[collection][doc.GetID()] = rec
	return nil
}

func (db *DB) Get(_ context.Context, collection, id string, out interface{}) error {
	db.mutex.RLock()
	rec, ok := db.tables[collection][id]
	db.mutex.RUnlock()

	if !ok {
		return core.ErrNoDocument
	}
	return errors.Wrap(json.Unmarshal(rec.raw, out), "decoding document")
}

// query returns the matching records, ordered. Ties keep the most recently inserted first.
func (db *DB) query(collection string, filter core.Filter, orderings []core.DBOrdering) []*record {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	recs := make([]*record, 0, len(db.tables[collection]))
	for _, rec := range db.tables[collection] {
		if rec.matches(filter) {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		for _, ord := range orderings {
			c := compare(recs[i].fields[ord.Field], recs[j].fields[ord.Field])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return recs[i].seq > recs[j].seq
	})
	return recs
}

func (db *DB) FindOne(_ context.Context, collection string, filter core.Filter, out interface{}) error {
	recs := db.query(collection, filter, nil)
	if len(recs) == 0 {
		return core.ErrNoDocument
	}
	return errors.Wrap(json.Unmarshal(recs[0].raw, out), "decoding document")
}

func (db *DB) Find(_ context.Context, collection string, filter core.Filter, orderings []core.DBOrdering, out interface{}) error {
	recs := db.query(collection, filter, orderings)

	raws := make([][]byte, 0, len(recs))
	for _, rec := range recs {
		raws = append(raws, rec.raw)
	}
	buf := bytes.NewBufferString("[")
	buf.Write(bytes.Join(raws, []byte(",")))
	buf.WriteString("]")
	return errors.Wrap(json.Unmarshal(buf.Bytes(), out), "decoding documents")
}

func (db *DB) Count(_ context.Context, collection string, filter core.Filter) (int64, error) {
	return int64(len(db.query(collection, filter, nil))), nil
}

func (db *DB) Delete(_ context.Context, collection, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.tables[collection][id]; !ok {
		return core.ErrNoDocument
	}
	delete(db.tables[collection], id)
	return nil
}

func (db *DB) Close(context.Context) error {
	return nil
}
