package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/contentadmin/core"
)

// ErrDuplicateKey is returned when a write breaks a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ core.DocumentStore = (*DB)(nil)

// Open connects to conf.Database.URI, waits for the server & makes sure the indexes exist.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err = ping(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := &DB{client: client, db: client.Database(conf.Database.Name)}
	if err = db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

// ping waits for the server to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = client.Ping(ctx, nil); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "mongodb ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "mongodb ping timeout")
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	indexes := map[string][]mongo.IndexModel{
		core.UserCollection:     {unique("email")},
		core.CategoryCollection: {unique("slug"), {Keys: bson.D{{Key: "parentId", Value: 1}}}},
		core.NewsCollection:     {unique("slug")},
		core.CourseCollection:   {unique("slug")},
		core.CMSPageCollection:  {unique("slug")},
		core.NoticeCollection:   {{Keys: bson.D{{Key: "isSticky", Value: -1}, {Key: "createdAt", Value: -1}}}},
	}
	for coll, models := range indexes {
		if _, err := db.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}

func toBSON(filter core.Filter) bson.M {
	m := make(bson.M, len(filter))
	for key, val := range filter {
		m[fieldName(key)] = val
	}
	return m
}

func fieldName(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}

func toSort(orderings []core.DBOrdering) bson.D {
	sort := make(bson.D, 0, len(orderings)+1)
	for _, ord := range orderings {
		direction := -1
		if ord.Ascending {
			direction = 1
		}
		sort = append(sort, bson.E{Key: fieldName(ord.Field), Value: direction})
	}
	return append(sort, bson.E{Key: "_id", Value: -1})
}

func wrapWriteErr(err error, msg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(ErrDuplicateKey, msg)
	}
	return errors.Wrap(err, msg)
}

func (db *DB) Insert(ctx context.Context, collection string, doc core.Document) error {
	if _, err := db.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return wrapWriteErr(err, "inserting document")
	}
	return nil
}

func (db *DB) Replace(ctx context.Context, collection string, doc core.Document) error {
	res, err := db.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": doc.GetID()}, doc)
	if err != nil {
		return wrapWriteErr(err, "replacing document")
	}
	if res.MatchedCount == 0 {
		return core.ErrNoDocument
	}
	return nil
}

func (db *DB) Get(ctx context.Context, collection, id string, out interface{}) error {
	return db.FindOne(ctx, collection, core.Filter{"id": id}, out)
}

func (db *DB) FindOne(ctx context.Context, collection string, filter core.Filter, out interface{}) error {
	err := db.db.Collection(collection).FindOne(ctx, toBSON(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.ErrNoDocument
	}
	return errors.Wrap(err, "finding document")
}

func (db *DB) Find(ctx context.Context, collection string, filter core.Filter, orderings []core.DBOrdering, out interface{}) error {
	opts := options.Find().SetSort(toSort(orderings))
	cursor, err := db.db.Collection(collection).Find(ctx, toBSON(filter), opts)
	if err != nil {
		return errors.Wrap(err, "finding documents")
	}
	return errors.Wrap(cursor.All(ctx, out), "decoding documents")
}

func (db *DB) Count(ctx context.Context, collection string, filter core.Filter) (int64, error) {
	n, err := db.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
	return n, errors.Wrap(err, "counting documents")
}

func (db *DB) Delete(ctx context.Context, collection, id string) error {
	res, err := db.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting document")
	}
	if res.DeletedCount == 0 {
		return core.ErrNoDocument
	}
	return nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
