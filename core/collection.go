package core

import (
	"context"

	"github.com/pkg/errors"
)

// Collection is a typed view over one DocumentStore collection.
// Domain repositories are backed by it; missing documents surface as NotFoundError(resource).
type Collection[T Document] struct {
	db       DocumentStore
	name     string
	resource string
}

func NewCollection[T Document](db DocumentStore, name, resource string) *Collection[T] {
	return &Collection[T]{db: db, name: name, resource: resource}
}

func (c *Collection[T]) notFound(err error) error {
	if errors.Cause(err) == ErrNoDocument {
		return NewNotFoundError(c.resource)
	}
	return err
}

func (c *Collection[T]) Create(ctx context.Context, doc T) (T, error) {
	if err := c.db.Insert(ctx, c.name, doc); err != nil {
		var zero T
		return zero, errors.Wrapf(err, "inserting %s", c.resource)
	}
	return doc, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	if err := c.db.Get(ctx, c.name, id, &doc); err != nil {
		var zero T
		return zero, c.notFound(err)
	}
	return doc, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	var doc T
	if err := c.db.FindOne(ctx, c.name, filter, &doc); err != nil {
		var zero T
		return zero, c.notFound(err)
	}
	return doc, nil
}

// Query returns the documents matching filter, newest first unless orderings are given.
func (c *Collection[T]) Query(ctx context.Context, filter Filter, orderings ...DBOrdering) ([]T, error) {
	if len(orderings) == 0 {
		orderings = DefaultOrdering
	}
	docs := make([]T, 0)
	if err := c.db.Find(ctx, c.name, filter, orderings, &docs); err != nil {
		return nil, errors.Wrapf(err, "querying %s", c.name)
	}
	return docs, nil
}

func (c *Collection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.db.Count(ctx, c.name, filter)
	return n, errors.Wrapf(err, "counting %s", c.name)
}

func (c *Collection[T]) Update(ctx context.Context, doc T) (T, error) {
	if err := c.db.Replace(ctx, c.name, doc); err != nil {
		var zero T
		return zero, c.notFound(err)
	}
	return doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.notFound(c.db.Delete(ctx, c.name, id))
}
