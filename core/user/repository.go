package user

import (
	"context"

	"github.com/trezcool/contentadmin/core"
)

// document is the stored form of a User: unlike the API form, it keeps the password hash.
type document struct {
	User         `bson:",inline"`
	PasswordHash []byte `json:"passwordHash,omitempty" bson:"passwordHash,omitempty"`
}

func toDocument(usr User) document {
	return document{User: usr, PasswordHash: usr.PasswordHash}
}

func (d document) toUser() User {
	usr := d.User
	usr.PasswordHash = d.PasswordHash
	return usr
}

type repository struct {
	docs *core.Collection[document]
}

var _ Repository = (*repository)(nil)

func NewRepository(db core.DocumentStore) Repository {
	return &repository{docs: core.NewCollection[document](db, core.UserCollection, "user")}
}

func (repo *repository) Create(ctx context.Context, usr User) (User, error) {
	doc, err := repo.docs.Create(ctx, toDocument(usr))
	return doc.toUser(), err
}

func (repo *repository) Get(ctx context.Context, id string) (User, error) {
	doc, err := repo.docs.Get(ctx, id)
	return doc.toUser(), err
}

func (repo *repository) FindOne(ctx context.Context, filter core.Filter) (User, error) {
	doc, err := repo.docs.FindOne(ctx, filter)
	return doc.toUser(), err
}

func (repo *repository) Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]User, error) {
	docs, err := repo.docs.Query(ctx, filter, orderings...)
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toUser())
	}
	return users, nil
}

func (repo *repository) Update(ctx context.Context, usr User) (User, error) {
	doc, err := repo.docs.Update(ctx, toDocument(usr))
	return doc.toUser(), err
}

func (repo *repository) Delete(ctx context.Context, id string) error {
	return repo.docs.Delete(ctx, id)
}
