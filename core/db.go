package core

import (
	"context"
)

// Collections
const (
	UserCollection     = "users"
	CategoryCollection = "categories"
	MCQCollection      = "mcqs"
	QuizCollection     = "quizzes"
	QuestionCollection = "questions"
	NewsCollection     = "news"
	NoticeCollection   = "notices"
	CourseCollection   = "courses"
	CMSPageCollection  = "cms_pages"
	SettingsCollection = "site_settings"
)

// ContentCollections hold documents that may reference a category through categoryId/subcategoryId.
var ContentCollections = []string{
	MCQCollection,
	QuizCollection,
	QuestionCollection,
	NewsCollection,
	NoticeCollection,
	CourseCollection,
}

type (
	// Document is anything a DocumentStore can persist.
	Document interface {
		GetID() string
	}

	// Filter matches documents on JSON field names.
	// A value matches a scalar field by equality and an array field by membership.
	Filter map[string]interface{}

	// DocumentStore is the persistence layer shared by every service.
	// Get & FindOne decode into a pointer to a struct; Find decodes into a pointer to a slice.
	DocumentStore interface {
		Insert(ctx context.Context, collection string, doc Document) error
		Replace(ctx context.Context, collection string, doc Document) error
		Get(ctx context.Context, collection, id string, out interface{}) error
		FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error
		Find(ctx context.Context, collection string, filter Filter, orderings []DBOrdering, out interface{}) error
		Count(ctx context.Context, collection string, filter Filter) (int64, error)
		Delete(ctx context.Context, collection, id string) error
		Close(ctx context.Context) error
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// DefaultOrdering lists documents newest first.
var DefaultOrdering = []DBOrdering{{Field: "createdAt", Ascending: false}}
