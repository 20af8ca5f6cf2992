package cms

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/contentadmin/core"
)

// Statuses
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

type Page struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Slug      string    `json:"slug" bson:"slug"`
	Content   string    `json:"content" bson:"content"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (p Page) GetID() string { return p.ID }

type Input struct {
	Title   string `json:"title" validate:"required"`
	Slug    string `json:"slug" validate:"required"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=published draft"`
}

func NewInput(p Page) Input {
	return Input{Title: p.Title, Slug: p.Slug, Content: p.Content, Status: p.Status}
}

func (in *Input) Clean() {
	in.Title = core.CleanString(in.Title)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusDraft
	}
	in.Slug = core.Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = core.Slugify(in.Title)
	}
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}
