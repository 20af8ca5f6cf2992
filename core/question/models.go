package question

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

// Question is a free-form question & answer entry.
type Question struct {
	ID            string    `json:"id" bson:"_id"`
	Question      string    `json:"question" bson:"question"`
	Answer        string    `json:"answer" bson:"answer"`
	CategoryID    string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SubcategoryID string    `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Tags          []string  `json:"tags" bson:"tags"`
	Status        string    `json:"status" bson:"status"`
	CreatedBy     string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (q Question) GetID() string { return q.ID }

func (q *Question) apply(data Input, now time.Time) {
	q.Question = data.Question
	q.Answer = data.Answer
	q.CategoryID = data.CategoryID
	q.SubcategoryID = data.SubcategoryID
	q.Tags = data.Tags
	q.Status = data.Status
	q.UpdatedAt = now
}

type Input struct {
	Question      string   `json:"question" validate:"required"`
	Answer        string   `json:"answer" validate:"required"`
	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status" validate:"required,oneof=published draft"`
}

func NewInput(q Question) Input {
	return Input{
		Question:      q.Question,
		Answer:        q.Answer,
		CategoryID:    q.CategoryID,
		SubcategoryID: q.SubcategoryID,
		Tags:          q.Tags,
		Status:        q.Status,
	}
}

func (in *Input) Clean() {
	in.Question = core.CleanString(in.Question)
	in.Answer = core.CleanString(in.Answer)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.SubcategoryID = core.CleanString(in.SubcategoryID)
	in.Tags = core.CleanTags(in.Tags)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusDraft
	}
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}

type QueryFilter struct {
	Status   string `query:"status"`
	Category string `query:"category"`
}

func (qf QueryFilter) toFilter() core.Filter {
	filter := make(core.Filter)
	if status := core.CleanString(qf.Status, true /* lower */); status != "" {
		filter["status"] = status
	}
	if category := core.CleanString(qf.Category); category != "" {
		filter["categoryId"] = category
	}
	return filter
}
