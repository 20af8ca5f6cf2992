package quiz

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/contentadmin/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Quiz references its MCQs by ID, in order.
type Quiz struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	TimeLimit     int       `json:"timeLimit" bson:"timeLimit"` // minutes, 0: unlimited
	PassingScore  int       `json:"passingScore" bson:"passingScore"`
	Status        string    `json:"status" bson:"status"`
	CategoryID    string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SubcategoryID string    `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Tags          []string  `json:"tags" bson:"tags"`
	Questions     []string  `json:"questions" bson:"questions"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (q Quiz) GetID() string { return q.ID }

func (q *Quiz) apply(data Input, now time.Time) {
	q.Title = data.Title
	q.Description = data.Description
	q.TimeLimit = data.TimeLimit
	if data.PassingScore != nil {
		q.PassingScore = *data.PassingScore
	}
	q.Status = data.Status
	q.CategoryID = data.CategoryID
	q.SubcategoryID = data.SubcategoryID
	q.Tags = data.Tags
	q.Questions = data.Questions
	q.UpdatedAt = now
}

type Input struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	TimeLimit     int      `json:"timeLimit" validate:"gte=0"`
	PassingScore  *int     `json:"passingScore" validate:"required,gte=0,lte=100"`
	Status        string   `json:"status" validate:"required,oneof=active inactive"`
	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	Tags          []string `json:"tags"`
	Questions     []string `json:"questions"`
}

func NewInput(q Quiz) Input {
	score := q.PassingScore
	return Input{
		Title:         q.Title,
		Description:   q.Description,
		TimeLimit:     q.TimeLimit,
		PassingScore:  &score,
		Status:        q.Status,
		CategoryID:    q.CategoryID,
		SubcategoryID: q.SubcategoryID,
		Tags:          q.Tags,
		Questions:     q.Questions,
	}
}

func (in *Input) Clean() {
	in.Title = core.CleanString(in.Title)
	in.Description = core.CleanString(in.Description)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.SubcategoryID = core.CleanString(in.SubcategoryID)
	in.Tags = core.CleanTags(in.Tags)
	in.Questions = core.CleanTags(in.Questions)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusActive
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
