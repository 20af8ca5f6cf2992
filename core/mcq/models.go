package mcq

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/contentadmin/core"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Option struct {
	ID        string `json:"id" bson:"id"`
	Text      string `json:"text" bson:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect" bson:"isCorrect"`
}

// MCQ is a multiple choice question. Having exactly one correct option is left to the client.
type MCQ struct {
	ID            string    `json:"id" bson:"_id"`
	Question      string    `json:"question" bson:"question"`
	Options       []Option  `json:"options" bson:"options"`
	Explanation   string    `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Difficulty    string    `json:"difficulty" bson:"difficulty"`
	CategoryID    string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SubcategoryID string    `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Tags          []string  `json:"tags" bson:"tags"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (m MCQ) GetID() string { return m.ID }

func (m *MCQ) apply(data Input, now time.Time) {
	m.Question = data.Question
	m.Options = data.Options
	m.Explanation = data.Explanation
	m.Difficulty = data.Difficulty
	m.CategoryID = data.CategoryID
	m.SubcategoryID = data.SubcategoryID
	m.Tags = data.Tags
	m.Status = data.Status
	m.UpdatedAt = now
}

type Input struct {
	Question      string   `json:"question" validate:"required"`
	Options       []Option `json:"options" validate:"dive"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status" validate:"required,oneof=active inactive"`
}

func NewInput(m MCQ) Input {
	return Input{
		Question:      m.Question,
		Options:       m.Options,
		Explanation:   m.Explanation,
		Difficulty:    m.Difficulty,
		CategoryID:    m.CategoryID,
		SubcategoryID: m.SubcategoryID,
		Tags:          m.Tags,
		Status:        m.Status,
	}
}

// Clean trims the input, applies defaults and gives an ID to new options.
func (in *Input) Clean() {
	in.Question = core.CleanString(in.Question)
	in.Explanation = core.CleanString(in.Explanation)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.SubcategoryID = core.CleanString(in.SubcategoryID)
	in.Tags = core.CleanTags(in.Tags)
	in.Difficulty = core.CleanString(in.Difficulty, true /* lower */)
	if in.Difficulty == "" {
		in.Difficulty = DifficultyMedium
	}
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusActive
	}

	options := make([]Option, 0, len(in.Options))
	for _, opt := range in.Options {
		opt.ID = core.CleanString(opt.ID)
		if opt.ID == "" {
			opt.ID = core.NewID()
		}
		opt.Text = core.CleanString(opt.Text)
		options = append(options, opt)
	}
	in.Options = options
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}

type QueryFilter struct {
	Status     string `query:"status"`
	Difficulty string `query:"difficulty"`
	Category   string `query:"category"`
}

func (qf QueryFilter) toFilter() core.Filter {
	filter := make(core.Filter)
	if status := core.CleanString(qf.Status, true /* lower */); status != "" {
		filter["status"] = status
	}
	if difficulty := core.CleanString(qf.Difficulty, true /* lower */); difficulty != "" {
		filter["difficulty"] = difficulty
	}
	if category := core.CleanString(qf.Category); category != "" {
		filter["categoryId"] = category
	}
	return filter
}
