package notice

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

// Types
const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeSuccess = "success"
	TypeError   = "error"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

var errExpiryBeforePublish = "expiry date cannot precede the publish date"

type Notice struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Content     string     `json:"content" bson:"content"`
	Type        string     `json:"type" bson:"type"`
	Priority    string     `json:"priority" bson:"priority"`
	Status      string     `json:"status" bson:"status"`
	PublishDate time.Time  `json:"publishDate" bson:"publishDate"`                   // UTC
	ExpiryDate  *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"` // UTC
	CategoryID  string     `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	Tags        []string   `json:"tags" bson:"tags"`
	IsSticky    bool       `json:"isSticky" bson:"isSticky"`
	ViewCount   int        `json:"viewCount" bson:"viewCount"`
	Author      string     `json:"author" bson:"author"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (n Notice) GetID() string { return n.ID }

func (n *Notice) apply(data Input, now time.Time) {
	n.Title = data.Title
	n.Content = data.Content
	n.Type = data.Type
	n.Priority = data.Priority
	n.Status = data.Status
	n.PublishDate = data.PublishDate
	n.ExpiryDate = data.ExpiryDate
	n.CategoryID = data.CategoryID
	n.Tags = data.Tags
	n.IsSticky = data.IsSticky
	n.UpdatedAt = now
}

type Input struct {
	Title       string     `json:"title" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	Type        string     `json:"type" validate:"required,oneof=info warning success error"`
	Priority    string     `json:"priority" validate:"required,oneof=low medium high urgent"`
	Status      string     `json:"status" validate:"required,oneof=published draft archived"`
	PublishDate time.Time  `json:"publishDate"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	CategoryID  string     `json:"categoryId"`
	Tags        []string   `json:"tags"`
	IsSticky    bool       `json:"isSticky"`
}

func NewInput(n Notice) Input {
	return Input{
		Title:       n.Title,
		Content:     n.Content,
		Type:        n.Type,
		Priority:    n.Priority,
		Status:      n.Status,
		PublishDate: n.PublishDate,
		ExpiryDate:  n.ExpiryDate,
		CategoryID:  n.CategoryID,
		Tags:        n.Tags,
		IsSticky:    n.IsSticky,
	}
}

func (in *Input) Clean() {
	in.Title = core.CleanString(in.Title)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.Tags = core.CleanTags(in.Tags)

	in.Type = core.CleanString(in.Type, true /* lower */)
	if in.Type == "" {
		in.Type = TypeInfo
	}
	in.Priority = core.CleanString(in.Priority, true /* lower */)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusDraft
	}

	if in.PublishDate.IsZero() {
		in.PublishDate = core.Now()
	}
	in.PublishDate = in.PublishDate.UTC().Truncate(time.Millisecond)
	if in.ExpiryDate != nil {
		expiry := in.ExpiryDate.UTC().Truncate(time.Millisecond)
		in.ExpiryDate = &expiry
	}
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.ExpiryDate != nil && in.ExpiryDate.Before(in.PublishDate) {
		return core.NewValidationError(
			errors.New(errExpiryBeforePublish),
			core.FieldError{Field: "expiryDate", Error: errExpiryBeforePublish},
		)
	}
	return nil
}

type QueryFilter struct {
	Status   string `query:"status"`
	Type     string `query:"type"`
	Category string `query:"category"`
}

func (qf QueryFilter) toFilter() core.Filter {
	filter := make(core.Filter)
	if status := core.CleanString(qf.Status, true /* lower */); status != "" {
		filter["status"] = status
	}
	if typ := core.CleanString(qf.Type, true /* lower */); typ != "" {
		filter["type"] = typ
	}
	if category := core.CleanString(qf.Category); category != "" {
		filter["categoryId"] = category
	}
	return filter
}
