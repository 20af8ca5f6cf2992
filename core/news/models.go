package news

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

type News struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Slug          string    `json:"slug" bson:"slug"`
	Content       string    `json:"content" bson:"content"`
	Excerpt       string    `json:"excerpt" bson:"excerpt"`
	FeaturedImage string    `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	Status        string    `json:"status" bson:"status"`
	PublishDate   time.Time `json:"publishDate" bson:"publishDate"` // UTC
	Author        string    `json:"author" bson:"author"`
	CategoryID    string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SubcategoryID string    `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Tags          []string  `json:"tags" bson:"tags"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (n News) GetID() string { return n.ID }

func (n *News) apply(data Input, now time.Time) {
	n.Title = data.Title
	n.Slug = data.Slug
	n.Content = data.Content
	n.Excerpt = data.Excerpt
	n.FeaturedImage = data.FeaturedImage
	n.Status = data.Status
	n.PublishDate = data.PublishDate
	n.CategoryID = data.CategoryID
	n.SubcategoryID = data.SubcategoryID
	n.Tags = data.Tags
	n.UpdatedAt = now
}

type Input struct {
	Title         string    `json:"title" validate:"required"`
	Slug          string    `json:"slug" validate:"required"`
	Content       string    `json:"content" validate:"required"`
	Excerpt       string    `json:"excerpt" validate:"required"`
	FeaturedImage string    `json:"featuredImage"`
	Status        string    `json:"status" validate:"required,oneof=published draft"`
	PublishDate   time.Time `json:"publishDate"`
	CategoryID    string    `json:"categoryId"`
	SubcategoryID string    `json:"subcategoryId"`
	Tags          []string  `json:"tags"`
}

func NewInput(n News) Input {
	return Input{
		Title:         n.Title,
		Slug:          n.Slug,
		Content:       n.Content,
		Excerpt:       n.Excerpt,
		FeaturedImage: n.FeaturedImage,
		Status:        n.Status,
		PublishDate:   n.PublishDate,
		CategoryID:    n.CategoryID,
		SubcategoryID: n.SubcategoryID,
		Tags:          n.Tags,
	}
}

func (in *Input) Clean() {
	in.Title = core.CleanString(in.Title)
	in.Excerpt = core.CleanString(in.Excerpt)
	in.FeaturedImage = core.CleanString(in.FeaturedImage)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.SubcategoryID = core.CleanString(in.SubcategoryID)
	in.Tags = core.CleanTags(in.Tags)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusDraft
	}
	if in.PublishDate.IsZero() {
		in.PublishDate = core.Now()
	}
	in.PublishDate = in.PublishDate.UTC().Truncate(time.Millisecond)
	in.Slug = core.Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = core.Slugify(in.Title)
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
