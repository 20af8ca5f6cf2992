package course

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/contentadmin/core"
)

// Statuses
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type Lesson struct {
	ID       string `json:"id" bson:"id"`
	Title    string `json:"title" bson:"title" validate:"required"`
	Content  string `json:"content" bson:"content" validate:"required"`
	Duration int    `json:"duration" bson:"duration" validate:"gte=0"` // minutes
	Order    int    `json:"order" bson:"order" validate:"gte=0"`
}

type Course struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Slug          string    `json:"slug" bson:"slug"`
	Description   string    `json:"description" bson:"description"`
	Instructor    string    `json:"instructor" bson:"instructor"`
	FeaturedImage string    `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	Status        string    `json:"status" bson:"status"`
	CategoryID    string    `json:"categoryId" bson:"categoryId"`
	SubcategoryID string    `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Duration      int       `json:"duration" bson:"duration"` // minutes
	Level         string    `json:"level" bson:"level"`
	Tags          []string  `json:"tags" bson:"tags"`
	Lessons       []Lesson  `json:"lessons" bson:"lessons"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (c Course) GetID() string { return c.ID }

func (c *Course) apply(data Input, now time.Time) {
	c.Title = data.Title
	c.Slug = data.Slug
	c.Description = data.Description
	c.Instructor = data.Instructor
	c.FeaturedImage = data.FeaturedImage
	if data.Price != nil {
		c.Price = *data.Price
	}
	c.Status = data.Status
	c.CategoryID = data.CategoryID
	c.SubcategoryID = data.SubcategoryID
	c.Duration = data.Duration
	c.Level = data.Level
	c.Tags = data.Tags
	c.Lessons = data.Lessons
	c.UpdatedAt = now
}

type Input struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Instructor    string   `json:"instructor" validate:"required"`
	FeaturedImage string   `json:"featuredImage"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Status        string   `json:"status" validate:"required,oneof=published draft"`
	CategoryID    string   `json:"categoryId" validate:"required"`
	SubcategoryID string   `json:"subcategoryId"`
	Duration      int      `json:"duration" validate:"gte=0"`
	Level         string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Tags          []string `json:"tags"`
	Lessons       []Lesson `json:"lessons" validate:"dive"`
}

func NewInput(c Course) Input {
	price := c.Price
	return Input{
		Title:         c.Title,
		Slug:          c.Slug,
		Description:   c.Description,
		Instructor:    c.Instructor,
		FeaturedImage: c.FeaturedImage,
		Price:         &price,
		Status:        c.Status,
		CategoryID:    c.CategoryID,
		SubcategoryID: c.SubcategoryID,
		Duration:      c.Duration,
		Level:         c.Level,
		Tags:          c.Tags,
		Lessons:       c.Lessons,
	}
}

// Clean trims the input, applies defaults, gives an ID to new lessons and sorts them by order.
func (in *Input) Clean() {
	in.Title = core.CleanString(in.Title)
	in.Description = core.CleanString(in.Description)
	in.Instructor = core.CleanString(in.Instructor)
	in.FeaturedImage = core.CleanString(in.FeaturedImage)
	in.CategoryID = core.CleanString(in.CategoryID)
	in.SubcategoryID = core.CleanString(in.SubcategoryID)
	in.Tags = core.CleanTags(in.Tags)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusDraft
	}
	in.Level = core.CleanString(in.Level, true /* lower */)
	if in.Level == "" {
		in.Level = LevelBeginner
	}
	in.Slug = core.Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = core.Slugify(in.Title)
	}

	lessons := make([]Lesson, 0, len(in.Lessons))
	for _, lesson := range in.Lessons {
		lesson.ID = core.CleanString(lesson.ID)
		if lesson.ID == "" {
			lesson.ID = core.NewID()
		}
		lesson.Title = core.CleanString(lesson.Title)
		lessons = append(lessons, lesson)
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
	in.Lessons = lessons
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}

type QueryFilter struct {
	Status   string `query:"status"`
	Level    string `query:"level"`
	Category string `query:"category"`
}

func (qf QueryFilter) toFilter() core.Filter {
	filter := make(core.Filter)
	if status := core.CleanString(qf.Status, true /* lower */); status != "" {
		filter["status"] = status
	}
	if level := core.CleanString(qf.Level, true /* lower */); level != "" {
		filter["level"] = level
	}
	if category := core.CleanString(qf.Category); category != "" {
		filter["categoryId"] = category
	}
	return filter
}
