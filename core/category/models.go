package category

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

// Levels
const (
	LevelMain = "main"
	LevelSub  = "sub"
)

// Category is a main category when ParentID is empty, a subcategory otherwise.
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (c Category) GetID() string { return c.ID }

func (c Category) IsSubcategory() bool {
	return c.ParentID != ""
}

func (c Category) Ref() *Ref {
	return &Ref{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// Ref is the short form of a parent Category.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// View is a Category as served by the API: with its parent populated & its direct subcategories.
type View struct {
	Category
	Parent        *Ref       `json:"parent,omitempty"`
	Subcategories []Category `json:"subcategories"`
}

// Input defines what information may be provided to create or modify a Category.
type Input struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parentId"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
}

// NewInput starts an update Input from the stored Category.
func NewInput(cat Category) Input {
	return Input{
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		ParentID:    cat.ParentID,
		Status:      cat.Status,
	}
}

// Clean trims the input and derives the slug from the name when none is given.
func (in *Input) Clean() {
	in.Name = core.CleanString(in.Name)
	in.Description = core.CleanString(in.Description)
	in.ParentID = core.CleanString(in.ParentID)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if in.Status == "" {
		in.Status = StatusActive
	}
	in.Slug = core.Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = core.Slugify(in.Name)
	}
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}

type QueryFilter struct {
	Level  string `query:"level"`
	Status string `query:"status"`
}

func (qf QueryFilter) matches(cat Category) bool {
	switch core.CleanString(qf.Level, true /* lower */) {
	case LevelMain:
		if cat.IsSubcategory() {
			return false
		}
	case LevelSub:
		if !cat.IsSubcategory() {
			return false
		}
	}
	if status := core.CleanString(qf.Status, true /* lower */); status != "" && cat.Status != status {
		return false
	}
	return true
}
