package settings

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/contentadmin/core"
)

// SingletonID is the ID of the one & only Settings document.
const SingletonID = "site-settings"

const DefaultPrimaryColor = "#3B82F6"

type (
	SocialLinks struct {
		Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
		Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
		Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
		LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	}

	Link struct {
		Text string `json:"text" bson:"text" validate:"required"`
		URL  string `json:"url" bson:"url" validate:"required"`
	}

	Footer struct {
		Copyright string `json:"copyright" bson:"copyright" validate:"required"`
		Links     []Link `json:"links" bson:"links" validate:"dive"`
	}
)

// Settings holds the site-wide configuration.
type Settings struct {
	ID           string      `json:"id" bson:"_id"`
	SiteName     string      `json:"siteName" bson:"siteName"`
	ContactEmail string      `json:"contactEmail" bson:"contactEmail"`
	Logo         string      `json:"logo,omitempty" bson:"logo,omitempty"`
	Favicon      string      `json:"favicon,omitempty" bson:"favicon,omitempty"`
	PrimaryColor string      `json:"primaryColor" bson:"primaryColor"`
	SocialLinks  SocialLinks `json:"socialLinks" bson:"socialLinks"`
	Footer       Footer      `json:"footer" bson:"footer"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (s Settings) GetID() string { return s.ID }

func (s *Settings) apply(data Input, now time.Time) {
	s.SiteName = data.SiteName
	s.ContactEmail = data.ContactEmail
	s.Logo = data.Logo
	s.Favicon = data.Favicon
	s.PrimaryColor = data.PrimaryColor
	s.SocialLinks = data.SocialLinks
	s.Footer = data.Footer
	s.UpdatedAt = now
}

type Input struct {
	SiteName     string      `json:"siteName" validate:"required"`
	ContactEmail string      `json:"contactEmail" validate:"required,email"`
	Logo         string      `json:"logo"`
	Favicon      string      `json:"favicon"`
	PrimaryColor string      `json:"primaryColor" validate:"required,hexcolor"`
	SocialLinks  SocialLinks `json:"socialLinks"`
	Footer       Footer      `json:"footer"`
}

func NewInput(s Settings) Input {
	return Input{
		SiteName:     s.SiteName,
		ContactEmail: s.ContactEmail,
		Logo:         s.Logo,
		Favicon:      s.Favicon,
		PrimaryColor: s.PrimaryColor,
		SocialLinks:  s.SocialLinks,
		Footer:       s.Footer,
	}
}

func (in *Input) Clean() {
	in.SiteName = core.CleanString(in.SiteName)
	in.ContactEmail = core.CleanString(in.ContactEmail, true /* lower */)
	in.Logo = core.CleanString(in.Logo)
	in.Favicon = core.CleanString(in.Favicon)
	in.PrimaryColor = core.CleanString(in.PrimaryColor)
	if in.PrimaryColor == "" {
		in.PrimaryColor = DefaultPrimaryColor
	}
	in.Footer.Copyright = core.CleanString(in.Footer.Copyright)
	if in.Footer.Links == nil {
		in.Footer.Links = []Link{}
	}
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}
