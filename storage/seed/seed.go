package seed

import (
	"context"
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/settings"
	"github.com/trezcool/contentadmin/core/user"
)

//go:embed data.yaml
var defaultData []byte

type (
	categoryData struct {
		Name          string         `yaml:"name"`
		Slug          string         `yaml:"slug"`
		Description   string         `yaml:"description"`
		Subcategories []categoryData `yaml:"subcategories"`
	}

	linkData struct {
		Text string `yaml:"text"`
		URL  string `yaml:"url"`
	}

	settingsData struct {
		SiteName     string            `yaml:"siteName"`
		Logo         string            `yaml:"logo"`
		Favicon      string            `yaml:"favicon"`
		PrimaryColor string            `yaml:"primaryColor"`
		ContactEmail string            `yaml:"contactEmail"`
		SocialLinks  map[string]string `yaml:"socialLinks"`
		Footer       struct {
			Copyright string     `yaml:"copyright"`
			Links     []linkData `yaml:"links"`
		} `yaml:"footer"`
	}

	// Data is the initial content of a fresh installation.
	Data struct {
		Categories []categoryData `yaml:"categories"`
		Settings   settingsData   `yaml:"settings"`
	}
)

// Parse reads seed Data from YAML.
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, errors.Wrap(err, "parsing seed data")
	}
	return data, nil
}

// DefaultData returns the embedded seed Data.
func DefaultData() Data {
	data, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}
	return data
}

func (sd settingsData) input() settings.Input {
	in := settings.Input{
		SiteName:     sd.SiteName,
		ContactEmail: sd.ContactEmail,
		Logo:         sd.Logo,
		Favicon:      sd.Favicon,
		PrimaryColor: sd.PrimaryColor,
		SocialLinks: settings.SocialLinks{
			Facebook:  sd.SocialLinks["facebook"],
			Twitter:   sd.SocialLinks["twitter"],
			Instagram: sd.SocialLinks["instagram"],
			LinkedIn:  sd.SocialLinks["linkedin"],
		},
		Footer: settings.Footer{Copyright: sd.Footer.Copyright},
	}
	for _, lnk := range sd.Footer.Links {
		in.Footer.Links = append(in.Footer.Links, settings.Link{Text: lnk.Text, URL: lnk.URL})
	}
	return in
}

// Seeder bootstraps a fresh installation. Each step is skipped when its data already exists.
type Seeder struct {
	conf        *core.Config
	logger      core.Logger
	userSvc     user.Service
	categorySvc category.Service
	settingsSvc settings.Service
}

func NewSeeder(conf *core.Config, logger core.Logger, usrSvc user.Service, catSvc category.Service, setSvc settings.Service) *Seeder {
	return &Seeder{
		conf:        conf,
		logger:      logger,
		userSvc:     usrSvc,
		categorySvc: catSvc,
		settingsSvc: setSvc,
	}
}

// Run seeds the admin user, the default categories & the site settings.
func (s *Seeder) Run(ctx context.Context, data Data) error {
	if err := s.seedAdmin(ctx); err != nil {
		return errors.Wrap(err, "seeding admin user")
	}
	if err := s.seedCategories(ctx, data.Categories); err != nil {
		return errors.Wrap(err, "seeding categories")
	}
	if err := s.seedSettings(ctx, data.Settings); err != nil {
		return errors.Wrap(err, "seeding site settings")
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	_, err := s.userSvc.GetByEmail(ctx, s.conf.Seed.AdminEmail)
	if err == nil || !core.IsNotFound(err) {
		return err
	}

	// the configured password skips the password policy
	usr, err := s.userSvc.Create(ctx, user.NewUser{
		Name:     s.conf.Seed.AdminName,
		Email:    s.conf.Seed.AdminEmail,
		Role:     user.RoleAdmin,
		Status:   user.StatusActive,
		Password: s.conf.Seed.AdminPassword,
	})
	if err != nil {
		return err
	}
	s.logger.Info("admin user created", map[string]interface{}{"email": usr.Email})
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context, cats []categoryData) error {
	existing, err := s.categorySvc.ListWithHierarchy(ctx, category.QueryFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, cd := range cats {
		parent, err := s.categorySvc.Create(ctx, category.Input{Name: cd.Name, Slug: cd.Slug, Description: cd.Description})
		if err != nil {
			return err
		}
		for _, sub := range cd.Subcategories {
			_, err = s.categorySvc.Create(ctx, category.Input{
				Name:        sub.Name,
				Slug:        sub.Slug,
				Description: sub.Description,
				ParentID:    parent.ID,
			})
			if err != nil {
				return err
			}
		}
	}
	s.logger.Info("default categories created")
	return nil
}

func (s *Seeder) seedSettings(ctx context.Context, sd settingsData) error {
	_, err := s.settingsSvc.Get(ctx)
	if err == nil || !core.IsNotFound(err) {
		return err
	}
	if _, err = s.settingsSvc.Create(ctx, sd.input()); err != nil {
		return err
	}
	s.logger.Info("site settings created")
	return nil
}
