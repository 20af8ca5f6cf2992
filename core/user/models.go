package user

import (
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/contentadmin/core"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	AllRoles = []string{RoleAdmin, RoleEditor, RoleViewer}

	rolePriorities = map[string]int{
		RoleAdmin:  30,
		RoleEditor: 20,
		RoleViewer: 10,
	}
)

// RolePriority ranks roles: viewer < editor < admin. Unknown roles rank 0.
func RolePriority(role string) int {
	return rolePriorities[role]
}

type User struct {
	ID           string     `json:"id" bson:"_id"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	Role         string     `json:"role" bson:"role"`
	Status       string     `json:"status" bson:"status"`
	Avatar       string     `json:"avatar" bson:"avatar"`
	PasswordHash []byte     `json:"-" bson:"-"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"` // UTC
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`                     // UTC
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`                     // UTC
}

func (u User) GetID() string { return u.ID }

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// HasRole reports whether the user's role is at least `role`.
func (u User) HasRole(role string) bool {
	return RolePriority(u.Role) >= RolePriority(role)
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DefaultAvatar builds the generated initials avatar for `name`.
func DefaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Avatar = core.CleanString(nu.Avatar)
	if nu.Role == "" {
		nu.Role = RoleViewer
	}
	if nu.Status == "" {
		nu.Status = StatusActive
	}
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Clean()
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// It starts as a copy of the stored User so that absent fields keep their value.
type UpdateUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
	Status   string `json:"status" validate:"required,oneof=active inactive"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
}

func NewUpdateUser(usr User) UpdateUser {
	return UpdateUser{
		Name:   usr.Name,
		Email:  usr.Email,
		Role:   usr.Role,
		Status: usr.Status,
		Avatar: usr.Avatar,
	}
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Name = core.CleanString(uu.Name)
	uu.Email = core.CleanString(uu.Email, true /* lower */)
	uu.Avatar = core.CleanString(uu.Avatar)
	return validate.Struct(uu)
}

type QueryFilter struct {
	Role   string `query:"role"`
	Status string `query:"status"`
}

func (qf QueryFilter) toFilter() core.Filter {
	filter := make(core.Filter)
	if role := core.CleanString(qf.Role, true /* lower */); role != "" {
		filter["role"] = role
	}
	if status := core.CleanString(qf.Status, true /* lower */); status != "" {
		filter["status"] = status
	}
	return filter
}
