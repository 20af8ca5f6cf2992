package user_test

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/user"
)

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

func TestNewUser_Validate(t *testing.T) {
	validate, translator := newValidator()

	tests := []struct {
		name    string
		pwd     string
		wantErr string // translated password error
	}{
		{name: "no password", pwd: ""},
		{name: "min length", pwd: "Sh0rt!", wantErr: "password must contain at least 8 characters"},
		{name: "whitespace", pwd: "lol lol lol", wantErr: "password must not contain whitespace"},
		{name: "all numeric", pwd: "1234567890", wantErr: "password cannot be entirely numeric"},
		{name: "similar to name", pwd: "johnsmith1", wantErr: "password cannot be similar to user attributes"},
		{name: "similar to email", pwd: "jsmith@test.cd", wantErr: "password cannot be similar to user attributes"},
		{name: "valid", pwd: "Tr0ub4dor&3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := user.NewUser{Name: "John Smith", Email: "JSmith@Test.cd", Password: tt.pwd}
			err := nu.Validate(validate)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if assert.True(t, ok, "got %v", err) && assert.Len(t, vErrs, 1) {
				assert.Equal(t, "password", vErrs[0].Field())
				assert.Equal(t, tt.wantErr, vErrs[0].Translate(translator))
			}
		})
	}
}

func TestNewUser_Clean(t *testing.T) {
	nu := user.NewUser{Name: "  Jane ", Email: " Jane@Test.CD "}
	nu.Clean()
	assert.Equal(t, user.NewUser{Name: "Jane", Email: "jane@test.cd", Role: user.RoleViewer, Status: user.StatusActive}, nu)
}

func TestUpdateUser_Validate(t *testing.T) {
	validate, _ := newValidator()
	usr := user.User{Name: "Jane", Email: "jane@test.cd", Role: user.RoleEditor, Status: user.StatusActive}

	uu := user.NewUpdateUser(usr)
	assert.NoError(t, uu.Validate(validate))

	uu.Role = "boss"
	assert.Error(t, uu.Validate(validate))

	uu = user.NewUpdateUser(usr)
	uu.Password = "1234567890"
	assert.Error(t, uu.Validate(validate))
}

func TestUser_HasRole(t *testing.T) {
	tests := []struct {
		role string
		want map[string]bool
	}{
		{user.RoleAdmin, map[string]bool{user.RoleAdmin: true, user.RoleEditor: true, user.RoleViewer: true}},
		{user.RoleEditor, map[string]bool{user.RoleAdmin: false, user.RoleEditor: true, user.RoleViewer: true}},
		{user.RoleViewer, map[string]bool{user.RoleAdmin: false, user.RoleEditor: false, user.RoleViewer: true}},
		{"lol", map[string]bool{user.RoleAdmin: false, user.RoleEditor: false, user.RoleViewer: false}},
	}
	for _, tt := range tests {
		usr := user.User{Role: tt.role}
		for role, want := range tt.want {
			assert.Equal(t, want, usr.HasRole(role), "%s has %s", tt.role, role)
		}
	}
}
