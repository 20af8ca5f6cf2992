package echoapi

import (
	"net/http"

	"github.com/trezcool/contentadmin/core/user"
)

// Resources
const (
	resUsers      = "users"
	resCategories = "categories"
	resQuestions  = "questions"
	resNews       = "news"
	resMCQs       = "mcqs"
	resCourses    = "courses"
	resQuizzes    = "quizzes"
	resCMS        = "cms"
	resNotices    = "notices"
	resSettings   = "settings"
)

// defaultPermissions maps a write method to the minimum role allowed to use it. Reads are public.
var defaultPermissions = map[string]string{
	http.MethodPost:   user.RoleEditor,
	http.MethodPut:    user.RoleEditor,
	http.MethodDelete: user.RoleAdmin,
}

// permissionOverrides replaces defaultPermissions for a resource.
var permissionOverrides = map[string]map[string]string{
	resUsers: {
		http.MethodPost:   user.RoleAdmin,
		http.MethodPut:    user.RoleAdmin,
		http.MethodDelete: user.RoleAdmin,
	},
}

// requiredRole returns the minimum role needed to call method on resource; "" when anyone may.
func requiredRole(resource, method string) string {
	if perms, ok := permissionOverrides[resource]; ok {
		if role, ok := perms[method]; ok {
			return role
		}
	}
	return defaultPermissions[method]
}
