package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentResource struct {
	path     string
	resource string // as named in "not found" errors
	create   string
	update   string
	// field changed by update & its expected value
	updField string
	updValue interface{}
	// field expected to hold the creator's ID
	authorField string
}

var contentResources = []contentResource{
	{
		path: "/api/mcqs", resource: "mcq",
		create:   `{"question": "2 + 2?", "options": [{"text": "4", "isCorrect": true}, {"text": "5"}], "difficulty": "easy"}`,
		update:   `{"difficulty": "hard"}`,
		updField: "difficulty", updValue: "hard",
	},
	{
		path: "/api/quizzes", resource: "quiz",
		create:   `{"title": "Basics", "description": "Warm up", "passingScore": 60}`,
		update:   `{"passingScore": 0}`,
		updField: "passingScore", updValue: float64(0),
	},
	{
		path: "/api/questions", resource: "question",
		create:   `{"question": "What is Go?", "answer": "A language"}`,
		update:   `{"status": "published"}`,
		updField: "status", updValue: "published",
		authorField: "createdBy",
	},
	{
		path: "/api/news", resource: "news",
		create:   `{"title": "Launch Day", "content": "We launched", "excerpt": "Launch"}`,
		update:   `{"excerpt": "Big launch"}`,
		updField: "excerpt", updValue: "Big launch",
		authorField: "author",
	},
	{
		path: "/api/courses", resource: "course",
		create:   `{"title": "Go 101", "description": "Learn Go", "instructor": "Gopher", "price": 0, "categoryId": "any", "level": "beginner", "lessons": [{"title": "Hello", "content": "world"}]}`,
		update:   `{"price": 9.5}`,
		updField: "price", updValue: 9.5,
	},
	{
		path: "/api/cms", resource: "page",
		create:   `{"title": "About Us", "content": "<p>hi</p>"}`,
		update:   `{"status": "published"}`,
		updField: "status", updValue: "published",
	},
}

func Test_contentApi_crud(t *testing.T) {
	for _, res := range contentResources {
		t.Run(res.resource, func(t *testing.T) {
			app := setup(t)
			s := createStaff(t)

			// reads are public, writes are not
			req, rec := newRequest(http.MethodGet, res.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)

			req, rec = newAuthRequest(http.MethodPost, res.path, getToken(t, s.viewer), []byte(res.create))
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

			req, rec = newAuthRequest(http.MethodPost, res.path, getToken(t, s.editor), []byte(res.create))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var created map[string]interface{}
			unmarshalBody(t, rec, &created)
			id, _ := created["id"].(string)
			require.NotEmpty(t, id)
			if res.authorField != "" {
				assert.Equal(t, s.editor.ID, created[res.authorField])
			}

			req, rec = newRequest(http.MethodGet, res.path)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
			var list []map[string]interface{}
			unmarshalBody(t, rec, &list)
			require.Len(t, list, 1)
			assert.Equal(t, id, list[0]["id"])

			req, rec = newAuthRequest(http.MethodPut, res.path+"/"+id, getToken(t, s.editor), []byte(res.update))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var updated map[string]interface{}
			unmarshalBody(t, rec, &updated)
			assert.Equal(t, res.updValue, updated[res.updField])
			for _, fld := range []string{"id", "createdAt"} {
				assert.Equal(t, created[fld], updated[fld], fld)
			}

			req, rec = newRequest(http.MethodGet, res.path+"/"+id)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
			ok, err := jsonBytesEqual(rec.Body.Bytes(), marchallObj(t, updated))
			require.NoError(t, err)
			assert.True(t, ok, rec.Body.String())

			notFound := marchallObj(t, httpErr{Error: res.resource + " not found"})
			tests := []httpTest{
				{name: "editor delete", method: http.MethodDelete, path: res.path + "/" + id, token: getToken(t, s.editor), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
				{name: "admin delete", method: http.MethodDelete, path: res.path + "/" + id, token: getToken(t, s.admin), wantCode: http.StatusOK, wantData: marchallObj(t, deleted)},
				{name: "gone", method: http.MethodGet, path: res.path + "/" + id, wantCode: http.StatusNotFound, wantData: notFound},
				{name: "delete gone", method: http.MethodDelete, path: res.path + "/" + id, token: getToken(t, s.admin), wantCode: http.StatusNotFound, wantData: notFound},
				{name: "update gone", method: http.MethodPut, path: res.path + "/" + id, token: getToken(t, s.editor), body: []byte(res.update), wantCode: http.StatusNotFound, wantData: notFound},
			}
			runHTTPTests(t, app, tests)
		})
	}
}

func Test_contentApi_validation(t *testing.T) {
	app := setup(t)
	token := getToken(t, createStaff(t).editor)

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "mcq: bad difficulty", path: "/api/mcqs",
			body: []byte(`{"question": "?", "difficulty": "insane"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error:  "difficulty: difficulty must be one of: easy, medium, hard",
				Fields: map[string]string{"difficulty": "difficulty must be one of: easy, medium, hard"},
			}),
		},
		{
			name: "quiz: passing score required", path: "/api/quizzes",
			body: []byte(`{"title": "Basics", "description": "Warm up"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "passingScore: " + reqMsg, Fields: map[string]string{"passingScore": reqMsg}}),
		},
		{
			name: "course: nested lesson", path: "/api/courses",
			body:     []byte(`{"title": "Go 101", "description": "Learn Go", "instructor": "Gopher", "price": 0, "categoryId": "any", "lessons": [{"content": "world"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "lessons[0].title: " + reqMsg, Fields: map[string]string{"lessons[0].title": reqMsg}}),
		},
		{
			name: "cms: required fields", path: "/api/cms",
			body: []byte(`{"title": "About"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "content: " + reqMsg, Fields: map[string]string{"content": reqMsg}}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].token = token
	}
	runHTTPTests(t, app, tests)
}

func Test_contentApi_duplicateSlugs(t *testing.T) {
	app := setup(t)
	token := getToken(t, createStaff(t).editor)

	tests := []struct {
		path, body, wantErr string
	}{
		{"/api/news", `{"title": "Launch Day", "content": "x", "excerpt": "x"}`, "a news article with this slug already exists"},
		{"/api/courses", `{"title": "Go 101", "description": "x", "instructor": "x", "price": 1, "categoryId": "any"}`, "a course with this slug already exists"},
		{"/api/cms", `{"title": "About Us", "content": "x"}`, "a page with this slug already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, token, []byte(tt.body))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			req, rec = newAuthRequest(http.MethodPost, tt.path, token, []byte(tt.body))
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: tt.wantErr})}, rec)
		})
	}
}

func Test_cmsApi_retrieveBySlug(t *testing.T) {
	app := setup(t)
	token := getToken(t, createStaff(t).editor)

	req, rec := newAuthRequest(http.MethodPost, "/api/cms", token, []byte(`{"title": "Privacy Policy", "content": "x"}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var page map[string]interface{}
	unmarshalBody(t, rec, &page)
	assert.Equal(t, "privacy-policy", page["slug"])

	req, rec = newRequest(http.MethodGet, "/api/cms/privacy-policy")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, page)}, rec)
}
