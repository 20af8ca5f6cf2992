package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/contentadmin/apps/api/echo"
	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/cms"
	"github.com/trezcool/contentadmin/core/course"
	"github.com/trezcool/contentadmin/core/integrity"
	"github.com/trezcool/contentadmin/core/mcq"
	"github.com/trezcool/contentadmin/core/news"
	"github.com/trezcool/contentadmin/core/notice"
	"github.com/trezcool/contentadmin/core/question"
	"github.com/trezcool/contentadmin/core/quiz"
	"github.com/trezcool/contentadmin/core/settings"
	"github.com/trezcool/contentadmin/core/user"
	"github.com/trezcool/contentadmin/tests"
)

var (
	conf    *core.Config
	db      core.DocumentStore
	usrRepo user.Repository
	catRepo category.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errInvalidToken = httpErr{Error: "invalid or expired jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	deleted         = SuccessResponse{Success: true}
)

// setup returns a server backed by a fresh in-memory store.
func setup(t *testing.T) Server {
	conf = testutil.NewConfig()
	db = testutil.NewStore()
	usrRepo = user.NewRepository(db)
	catRepo = category.NewRepository(db)

	checker := integrity.NewChecker(db, conf.Integrity.StrictReferences)

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	return NewServer(Deps{
		Conf:        conf,
		Logger:      testutil.NewLogger(conf),
		UserSvc:     user.NewService(usrRepo, checker),
		CategorySvc: category.NewService(catRepo, checker),
		MCQSvc:      mcq.NewService(mcq.NewRepository(db), checker),
		QuizSvc:     quiz.NewService(quiz.NewRepository(db), checker),
		QuestionSvc: question.NewService(question.NewRepository(db), checker),
		NewsSvc:     news.NewService(news.NewRepository(db), checker),
		NoticeSvc:   notice.NewService(notice.NewRepository(db), checker),
		CourseSvc:   course.NewService(course.NewRepository(db), checker),
		CMSSvc:      cms.NewService(cms.NewRepository(db)),
		SettingsSvc: settings.NewService(settings.NewRepository(db)),
		Validate:    validate,
		Translator:  translator,
	})
}

type staff struct {
	admin, editor, viewer user.User
}

func createStaff(t *testing.T) staff {
	return staff{
		admin:  testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "Adm1n-pass", user.RoleAdmin, user.StatusActive),
		editor: testutil.CreateUser(t, usrRepo, "Editor", "editor@test.cd", "Ed1tor-pass", user.RoleEditor, user.StatusActive),
		viewer: testutil.CreateUser(t, usrRepo, "Viewer", "viewer@test.cd", "V1ewer-pass", user.RoleViewer, user.StatusActive),
	}
}

type httpErr struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(GetUserClaims(usr, conf), conf)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarshalBody(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarshalBody(): %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
