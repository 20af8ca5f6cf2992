package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/cms"
	"github.com/trezcool/contentadmin/core/course"
	"github.com/trezcool/contentadmin/core/mcq"
	"github.com/trezcool/contentadmin/core/news"
	"github.com/trezcool/contentadmin/core/notice"
	"github.com/trezcool/contentadmin/core/question"
	"github.com/trezcool/contentadmin/core/quiz"
	"github.com/trezcool/contentadmin/core/settings"
	"github.com/trezcool/contentadmin/core/user"
)

type (
	Deps struct {
		Conf        *core.Config
		Logger      core.Logger
		UserSvc     user.Service
		CategorySvc category.Service
		MCQSvc      mcq.Service
		QuizSvc     quiz.Service
		QuestionSvc question.Service
		NewsSvc     news.Service
		NoticeSvc   notice.Service
		CourseSvc   course.Service
		CMSSvc      cms.Service
		SettingsSvc settings.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(ctx context.Context) error
		Close() error
	}

	server struct {
		deps     Deps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps Deps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(metricsMiddleware)
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	s.app.GET("/", s.home)

	api := s.app.Group("/api")
	jwtMw := middleware.JWTWithConfig(newJWTConfig(conf))
	actorMw := actorMiddleware(s.deps.UserSvc)

	// write routes: token -> actor -> role
	guard := func(resource string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{jwtMw, actorMw, permissionMiddleware(resource)}
	}

	registerAuthAPI(api, jwtMw, actorMw, &authApi{conf: conf, svc: s.deps.UserSvc, validate: s.deps.Validate})
	registerUserAPI(api, guard(resUsers), &userApi{svc: s.deps.UserSvc, validate: s.deps.Validate})
	registerCategoryAPI(api, guard(resCategories), &categoryApi{svc: s.deps.CategorySvc, validate: s.deps.Validate})
	registerMCQAPI(api, guard(resMCQs), &mcqApi{svc: s.deps.MCQSvc, validate: s.deps.Validate})
	registerQuizAPI(api, guard(resQuizzes), &quizApi{svc: s.deps.QuizSvc, validate: s.deps.Validate})
	registerQuestionAPI(api, guard(resQuestions), &questionApi{svc: s.deps.QuestionSvc, validate: s.deps.Validate})
	registerNewsAPI(api, guard(resNews), &newsApi{svc: s.deps.NewsSvc, validate: s.deps.Validate})
	registerNoticeAPI(api, guard(resNotices), &noticeApi{svc: s.deps.NoticeSvc, validate: s.deps.Validate})
	registerCourseAPI(api, guard(resCourses), &courseApi{svc: s.deps.CourseSvc, validate: s.deps.Validate})
	registerCMSAPI(api, guard(resCMS), &cmsApi{svc: s.deps.CMSSvc, validate: s.deps.Validate})
	registerSettingsAPI(api, guard(resSettings), &settingsApi{svc: s.deps.SettingsSvc, validate: s.deps.Validate})
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

// Start listens on conf.Server.Address. Listener errors are sent to Errors().
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
