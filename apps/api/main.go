package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	echoapi "github.com/trezcool/contentadmin/apps/api/echo"
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
	logsvc "github.com/trezcool/contentadmin/services/logger"
	"github.com/trezcool/contentadmin/storage/database"
	"github.com/trezcool/contentadmin/storage/seed"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(os.Stdout, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	ctx := context.Background()
	db, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(context.Background()); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up services
	checker := integrity.NewChecker(db, conf.Integrity.StrictReferences)
	usrSvc := user.NewService(user.NewRepository(db), checker)
	catSvc := category.NewService(category.NewRepository(db), checker)
	setSvc := settings.NewService(settings.NewRepository(db))

	deps := echoapi.Deps{
		Conf:        conf,
		Logger:      logger,
		UserSvc:     usrSvc,
		CategorySvc: catSvc,
		MCQSvc:      mcq.NewService(mcq.NewRepository(db), checker),
		QuizSvc:     quiz.NewService(quiz.NewRepository(db), checker),
		QuestionSvc: question.NewService(question.NewRepository(db), checker),
		NewsSvc:     news.NewService(news.NewRepository(db), checker),
		NoticeSvc:   notice.NewService(notice.NewRepository(db), checker),
		CourseSvc:   course.NewService(course.NewRepository(db), checker),
		CMSSvc:      cms.NewService(cms.NewRepository(db)),
		SettingsSvc: setSvc,
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	deps.Validate = validator.New()
	deps.Translator = newTranslator()
	core.InitValidators(deps.Validate, deps.Translator)
	user.InitValidators(deps.Validate, deps.Translator)

	if conf.Seed.Enabled {
		seeder := seed.NewSeeder(conf, logger, usrSvc, catSvc, setSvc)
		if err = seeder.Run(ctx, seed.DefaultData()); err != nil {
			logger.Error(fmt.Sprintf("seeding: %v", err), err)
		}
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus metrics.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("dbEngine").Set(conf.Database.Engine)
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(deps)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
