package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/shkolla/portal/api/echo"
	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/news"
	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
	emailsvc "github.com/shkolla/portal/services/email"
	logsvc "github.com/shkolla/portal/services/logger"
	"github.com/shkolla/portal/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(database.NewUserRepository(db), mailSvc, conf)
	schoolSvc := school.NewService(database.NewSchoolRepository(db))
	gradingSvc := grading.NewService(database.NewGradingRepository(db))
	attendanceSvc := attendance.NewService(database.NewAttendanceRepository(db))
	newsSvc := news.NewService(database.NewNewsRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			SchoolSvc:     schoolSvc,
			GradingSvc:    gradingSvc,
			AttendanceSvc: attendanceSvc,
			NewsSvc:       newsSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

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
		if err = server.Stop(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	if err = database.Seed(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
