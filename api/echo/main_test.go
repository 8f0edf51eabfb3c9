package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/news"
	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
	emailsvc "github.com/shkolla/portal/services/email"
	"github.com/shkolla/portal/storage/database"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	app     Server
	conf    *core.Config
	db      *sqlx.DB
	usrRepo user.Repository
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false // keep error payloads in their production shape
	conf.TestMode = true

	// a fresh in-memory store per test; one connection keeps it alive
	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err = database.Seed(context.Background(), db); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}

	usrRepo := database.NewUserRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{},
		UserSvc:        user.NewService(usrRepo, mailSvc, conf),
		SchoolSvc:      school.NewService(database.NewSchoolRepository(db)),
		GradingSvc:     grading.NewService(database.NewGradingRepository(db)),
		AttendanceSvc:  attendance.NewService(database.NewAttendanceRepository(db)),
		NewsSvc:        news.NewService(database.NewNewsRepository(db)),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &testApp{app: app, conf: conf, db: db, usrRepo: usrRepo}
}

func (ta *testApp) user(t *testing.T, email string) user.User {
	t.Helper()
	usr, err := ta.usrRepo.GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("loading %s: %v", email, err)
	}
	return usr
}

func (ta *testApp) token(t *testing.T, email string) string {
	t.Helper()
	token, err := GenerateToken(ta.conf, GetUserClaims(ta.conf, ta.user(t, email)))
	if err != nil {
		t.Fatalf("token(%s): %v", email, err)
	}
	return token
}

type testLogger struct{}

func (testLogger) Enable(bool)                           {}
func (testLogger) Debug(msg string, args ...interface{}) { log.Println(msg, args) }
func (testLogger) Info(msg string, args ...interface{})  { log.Println(msg, args) }
func (testLogger) Warn(msg string, args ...interface{})  { log.Println(msg, args) }
func (testLogger) Error(msg string, args ...interface{}) { log.Println(msg, args) }
func (testLogger) Fatal(msg string, args ...interface{}) { log.Println(msg, args) }

var _ core.Logger = testLogger{}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
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

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
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

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
