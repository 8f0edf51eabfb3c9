package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/user"
	emailsvc "github.com/shkolla/portal/services/email"
	"github.com/shkolla/portal/storage/database"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

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

	conf := core.NewConfig()
	return &commandLine{
		db:     db,
		usrSvc: user.NewService(database.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	var promptedPwd string
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(promptedPwd), nil }
	migrateRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		if command == "lol" {
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addadmin: no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "addadmin: no email", args: []string{"addadmin", "-name", "A", "-surname", "B"}, wantErr: errHelp},
		{name: "addadmin: empty password", args: []string{"addadmin", "-email", "a@b.cd", "-name", "A", "-surname", "B"}, wantErr: errHelp},
		{name: "addadmin: ok", args: []string{"addadmin", "-email", "a@b.cd", "-name", "A", "-surname", "B"}, pwd: "s3cret"},
		{name: "resetpassword: no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword: ok", args: []string{"resetpassword", "-email", "a@b.cd"}, pwd: "n3w-s3cret"},
		{name: "migrate: no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "migrate: status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			promptedPwd = tt.pwd
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the created admin authenticates with the reset password
	usr, err := cli.usrSvc.Authenticate(context.Background(), "a@b.cd", "n3w-s3cret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !usr.IsAdmin() {
		t.Errorf("role = %q, want admin", usr.Role)
	}
}

func Test_commandLine_addAdmin_existing(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	// an existing email gets a password reset, not a duplicate account
	if err := cli.addAdmin("admin@school.edu", "Admin", "User", "rotated"); err != nil {
		t.Fatalf("addAdmin() error = %v", err)
	}
	if _, err := cli.usrSvc.Authenticate(ctx, "admin@school.edu", "rotated"); err != nil {
		t.Errorf("Authenticate() error = %v", err)
	}

	var n int
	if err := cli.db.Get(&n, "SELECT COUNT(*) FROM users WHERE email = ?", "admin@school.edu"); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d accounts, want 1", n)
	}
}
