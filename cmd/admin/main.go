package main

import (
	"log"
	"os"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/user"
	emailsvc "github.com/shkolla/portal/services/email"
	"github.com/shkolla/portal/storage/database"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: user.NewService(database.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
