package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/shkolla/portal/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sqlx.DB
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addadmin -email EMAIL -name NAME -surname SURNAME - create an admin account")
	fmt.Println("  resetpassword -email EMAIL - reset a user's password")
	fmt.Println("  migrate COMMAND [ARGS] - run a migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")
	addAdminName := addAdminCmd.String("name", "", "The admin's first name.")
	addAdminSurname := addAdminCmd.String("surname", "", "The admin's surname.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminEmail == "" || *addAdminName == "" || *addAdminSurname == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				addAdminCmd.Usage()
			}
			return err
		}
		return cli.addAdmin(*addAdminEmail, *addAdminName, *addAdminSurname, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				resetPasswordCmd.Usage()
			}
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}
