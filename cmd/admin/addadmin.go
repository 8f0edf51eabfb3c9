package main

import (
	"context"

	"github.com/shkolla/portal/core/user"
)

// addAdmin creates an admin account, or resets the password of an
// existing user with that email.
func (cli *commandLine) addAdmin(email, name, surname, pwd string) error {
	ctx := context.Background()

	if usr, err := cli.usrSvc.GetByEmail(ctx, email); err == nil {
		return cli.usrSvc.SetPassword(ctx, usr.ID, pwd)
	} else if err != user.ErrNotFound {
		return err
	}

	_, err := cli.usrSvc.Create(ctx, user.NewUser{
		Email:    email,
		Password: pwd,
		Role:     user.RoleAdmin,
		Name:     name,
		Surname:  surname,
	})
	return err
}
