package main

import "github.com/shkolla/portal/storage/database"

var migrateRunFunc = database.RunMigrationCommand // mockable

func (cli *commandLine) migrate(args []string) error {
	var arguments []string
	if len(args) > 1 {
		arguments = args[1:]
	}
	return migrateRunFunc(cli.db, args[0], arguments...)
}
