package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the feed schema in the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.close()

			if err := store.migrate(cmd.Context()); err != nil {
				return err
			}
			a.log.Infof("main: %s schema is up to date", a.cfg.Storage)
			return nil
		},
	}
}
