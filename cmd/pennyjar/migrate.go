package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending store migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			before, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			if err := store.Migrate(ctx); err != nil {
				return err
			}
			after, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}

			if before == after {
				fmt.Printf("store already at schema version %d of %d\n", after, storage.CurrentSchemaVersion)
			} else {
				cli.Success("migrated store from version %d to %d", before, after)
			}
			return nil
		},
	}
}
