package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/subtrail/subtrail/internal/cli"
	"github.com/subtrail/subtrail/internal/config"
	"github.com/subtrail/subtrail/internal/gmail"
)

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access",
		Long: `Runs the OAuth consent flow for read-only Gmail access. Expects an OAuth
client credentials file at <config dir>/client_secret.json, downloadable
from the Google Cloud console. The granted token is cached next to it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := config.Dir()

			credPath := filepath.Join(dir, "client_secret.json")
			if _, err := os.Stat(credPath); err != nil {
				return fmt.Errorf("no OAuth credentials at %s; download a client secret from the Google Cloud console first", credPath)
			}

			// Constructing the client runs the consent flow when no
			// valid cached token exists.
			if _, err := gmail.NewClient(cmd.Context(), dir); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Gmail access authorized. You can now run 'subtrail scan'."))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("Database is up to date."))
			return nil
		},
	}
}
