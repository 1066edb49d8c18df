package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jobprep/api/internal/export"
	"jobprep/api/internal/jobs"
	"jobprep/api/internal/models"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table and the document store indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(cmd.Context(), func(b *Backend) error {
				if err := b.Users.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("migrate users: %w", err)
				}
				if b.EnsureIndexes != nil {
					if err := b.EnsureIndexes(cmd.Context()); err != nil {
						return fmt.Errorf("ensure indexes: %w", err)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func newGrantAdminCommand(a *app) *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "grant-admin <email>",
		Short: "Give an account admin rights (or take them away with --revoke)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(cmd.Context(), func(b *Backend) error {
				user, err := b.Users.SetAdmin(cmd.Context(), args[0], !revoke)
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("no account registered under %s", args[0])
				}
				if err != nil {
					return err
				}
				verb := "granted to"
				if revoke {
					verb = "revoked from"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s %s (id %d)\n", verb, user.Email, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove admin rights instead of granting them")
	return cmd
}

func newExportInterviewsCommand(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export-interviews",
		Short: "Write interviews ended since the last export as JSONL training examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			return a.withBackend(cmd.Context(), func(b *Backend) error {
				job := jobs.NewInterviewExporterJob(b.Interviews, &jobs.ExporterConfig{
					ExportDir:     dir,
					ExportEnabled: true,
				}, a.logger)

				path, err := job.RunManual(cmd.Context())
				if err != nil {
					return err
				}
				if path == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to export")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to INTERVIEW_EXPORT_DIR)")
	return cmd
}

func newShowInterviewCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show-interview <id>",
		Short: "Print one interview transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			return a.withBackend(cmd.Context(), func(b *Backend) error {
				session, err := b.Interviews.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return exporter.Export(cmd.OutOrStdout(), session)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMarkdown, "json, yaml or md")
	return cmd
}
