package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go-leave/internal/app"
	"go-leave/internal/auth"
	"go-leave/internal/domain"
	"go-leave/internal/importer"

	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, err := app.Connect(c.cfg, c.log)
			if err != nil {
				return err
			}
			infra.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", c.cfg.Database.Driver)
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample employees and leaves into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, svc, err := c.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			seeded, err := app.Seed(cmd.Context(), svc.Employee, svc.Leave)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "employees already present, nothing to seed")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sample data inserted")
			return nil
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import employees from a .csv, .xlsx or .xls file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !importer.SupportedExtension(path) {
				return fmt.Errorf("%s: only .csv, .xlsx and .xls files are supported", path)
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if limit := c.cfg.Import.MaxFileSize; limit > 0 && info.Size() > limit {
				return fmt.Errorf("%s: file is %d bytes, the limit is %d", path, info.Size(), limit)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rows, err := importer.Parse(filepath.Base(path), data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			infra, svc, err := c.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			result, err := svc.Importer.Import(cmd.Context(), rows)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func (c *cli) createUserCmd() *cobra.Command {
	var req auth.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a login account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidRole(req.Role) {
				return fmt.Errorf("role must be one of %s, %s, %s", domain.RoleViewer, domain.RoleHR, domain.RoleAdmin)
			}

			infra, svc, err := c.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			user, err := svc.Auth.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&req.Role, "role", domain.RoleViewer, "viewer, hr or admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
