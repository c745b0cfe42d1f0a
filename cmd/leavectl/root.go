package main

import (
	"encoding/json"
	"io"
	"os"

	"go-leave/internal/app"
	"go-leave/internal/config"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "leavectl",
		Short:        "Administrative tasks for the leave service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(log)
			apperror.Init()

			c.cfg = cfg
			c.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("LEAVE_CONFIG"), "path to a config file")

	root.AddCommand(
		c.migrateCmd(),
		c.seedCmd(),
		c.importCmd(),
		c.createUserCmd(),
	)
	return root
}

// connect opens the database (applying migrations) and wires the services.
func (c *cli) connect() (*app.Infra, *app.Services, error) {
	infra, err := app.Connect(c.cfg, c.log)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.NewServices(infra)
	if err != nil {
		infra.Close()
		return nil, nil, err
	}
	return infra, svc, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
