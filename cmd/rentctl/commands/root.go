// Package commands implements rentctl, the administration CLI for a local
// Rentbook store. Commands act as the user recorded in the session pointer.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/database"
	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/importer"
	"github.com/MrJamesThe3rd/rentbook/internal/logger"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
)

// app holds the services shared by every command. It is filled in by the
// root command's pre-run hook.
type app struct {
	dataDir string
	driver  string

	cfg     *config.Config
	log     *slog.Logger
	rental  *rental.Service
	reports *report.Service
	exports *export.Service
	imports *importer.Service
	close   func() error
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "rentctl",
		Short:        "Administer a Rentbook store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.shutdown()
		},
	}

	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (overrides DATA_DIR)")
	root.PersistentFlags().StringVar(&a.driver, "storage", "", "storage driver: file, sqlite or postgres (overrides STORAGE_DRIVER)")

	root.AddCommand(
		seedCmd(a),
		userCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		reportCmd(a),
		importCmd(a),
		exportCmd(a),
	)

	return root
}

func (a *app) open(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.dataDir != "" {
		cfg.Storage.DataDir = a.dataDir
	}

	if a.driver != "" {
		cfg.Storage.Driver = a.driver
	}

	a.cfg = cfg
	a.log = logger.NewWithWriter(cfg.App.Env, cmd.ErrOrStderr())

	repo, closeRepo, err := database.Open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	a.close = closeRepo
	a.rental = rental.NewService(repo, a.log)
	a.reports = report.NewService(a.rental)
	a.exports = export.NewService(a.rental)
	a.imports = importer.NewService()

	return nil
}

func (a *app) shutdown() error {
	if a.close == nil {
		return nil
	}

	return a.close()
}

// actor returns the logged-in user.
func (a *app) actor(ctx context.Context) (rental.User, error) {
	u, err := a.rental.CurrentUser(ctx)
	if errors.Is(err, rental.ErrNoSession) {
		return rental.User{}, fmt.Errorf("not logged in, run rentctl login first: %w", err)
	}

	if err != nil {
		return rental.User{}, err
	}

	return *u, nil
}

// actorWithRole returns the logged-in user when it holds one of roles.
func (a *app) actorWithRole(ctx context.Context, roles ...rental.Role) (rental.User, error) {
	u, err := a.actor(ctx)
	if err != nil {
		return u, err
	}

	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}

	return rental.User{}, fmt.Errorf("%w: %s cannot run this command", rental.ErrForbidden, u.Role)
}

var staff = []rental.Role{rental.RoleAdmin, rental.RoleManager}
