package cli

import (
	"fmt"
	"io"

	"edp-shifts/internal/config"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/database"
	"edp-shifts/internal/logging"
	"edp-shifts/internal/shift"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is the state shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE.
type env struct {
	dbPath   string
	logLevel string

	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	users  *credential.Store
	shifts *shift.Store
}

func (e *env) open() error {
	cfg, err := config.LoadStorage()
	if err != nil {
		return err
	}
	if e.dbPath != "" {
		cfg.DBDriver = config.DriverSQLite
		cfg.DatabaseDSN = e.dbPath
	}

	log, err := logging.New(e.logLevel, cfg.LogPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.log = log
	e.db = db
	e.users = credential.NewStore(db, log.Named("credential"))
	e.shifts = shift.NewStore(db, cfg.Location())
	return nil
}

func (e *env) close() error {
	if e.log != nil {
		_ = e.log.Sync()
	}
	if e.db == nil {
		return nil
	}
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRootCommand builds the edpctl command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "edpctl",
		Short:         "Operator tool for the EDP shift database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}

	root.PersistentFlags().StringVar(&e.dbPath, "db", "", "SQLite file to use instead of DB_DRIVER/DATABASE_DSN")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newMigrateCommand(e),
		newUserCommand(e),
		newShiftCommand(e),
	)
	return root
}

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed the branch and admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := credential.Seed(cmd.Context(), e.users, e.cfg.SeedBranches, e.cfg.AdminPassword)
			if err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "schema ready, %d account(s) created\n", n)
		},
	}
}

func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
