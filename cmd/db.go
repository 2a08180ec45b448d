package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/config"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/migrations"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/service"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"gorm.io/gorm"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

var verbose bool

func init() {
	dbCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every migration statement")

	dbCmd.AddCommand(Migrate())
	dbCmd.AddCommand(migrateUpCmd())
	dbCmd.AddCommand(migrateDownCmd())
	dbCmd.AddCommand(migrateResetCmd())
	dbCmd.AddCommand(migrateStatusCmd())
	dbCmd.AddCommand(checkCmd())
}

func openDb() (*gorm.DB, error) {
	cnf, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.SetupLogging(cnf.Log); err != nil {
		return nil, err
	}
	return config.GetDb(cnf)
}

func migrator() (*migrations.Migrator, error) {
	db, err := openDb()
	if err != nil {
		return nil, err
	}
	return migrations.New(db, verbose)
}

// Migrate creates the schema and applies every pending migration.
func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDb()
			if err != nil {
				return err
			}
			if err := migrations.Setup(cmd.Context(), db); err != nil {
				return err
			}

			m, err := migrations.New(db, verbose)
			if err != nil {
				return err
			}
			version, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}

			color.Green("database migrated to version %d", version)
			return nil
		},
	}

	return command
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "apply pending sql migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}
			steps, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			printSteps(steps)
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "roll back the latest sql migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}
			step, err := m.Down(cmd.Context())
			if err != nil {
				return err
			}
			printSteps([]migrations.Step{step})
			return nil
		},
	}
}

func migrateResetCmd() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "reset",
		Short: "roll back every sql migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				color.Red("reset removes the seeded code tables, rerun with --force")
				return nil
			}

			m, err := migrator()
			if err != nil {
				return err
			}
			steps, err := m.Reset(cmd.Context())
			if err != nil {
				return err
			}
			printSteps(steps)
			return nil
		},
	}

	command.Flags().BoolVar(&force, "force", false, "confirm the reset")

	return command
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "list the sql migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}
			steps, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			printSteps(steps)
			return nil
		},
	}
}

func printSteps(steps []migrations.Step) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Version", "Migration", "Direction", "Applied"})
	for _, s := range steps {
		table.Append([]string{fmt.Sprint(s.Version), s.Path, s.Direction, fmt.Sprint(s.Applied)})
	}
	table.Render()
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "check the versioning data of every entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDb()
			if err != nil {
				return err
			}

			problems, err := checkIntegrity(cmd.Context(), db)
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				color.Green("no problems found")
				return nil
			}

			printProblems(problems)
			return fmt.Errorf("%d problems found", len(problems))
		},
	}
}

// checkIntegrity runs the integrity checks against db without a server.
func checkIntegrity(ctx context.Context, db *gorm.DB) ([]*v1.Problem, error) {
	catalog := service.NewCatalogService(store.NewGormStore(db), cache.NewMemory(), queue.NewMemory(), service.DefaultOptions())
	res, err := catalog.CheckIntegrity(ctx, &v1.CheckIntegrityRequest{})
	if err != nil {
		return nil, err
	}
	return res.Problems, nil
}

func printProblems(problems []*v1.Problem) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Kind", "Check", "ID", "Detail"})
	for _, p := range problems {
		table.Append([]string{p.Kind, p.Check, p.ID, p.Detail})
	}
	table.Render()
}
