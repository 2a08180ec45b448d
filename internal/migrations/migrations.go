package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var embedded embed.FS

var ErrUnsupportedDialect = errors.New("unsupported migration dialect")

// Migrator applies the numbered sql migrations on top of the schema created by
// model.Migrate.
type Migrator struct {
	provider *goose.Provider
}

// Step is one applied or rolled back migration.
type Step struct {
	Version   int64
	Path      string
	Direction string
	Applied   bool
}

// New creates a migrator for the database behind db. The dialect follows the
// gorm dialector name (postgres or sqlite).
func New(db *gorm.DB, verbose bool) (*Migrator, error) {
	var dialect goose.Dialect
	switch db.Dialector.Name() {
	case "postgres":
		dialect = goose.DialectPostgres
	case "sqlite":
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, db.Dialector.Name())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	fsys, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, err
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys,
		goose.WithVerbose(verbose),
		goose.WithLogger(logrus.StandardLogger()),
	)
	if err != nil {
		return nil, err
	}

	return &Migrator{provider: provider}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) ([]Step, error) {
	results, err := m.provider.Up(ctx)
	steps := toSteps(results)
	for _, step := range steps {
		logrus.Infof("migration %05d applied: %s", step.Version, step.Path)
	}
	return steps, err
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) (Step, error) {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return Step{}, err
	}
	step := toStep(result)
	logrus.Infof("migration %05d rolled back: %s", step.Version, step.Path)
	return step, nil
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) ([]Step, error) {
	results, err := m.provider.DownTo(ctx, 0)
	return toSteps(results), err
}

// Status lists every known migration with its state.
func (m *Migrator) Status(ctx context.Context) ([]Step, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(statuses))
	for _, s := range statuses {
		steps = append(steps, Step{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return steps, nil
}

// Version returns the current database migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

// Setup creates the schema and applies every migration.
func Setup(ctx context.Context, db *gorm.DB) error {
	if err := model.Migrate(db); err != nil {
		return err
	}

	m, err := New(db, false)
	if err != nil {
		return err
	}

	_, err = m.Up(ctx)
	return err
}

func toSteps(results []*goose.MigrationResult) []Step {
	steps := make([]Step, 0, len(results))
	for _, r := range results {
		steps = append(steps, toStep(r))
	}
	return steps
}

func toStep(r *goose.MigrationResult) Step {
	if r == nil || r.Source == nil {
		return Step{}
	}
	return Step{
		Version:   r.Source.Version,
		Path:      r.Source.Path,
		Direction: r.Direction,
		Applied:   r.Direction == "up" && r.Error == nil,
	}
}
