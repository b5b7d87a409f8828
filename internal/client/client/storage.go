package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/client/config"
	"github.com/dmitrijs2005/petcheck/internal/client/migrations"
	"github.com/dmitrijs2005/petcheck/internal/client/repositories/state"
	"github.com/dmitrijs2005/petcheck/internal/common"
	"github.com/dmitrijs2005/petcheck/internal/filex"
	"github.com/dmitrijs2005/petcheck/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
	StoreMemory   = "memory"
)

// Storage is an opened state backend. DB is nil for s3 and memory.
type Storage struct {
	Repo state.Repository
	DB   *sql.DB
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// seams for tests
var (
	sqlOpen        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

type migrationSet struct {
	fsys    fs.FS
	dir     string
	dialect string
}

var migrationSets = map[string]migrationSet{
	StoreSQLite:   {fsys: migrations.SQLite, dir: "sqlite", dialect: "sqlite3"},
	StorePostgres: {fsys: migrations.Postgres, dir: "postgres", dialect: "pgx"},
}

// RunMigrations applies the embedded goose migrations for store ("sqlite" or
// "postgres") to db. Running it again on an up-to-date schema is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, store string, log logging.Logger) error {
	set, ok := migrationSets[store]
	if !ok {
		return fmt.Errorf("%w: no migrations for %q", common.ErrorUnknownBackend, store)
	}

	goose.SetBaseFS(set.fsys)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(set.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, set.dir); err != nil {
		return fmt.Errorf("failed to migrate %s state: %w", store, err)
	}
	return nil
}

// OpenStorage opens the backend named by cfg.Store and prepares its schema.
func OpenStorage(ctx context.Context, cfg *config.Config, log logging.Logger) (*Storage, error) {
	log = log.With("module", "storage", "store", cfg.Store)

	switch cfg.Store {
	case StoreSQLite:
		if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, fmt.Errorf("prepare database dir: %w", err)
		}
		return openSQL(ctx, "sqlite", cfg.DatabasePath, StoreSQLite, log, func(db *sql.DB) state.Repository {
			return state.NewSQLiteRepository(db)
		})

	case StorePostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("%w: postgres store needs a dsn", common.ErrorInvalidInput)
		}
		return openSQL(ctx, "pgx", cfg.PostgresDSN, StorePostgres, log, func(db *sql.DB) state.Repository {
			return state.NewPostgresRepository(db)
		})

	case StoreS3:
		repo, err := state.NewS3Repository(ctx, state.S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		log.Debug(ctx, "storage opened", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return &Storage{Repo: repo}, nil

	case StoreMemory:
		log.Debug(ctx, "storage opened")
		return &Storage{Repo: state.NewMemoryRepository()}, nil

	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownBackend, cfg.Store)
	}
}

func openSQL(
	ctx context.Context,
	driver, dsn, store string,
	log logging.Logger,
	newRepo func(*sql.DB) state.Repository,
) (*Storage, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, store, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug(ctx, "storage opened")
	return &Storage{Repo: newRepo(db), DB: db}, nil
}

// gooseLogger routes goose progress lines to the application logger.
type gooseLogger struct {
	log logging.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
