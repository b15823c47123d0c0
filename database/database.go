package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/vibe-gallery-backend/config"
	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/models"
)

// DB_TYPE values understood by Open.
const (
	TypeSupabase = "supa"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
	TypeDemo     = "demo"
)

type Database struct {
	projectRepo  *ProjectRepo
	commentRepo  *CommentRepo
	categoryRepo *CategoryRepo
	eventRepo    *EventRepo
	licenseRepo  *LicenseRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:  NewProjectRepo(db),
		commentRepo:  NewCommentRepo(db),
		categoryRepo: NewCategoryRepo(db),
		eventRepo:    NewEventRepo(db),
		licenseRepo:  NewLicenseRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) EventRepo() *EventRepo {
	return d.eventRepo
}

func (d Database) LicenseRepo() *LicenseRepo {
	return d.licenseRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// IsDemo reports whether the configuration selects the seeded in-memory
// database.
func IsDemo(c map[string]string) bool {
	t := strings.ToLower(config.GetString(c, "DB_TYPE", TypeDemo))
	return t == TypeDemo
}

// Open connects to the database selected by DB_TYPE, migrates the schema
// and, in demo mode, loads the demo data set.
func Open(c map[string]string) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", TypeDemo))
	gormConfig := &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         newGormLogger(),
	}

	var dialector gorm.Dialector
	switch dbType {
	case TypeSupabase:
		dialector = postgres.New(postgres.Config{
			DSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
				config.GetString(c, "SUPABASE_DB_HOST", ""),
				config.GetString(c, "SUPABASE_DB_USER", ""),
				config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
				config.GetString(c, "SUPABASE_DB_NAME", ""),
				config.GetString(c, "SUPABASE_DB_PORT", "5432"),
			),
			PreferSimpleProtocol: true,
		})
	case TypePostgres:
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return nil, errs.NewConfigMissingError("DATABASE_URL")
		}
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	case TypeSQLite:
		dialector = sqlite.Open(config.GetString(c, "SQLITE_PATH", "gallery.db") + "?_pragma=foreign_keys(1)")
	case TypeDemo:
		dialector = sqlite.Open(MemoryDSN("gallery-demo"))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dbType, err)
	}

	if replica := config.GetString(c, "DB_REPLICA_DSN", ""); replica != "" && (dbType == TypeSupabase || dbType == TypePostgres) {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
		zlog.Info().Msg("Read replica registered")
	}

	if dbType == TypeDemo || dbType == TypeSQLite {
		if err := limitToSingleConnection(db); err != nil {
			return nil, err
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if dbType == TypeDemo {
		if err := SeedDemoData(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// MemoryDSN names a shared in-memory SQLite database.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
}

// Migrate creates or updates every table the gallery uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.License{},
		&models.Project{},
		&models.Comment{},
		&models.ProjectLike{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SQLite serialises writers; one connection avoids "database is locked".
func limitToSingleConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// OpenMemory opens a private in-memory SQLite database holding the demo
// data set.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(MemoryDSN(name)), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	if err := limitToSingleConnection(db); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedDemoData(db); err != nil {
		return nil, err
	}
	return db, nil
}
