// File: /database/database.go
package database

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube-api/logs"
	"yatube-api/models"
)

// Initialize opens a connection for driver ("mysql", "postgres" or "sqlite").
func Initialize(driver, databaseURL, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(databaseURL)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(databaseURL))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(logLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every new connection to ":memory:" is a fresh empty database.
	if driver == "sqlite" && strings.Contains(databaseURL, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off by
// default, so the ON DELETE actions of the schema apply.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	if err := addSelfFollowGuard(db); err != nil {
		return fmt.Errorf("failed to add self-follow guard: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	indexes := []struct {
		model interface{}
		name  string
		sql   string
	}{
		{&models.Post{}, "idx_posts_group_pub_date", "CREATE INDEX idx_posts_group_pub_date ON posts(group_id, pub_date DESC)"},
		{&models.Post{}, "idx_posts_author_pub_date", "CREATE INDEX idx_posts_author_pub_date ON posts(author_id, pub_date DESC)"},
		{&models.Comment{}, "idx_comments_post_created", "CREATE INDEX idx_comments_post_created ON comments(post_id, created DESC)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Exec(idx.sql).Error; err != nil {
			logs.LogJSON("WARN", "Could not create index", map[string]interface{}{
				"index": idx.name,
				"error": err.Error(),
			})
		}
	}

	return nil
}

const (
	selfFollowCheck   = "ck_follows_no_self"
	selfFollowTrigger = "trg_follows_no_self"
)

// addSelfFollowGuard rejects follows where user_id = author_id. MySQL refuses
// a CHECK on columns used by an ON DELETE CASCADE foreign key (error 3823),
// so there and on sqlite it is a BEFORE INSERT trigger.
func addSelfFollowGuard(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		if db.Migrator().HasConstraint(&models.Follow{}, selfFollowCheck) {
			return nil
		}
		return db.Exec("ALTER TABLE follows ADD CONSTRAINT " + selfFollowCheck + " CHECK (user_id <> author_id)").Error
	case "mysql":
		var count int64
		if err := db.Raw(
			"SELECT COUNT(*) FROM information_schema.triggers WHERE trigger_schema = DATABASE() AND trigger_name = ?",
			selfFollowTrigger,
		).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return db.Exec("CREATE TRIGGER " + selfFollowTrigger + " BEFORE INSERT ON follows FOR EACH ROW " +
			"BEGIN IF NEW.user_id = NEW.author_id THEN " +
			"SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'cannot follow yourself'; " +
			"END IF; END").Error
	case "sqlite":
		return db.Exec("CREATE TRIGGER IF NOT EXISTS " + selfFollowTrigger + " BEFORE INSERT ON follows " +
			"WHEN NEW.user_id = NEW.author_id " +
			"BEGIN SELECT RAISE(ABORT, 'cannot follow yourself'); END").Error
	default:
		return nil
	}
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		logs.LogJSON("INFO", "Database already has data, skipping seed", nil)
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{ID: "user-1", Username: "admin", Email: "admin@example.com", Password: string(password), IsAdmin: true}
		author := models.User{ID: "user-2", Username: "leo", FirstName: "Leo", LastName: "Tolstoy", Email: "leo@example.com", Password: string(password)}
		for _, user := range []*models.User{&admin, &author} {
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("could not create test user %s: %w", user.Username, err)
			}
		}

		group := models.Group{Title: "Cats", Slug: "cats", Description: "Posts about cats"}
		if err := tx.Create(&group).Error; err != nil {
			return fmt.Errorf("could not create test group: %w", err)
		}

		posts := []models.Post{
			{Text: "First post, no group", AuthorID: author.ID},
			{Text: "A post about cats", AuthorID: author.ID, GroupID: &group.ID},
		}
		if err := tx.Omit("Author", "Group").Create(&posts).Error; err != nil {
			return fmt.Errorf("could not create test posts: %w", err)
		}

		logs.LogJSON("INFO", "Database seeded with test data", map[string]interface{}{
			"users": 2,
			"posts": len(posts),
		})
		return nil
	})
}
