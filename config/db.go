package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking/models"
	"hotel-booking/utils"
)

const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var DB *gorm.DB

// Settings is the database part of the environment.
type Settings struct {
	Driver   string
	DSN      string
	DBName   string
	LogLevel string
	SeedDemo bool
}

// LoadSettings resolves the driver and DSN from the environment.
func LoadSettings() (Settings, error) {
	s := Settings{
		Driver:   strings.ToLower(utils.EnvOrDefault("DB_DRIVER", DriverMySQL)),
		LogLevel: utils.EnvOrDefault("DB_LOG_LEVEL", "warn"),
		SeedDemo: utils.EnvBool("SEED_DEMO", false),
	}

	var err error
	switch s.Driver {
	case DriverMySQL:
		s.DSN, s.DBName, err = resolveMySQLDSN()
	case DriverPostgres:
		s.DSN, s.DBName = resolvePostgresDSN()
	case DriverSQLite, "sqlite3":
		s.Driver = DriverSQLite
		s.DBName = utils.EnvOrDefault("SQLITE_PATH", "hotel_booking.db")
		s.DSN = sqliteDSN(s.DBName)
	default:
		err = fmt.Errorf("unsupported DB_DRIVER %q", s.Driver)
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func newMySQLConfig() *mysqldriver.Config {
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	cfg := newMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)

	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if cfg.DBName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// always parse into time.Time in local time
		default:
			cfg.Params[key] = values[0]
		}
	}

	return cfg.FormatDSN(), cfg.DBName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		cfg, err := mysqldriver.ParseDSN(raw)
		if err != nil {
			return "", "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), cfg.DBName, nil
	}

	cfg := newMySQLConfig()
	cfg.User = utils.EnvOrDefault("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASS")
	cfg.Addr = net.JoinHostPort(
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_PORT", "3306"),
	)
	cfg.DBName = utils.EnvOrDefault("DB_NAME", "hotel_booking")
	return cfg.FormatDSN(), cfg.DBName, nil
}

func resolvePostgresDSN() (string, string) {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		dbName := ""
		if u, err := url.Parse(raw); err == nil {
			dbName = strings.TrimPrefix(u.Path, "/")
		}
		return raw, dbName
	}

	dbName := utils.EnvOrDefault("DB_NAME", "hotel_booking")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		dbName,
		utils.EnvOrDefault("DB_PORT", "5432"),
		utils.EnvOrDefault("DB_SSLMODE", "disable"),
	)
	return dsn, dbName
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection unless asked. Cascades depend on it.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func newGormLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		// plain DATETIME so DEFAULT CURRENT_TIMESTAMP is accepted
		return mysql.New(mysql.Config{DSN: dsn, DisableDatetimePrecision: true}), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(dsn)), nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}

// Open connects with the given driver. Constraint errors come back translated
// into gorm's sentinel errors (gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated).
func Open(driver, dsn, logLevel string) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer; also keeps a :memory: database alive
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// Migrate creates or updates the six tables in parent to child order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ConnectDatabase opens the configured database, migrates it, optionally
// seeds demo data and stores the handle in DB.
func ConnectDatabase() (Settings, error) {
	s, err := LoadSettings()
	if err != nil {
		return Settings{}, err
	}

	db, err := Open(s.Driver, s.DSN, s.LogLevel)
	if err != nil {
		return Settings{}, err
	}
	log.Printf("connected to %s database %q", s.Driver, s.DBName)

	if err := Migrate(db); err != nil {
		return Settings{}, err
	}

	if s.SeedDemo {
		if err := SeedDatabase(db); err != nil {
			log.Printf("warning: demo seed failed: %v", err)
		}
	}

	DB = db
	return s, nil
}
