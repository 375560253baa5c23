package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	mysqlcfg "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

func postgresDSN(db DBConfig) string {
	port := db.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		db.Host, db.User, db.Password, db.Name, port, db.SSLMode)
}

func mysqlDSN(db DBConfig) string {
	port := db.Port
	if port == "" {
		port = "3306"
	}
	c := mysqlcfg.NewConfig()
	c.User = db.User
	c.Passwd = db.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(db.Host, port)
	c.DBName = db.Name
	c.ParseTime = true
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// postgresDialector dùng pgx mặc định; DB_SQL_DRIVER=postgres chuyển sang lib/pq
func postgresDialector(db DBConfig) gorm.Dialector {
	if db.SQLDriver == "postgres" {
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        postgresDSN(db),
		})
	}
	return postgres.Open(postgresDSN(db))
}

// OpenDB mở kết nối GORM theo driver: postgres, mysql hoặc sqlite
func OpenDB(driver string, cfg Config) (*gorm.DB, error) {
	return openDB(driver, cfg.DB, cfg.SQLitePath)
}

// OpenQueueDB mở file sqlite cục bộ cho session và hàng đợi
func OpenQueueDB(cfg Config) (*gorm.DB, error) {
	return openDB("sqlite", cfg.DB, cfg.QueueSQLitePath)
}

func openDB(driver string, db DBConfig, sqlitePath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgresDialector(db)
	case "mysql":
		dialector = mysql.Open(mysqlDSN(db))
	case "sqlite":
		dialector = sqlite.Open(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to %s: %w", driver, err)
	}
	log.Printf("Successfully connected to %s", driver)
	return conn, nil
}
