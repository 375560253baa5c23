package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config gom toàn bộ cấu hình đọc từ biến môi trường
type Config struct {
	Port string
	Env  string

	// StoreDriver chọn nơi lưu collection chính: memory, redis, postgres, mysql, sqlite
	StoreDriver string
	// QueueDriver chọn nơi lưu session và hàng đợi đồng bộ: memory hoặc sqlite
	QueueDriver string

	SQLitePath      string
	QueueSQLitePath string

	DB DBConfig

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int

	PreventOverlap bool
	VerifyPrice    bool

	SyncProbeSpec string

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string

	LogLevel string
}

type DBConfig struct {
	User      string
	Password  string
	Host      string
	Port      string
	Name      string
	SSLMode   string
	SQLDriver string // pgx (mặc định) hoặc postgres (lib/pq)
}

// LoadEnv nạp biến môi trường từ tệp `.env` nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Không thể nạp file .env, sử dụng biến môi trường hệ thống nếu có")
	}
}

// Load đọc cấu hình, dùng giá trị mặc định cho biến không được đặt
func Load() Config {
	LoadEnv()

	env := GetEnv("ENV", "dev")
	return Config{
		Port:             GetEnv("PORT", "8083"),
		Env:              env,
		StoreDriver:      strings.ToLower(GetEnv("STORE_DRIVER", "memory")),
		QueueDriver:      strings.ToLower(GetEnv("QUEUE_DRIVER", "memory")),
		SQLitePath:       GetEnv("SQLITE_PATH", "hotelbook.db"),
		QueueSQLitePath:  GetEnv("QUEUE_SQLITE_PATH", "hotelbook_local.db"),
		DB:               dbConfigByEnv(env),
		RedisAddr:        GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisUser:        os.Getenv("REDIS_USER"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getInt("REDIS_DB", 0),
		RedisPrefix:      GetEnv("REDIS_PREFIX", "hotelbook:"),
		TokenSecret:      GetEnv("SECRET_KEY_ACCESS_TOKEN", "hotelbook-dev-secret"),
		TokenTTL:         time.Duration(getInt("TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		BcryptCost:       getInt("BCRYPT_COST", 10),
		PreventOverlap:   getBool("BOOKING_PREVENT_OVERLAP", false),
		VerifyPrice:      getBool("BOOKING_VERIFY_PRICE", false),
		SyncProbeSpec:    GetEnv("SYNC_PROBE_SPEC", "@every 30s"),
		CloudinaryCloud:  os.Getenv("CLOUDINARY_CLOUD"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET"),
		CloudinaryFolder: GetEnv("CLOUDINARY_FOLDER", "hotels"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
	}
}

// dbConfigByEnv đọc DB_* theo tiền tố môi trường: DEV_, QC_, PROD_
func dbConfigByEnv(env string) DBConfig {
	prefix := strings.ToUpper(env) + "_"
	return DBConfig{
		User:      GetEnv(prefix+"DB_USER", os.Getenv("DB_USER")),
		Password:  GetEnv(prefix+"DB_PASSWORD", os.Getenv("DB_PASSWORD")),
		Host:      GetEnv(prefix+"DB_HOST", GetEnv("DB_HOST", "localhost")),
		Port:      GetEnv(prefix+"DB_PORT", os.Getenv("DB_PORT")),
		Name:      GetEnv(prefix+"DB_NAME", GetEnv("DB_NAME", "hotelbook")),
		SSLMode:   GetEnv(prefix+"DB_SSLMODE", GetEnv("DB_SSLMODE", "disable")),
		SQLDriver: strings.ToLower(GetEnv("DB_SQL_DRIVER", "pgx")),
	}
}

func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
