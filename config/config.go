package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultUploadMaxBytes = 20 << 20

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	DBDriver string `json:"dbdriver"`
	DBHost   string `json:"dbhost"`
	DBPort   uint16 `json:"dbport"`
	DBName   string `json:"dbname"`
	DBUser   string `json:"dbuser"`
	DBPass   string `json:"dbpass"`

	CORSOrigins []string `json:"corsorigins"`

	UploadBackend  string `json:"uploadbackend"`
	UploadDir      string `json:"uploaddir"`
	UploadMaxBytes int64  `json:"uploadmaxbytes"`

	S3Bucket    string `json:"s3bucket"`
	S3Region    string `json:"s3region"`
	S3Endpoint  string `json:"s3endpoint"`
	S3AccessKey string `json:"-"`
	S3SecretKey string `json:"-"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file (if present),
// and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			l := util.Logger()
			l.Warn().Err(err).Msg("error loading .env file")
		}
		config = fromEnv()
	})
	return config
}

// ResetConfigForTest drops the cached Config so the next LoadConfig re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

func fromEnv() *Config {
	appPort, _ := strconv.ParseUint(envOr("APPPORT", "8000"), 10, 16)
	dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)
	uploadMax, err := strconv.ParseInt(os.Getenv("UPLOADMAXBYTES"), 10, 64)
	if err != nil || uploadMax <= 0 {
		uploadMax = defaultUploadMaxBytes
	}

	return &Config{
		AppName: envOr("APPNAME", "Colposcopy API"),
		AppEnv:  envOr("APPENV", "development"),
		AppPort: uint16(appPort),
		GinMode: envOr("GINMODE", "debug"),

		DBDriver: strings.ToLower(envOr("DBDRIVER", "mysql")),
		DBHost:   envOr("DBHOST", "localhost"),
		DBPort:   uint16(dbPort),
		DBName:   os.Getenv("DBNAME"),
		DBUser:   os.Getenv("DBUSER"),
		DBPass:   os.Getenv("DBPASS"),

		CORSOrigins: splitList(envOr("CORSORIGINS", "*")),

		UploadBackend:  strings.ToLower(envOr("UPLOADBACKEND", "local")),
		UploadDir:      envOr("UPLOADDIR", "uploads"),
		UploadMaxBytes: uploadMax,

		S3Bucket:    os.Getenv("S3BUCKET"),
		S3Region:    envOr("S3REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3ENDPOINT"),
		S3AccessKey: os.Getenv("S3ACCESSKEY"),
		S3SecretKey: os.Getenv("S3SECRETKEY"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, port, c.DBUser, c.DBPass, c.DBName)
	default:
		port := c.DBPort
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
			c.DBUser, c.DBPass, c.DBHost, port, c.DBName)
	}
}

// TestDSN returns an in-memory SQLite DSN with foreign keys enforced. Each
// name gets its own database.
func TestDSN(name string) string {
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, time.Now().UnixNano())
}

// ConnectDatabase opens the configured database. With APPENV=test it opens an
// in-memory SQLite database instead.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.AppEnv == "test" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch {
	case cfg.AppEnv == "test":
		dialector = sqlite.Open(TestDSN("colposcopy"))
	case cfg.DBDriver == "postgres":
		dialector = postgres.Open(cfg.DSN())
	case cfg.DBDriver == "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}
