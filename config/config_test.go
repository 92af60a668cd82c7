package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshConfig(t *testing.T, env map[string]string) *Config {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	ResetConfigForTest()
	t.Cleanup(ResetConfigForTest)
	return LoadConfig()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := freshConfig(t, map[string]string{
		"APPNAME": "", "APPENV": "", "APPPORT": "", "GINMODE": "", "DBDRIVER": "",
		"CORSORIGINS": "", "UPLOADBACKEND": "", "UPLOADDIR": "", "UPLOADMAXBYTES": "", "S3REGION": "",
	})

	assert.Equal(t, "Colposcopy API", cfg.AppName)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, uint16(8000), cfg.AppPort)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "local", cfg.UploadBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(20<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	cfg := freshConfig(t, map[string]string{
		"APPPORT":        "9090",
		"DBDRIVER":       "Postgres",
		"DBPORT":         "6543",
		"CORSORIGINS":    "https://a.example.com, https://b.example.com ,",
		"UPLOADBACKEND":  "S3",
		"UPLOADMAXBYTES": "1048576",
		"S3BUCKET":       "exam-images",
	})

	assert.Equal(t, uint16(9090), cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, uint16(6543), cfg.DBPort)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "s3", cfg.UploadBackend)
	assert.Equal(t, int64(1<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "exam-images", cfg.S3Bucket)
}

func TestLoadConfig_InvalidUploadMaxFallsBack(t *testing.T) {
	cfg := freshConfig(t, map[string]string{"UPLOADMAXBYTES": "-5"})
	assert.Equal(t, int64(defaultUploadMaxBytes), cfg.UploadMaxBytes)
}

func TestLoadConfig_Singleton(t *testing.T) {
	first := freshConfig(t, map[string]string{"APPNAME": "First"})
	t.Setenv("APPNAME", "Second")
	assert.Same(t, first, LoadConfig())
	assert.Equal(t, "First", LoadConfig().AppName)
}

func TestConfig_DSN(t *testing.T) {
	mysqlCfg := &Config{DBDriver: "mysql", DBHost: "db", DBUser: "u", DBPass: "p", DBName: "colpo"}
	assert.Equal(t, "u:p@tcp(db:3306)/colpo?parseTime=true&loc=UTC&charset=utf8mb4", mysqlCfg.DSN())

	pgCfg := &Config{DBDriver: "postgres", DBHost: "db", DBPort: 5433, DBUser: "u", DBPass: "p", DBName: "colpo"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=colpo sslmode=disable TimeZone=UTC", pgCfg.DSN())
}

func TestTestDSN_Unique(t *testing.T) {
	a := TestDSN("x")
	b := TestDSN("x")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "_foreign_keys=on")
	assert.Contains(t, a, "mode=memory")
}

func TestConnectDatabase_TestEnv(t *testing.T) {
	freshConfig(t, map[string]string{"APPENV": "test"})

	db, err := ConnectDatabase()
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, "sqlite", db.Dialector.Name())

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestConnectDatabase_UnsupportedDriver(t *testing.T) {
	freshConfig(t, map[string]string{"APPENV": "production", "DBDRIVER": "oracle"})

	db, err := ConnectDatabase()
	assert.Nil(t, db)
	assert.ErrorContains(t, err, `unsupported DBDRIVER "oracle"`)
}
