package config

import (
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, 10, cfg.HRMS.PoolSize, "el pool del HRMS es de 10 conexiones por defecto")
	assert.Equal(t, "PSR", cfg.HRMS.PSRPosition)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 120*time.Minute, cfg.Session.CSRFTTL)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.Jobs.Enabled)
}

func TestFromViper_EnvTienePrioridad(t *testing.T) {
	v := viper.New()
	v.Set("HRMS_POOL_SIZE", "4")
	v.Set("SESSION_TTL_HOURS", "8")
	v.Set("APP_ENV", "production")

	cfg := fromViper(v)

	assert.Equal(t, 4, cfg.HRMS.PoolSize)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestFromViper_EnteroInvalidoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "no-es-numero")

	cfg := fromViper(v)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestHRMSConfig_Validate(t *testing.T) {
	full := HRMSConfig{Host: "hrms", User: "ro", Password: "x", Database: "hr", Port: 3306}
	require.NoError(t, full.Validate())

	missing := HRMSConfig{Host: "hrms"}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHRMSNotConfigured))
	assert.Contains(t, err.Error(), "HRMS_DB_USER")
	assert.Contains(t, err.Error(), "HRMS_DB_NAME")
}

func TestHRMSConfig_DSN(t *testing.T) {
	c := HRMSConfig{Host: "10.0.0.5", Port: 3307, User: "ro", Password: "s3cr3t", Database: "hr", Charset: "utf8"}
	dsn := c.DSN()

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "ro", parsed.User)
	assert.Equal(t, "s3cr3t", parsed.Passwd)
	assert.Equal(t, "10.0.0.5:3307", parsed.Addr)
	assert.Equal(t, "hr", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Equal(t, 30*time.Second, parsed.ReadTimeout)
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.False(t, c.Latin1())
}

// Con latin1 la sesión MySQL también es latin1: el servidor no convierte y el cliente decodifica una sola vez.
func TestHRMSConfig_DSNLatin1(t *testing.T) {
	c := HRMSConfig{Host: "hrms", Port: 3306, User: "ro", Password: "x", Database: "hr", Charset: "LATIN1"}
	assert.True(t, c.Latin1())
	assert.Contains(t, c.DSN(), "charset=latin1")
	assert.NotContains(t, c.DSN(), "utf8mb4")
}

func TestHRMSConfig_DSNEscapaPassword(t *testing.T) {
	c := HRMSConfig{Host: "hrms", Port: 3306, User: "ro", Password: "p@ss/w:rd", Database: "hr"}
	parsed, err := mysql.ParseDSN(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "p@ss/w:rd", parsed.Passwd)
	assert.Equal(t, "hr", parsed.DBName)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "farmadist", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/farmadist?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
