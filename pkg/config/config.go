package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Theme        ThemeConfig
	WhatsApp     WhatsAppConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GHORKOTHA_APP_ENV" required:"true"`
	Port         string `envconfig:"GHORKOTHA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GHORKOTHA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GHORKOTHA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GHORKOTHA_DB_DSN"`
	Driver string `envconfig:"GHORKOTHA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GHORKOTHA_DB_HOST"`
	LegacyPort     int    `envconfig:"GHORKOTHA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GHORKOTHA_DB_USER"`
	LegacyPassword string `envconfig:"GHORKOTHA_DB_PASSWORD"`
	LegacyName     string `envconfig:"GHORKOTHA_DB_NAME"`
	LegacySSLMode  string `envconfig:"GHORKOTHA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GHORKOTHA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GHORKOTHA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GHORKOTHA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GHORKOTHA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GHORKOTHA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GHORKOTHA_REDIS_ADDR"`
	Password     string        `envconfig:"GHORKOTHA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GHORKOTHA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GHORKOTHA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GHORKOTHA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GHORKOTHA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GHORKOTHA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GHORKOTHA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GHORKOTHA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GHORKOTHA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GHORKOTHA_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GHORKOTHA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GHORKOTHA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GHORKOTHA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GHORKOTHA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GHORKOTHA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GHORKOTHA_AUTO_MIGRATE" default:"false"`
}

// ThemeConfig tunes the real-time theme synchronization loop.
type ThemeConfig struct {
	PollInterval       time.Duration `envconfig:"GHORKOTHA_THEME_POLL_INTERVAL" default:"3s"`
	BroadcastFreshness time.Duration `envconfig:"GHORKOTHA_THEME_BROADCAST_FRESHNESS" default:"10s"`
	MaxPollFailures    int           `envconfig:"GHORKOTHA_THEME_MAX_POLL_FAILURES" default:"5"`
	PresenceTimeout    time.Duration `envconfig:"GHORKOTHA_THEME_PRESENCE_TIMEOUT" default:"30s"`
	TransitionWindow   time.Duration `envconfig:"GHORKOTHA_THEME_TRANSITION_WINDOW" default:"200ms"`
	ColorCacheSize     int           `envconfig:"GHORKOTHA_THEME_COLOR_CACHE_SIZE" default:"256"`
}

type WhatsAppConfig struct {
	// DefaultPhone is used when no whatsapp_settings row exists yet.
	DefaultPhone string `envconfig:"GHORKOTHA_WHATSAPP_DEFAULT_PHONE" default:"8801738354089"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GHORKOTHA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
