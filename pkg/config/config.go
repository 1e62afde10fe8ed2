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
	Admin        AdminConfig
	Password     PasswordConfig
	Pricing      PricingConfig
	Cart         CartConfig
	Concierge    ConciergeConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"AURALUXE_APP_ENV" required:"true"`
	Port         string `envconfig:"AURALUXE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AURALUXE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AURALUXE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AURALUXE_DB_DSN"`
	Driver string `envconfig:"AURALUXE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AURALUXE_DB_HOST"`
	LegacyPort     int    `envconfig:"AURALUXE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AURALUXE_DB_USER"`
	LegacyPassword string `envconfig:"AURALUXE_DB_PASSWORD"`
	LegacyName     string `envconfig:"AURALUXE_DB_NAME"`
	LegacySSLMode  string `envconfig:"AURALUXE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AURALUXE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AURALUXE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AURALUXE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AURALUXE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AURALUXE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"AURALUXE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AURALUXE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AURALUXE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AURALUXE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AURALUXE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AURALUXE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AURALUXE_JWT_ISSUER" default:"auraluxe"`
	ExpirationMinutes int    `envconfig:"AURALUXE_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AdminConfig holds the single back-office operator's credential as an
// Argon2id hash produced by pkg/security.
type AdminConfig struct {
	PasswordHash string `envconfig:"AURALUXE_ADMIN_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AURALUXE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AURALUXE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AURALUXE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AURALUXE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AURALUXE_ARGON_KEY_LEN" default:"32"`
}

// PricingConfig tunes the rate matcher. StrictRateMatch turns the documented
// fallback-to-first-rate behavior into a NO_MATCHING_RATE failure.
type PricingConfig struct {
	StrictRateMatch bool `envconfig:"AURALUXE_PRICING_STRICT_RATE_MATCH" default:"false"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"AURALUXE_CART_TTL" default:"720h"`
}

type ConciergeConfig struct {
	Enabled bool          `envconfig:"AURALUXE_CONCIERGE_ENABLED" default:"true"`
	Timeout time.Duration `envconfig:"AURALUXE_CONCIERGE_TIMEOUT" default:"8s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AURALUXE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AURALUXE_AUTO_MIGRATE" default:"false"`
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
