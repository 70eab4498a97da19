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
	Service      ServiceConfig
	Outlet       OutletConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Receipt      ReceiptConfig
	Checkout     CheckoutConfig
	Shift        ShiftConfig
	Cron         CronConfig
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
	Env          string `envconfig:"KASIRKOPI_APP_ENV" required:"true"`
	Port         string `envconfig:"KASIRKOPI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KASIRKOPI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KASIRKOPI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"KASIRKOPI_SERVICE_KIND" default:"api"`
}

// OutletConfig describes the shop the terminal belongs to. The values feed
// the receipt header and the report titles.
type OutletConfig struct {
	Name     string `envconfig:"KASIRKOPI_OUTLET_NAME" default:"Kasir Kopi"`
	Address  string `envconfig:"KASIRKOPI_OUTLET_ADDRESS"`
	Phone    string `envconfig:"KASIRKOPI_OUTLET_PHONE"`
	Timezone string `envconfig:"KASIRKOPI_OUTLET_TIMEZONE" default:"Asia/Jakarta"`
}

type DBConfig struct {
	DSN    string `envconfig:"KASIRKOPI_DB_DSN"`
	Driver string `envconfig:"KASIRKOPI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KASIRKOPI_DB_HOST"`
	LegacyPort     int    `envconfig:"KASIRKOPI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KASIRKOPI_DB_USER"`
	LegacyPassword string `envconfig:"KASIRKOPI_DB_PASSWORD"`
	LegacyName     string `envconfig:"KASIRKOPI_DB_NAME"`
	LegacySSLMode  string `envconfig:"KASIRKOPI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KASIRKOPI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KASIRKOPI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KASIRKOPI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KASIRKOPI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KASIRKOPI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KASIRKOPI_REDIS_ADDR"`
	Password     string        `envconfig:"KASIRKOPI_REDIS_PASSWORD"`
	DB           int           `envconfig:"KASIRKOPI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KASIRKOPI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KASIRKOPI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KASIRKOPI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KASIRKOPI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KASIRKOPI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"KASIRKOPI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"KASIRKOPI_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"KASIRKOPI_JWT_EXPIRATION_MINUTES" default:"720"`
	RefreshTokenTTLMinutes int    `envconfig:"KASIRKOPI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KASIRKOPI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KASIRKOPI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KASIRKOPI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KASIRKOPI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KASIRKOPI_ARGON_KEY_LEN" default:"32"`
}

// ReceiptConfig shapes the thermal receipt output. Width is the printable
// column count of the paper, 32 for 58mm rolls.
type ReceiptConfig struct {
	Width       int    `envconfig:"KASIRKOPI_RECEIPT_WIDTH" default:"32"`
	FooterLine1 string `envconfig:"KASIRKOPI_RECEIPT_FOOTER_1" default:"Terima kasih!"`
	FooterLine2 string `envconfig:"KASIRKOPI_RECEIPT_FOOTER_2"`
	FeedLines   int    `envconfig:"KASIRKOPI_RECEIPT_FEED_LINES" default:"3"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"KASIRKOPI_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

// ShiftConfig carries the auto-close cutoff used by the cron worker.
type ShiftConfig struct {
	AutoCloseAfter time.Duration `envconfig:"KASIRKOPI_SHIFT_AUTO_CLOSE_AFTER" default:"18h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"KASIRKOPI_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"KASIRKOPI_CRON_LOCK_TTL" default:"30m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KASIRKOPI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KASIRKOPI_AUTO_MIGRATE" default:"false"`
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
