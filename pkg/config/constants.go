package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// qualified names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "KASIRKOPI_APP_ENV"
	EnvPort     = "KASIRKOPI_APP_PORT"
	EnvDBDSN    = "KASIRKOPI_DB_DSN"
	EnvDBHost   = "KASIRKOPI_DB_HOST"
	EnvDBUser   = "KASIRKOPI_DB_USER"
	EnvDBName   = "KASIRKOPI_DB_NAME"
	EnvRedisURL = "KASIRKOPI_REDIS_URL"

	EnvJWTSecret              = "KASIRKOPI_JWT_SECRET"
	EnvJWTIssuer              = "KASIRKOPI_JWT_ISSUER"
	EnvJWTExpMins             = "KASIRKOPI_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "KASIRKOPI_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
