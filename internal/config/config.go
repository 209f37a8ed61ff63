package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string `env:"POSTGRES_ADDRESS" env-default:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" env-default:"5433"`
	PostgresDB       string `env:"POSTGRES_DB" env-default:"postgres"`
	PostgresUsername string `env:"POSTGRES_USERNAME" env-default:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" env-default:"testpassword"`

	APIPort          string   `env:"API_PORT" env-default:"9446"`
	OperatorWorkers  int      `env:"OPERATOR_WORKERS" env-default:"4"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:9447"`
	GoogleAudiences  []string `env:"GOOGLE_AUDIENCES" env-separator:","`
	GoogleJWKSURL    string   `env:"GOOGLE_JWKS_URL" env-default:"https://www.googleapis.com/oauth2/v3/certs"`
	JWKSRefreshSpec  string   `env:"JWKS_REFRESH_SPEC" env-default:"@every 6h"`
	SecureCookies    bool     `env:"SECURE_COOKIES" env-default:"false"`
	LogLevel         string   `env:"LOG_LEVEL" env-default:"info"`
	MigrationsSource string   `env:"MIGRATIONS_SOURCE" env-default:"file://migrations"`

	ShellPort       string   `env:"SHELL_PORT" env-default:"9447"`
	ShellOrigin     string   `env:"SHELL_ORIGIN" env-default:"http://localhost:9447"`
	UpstreamURL     string   `env:"UPSTREAM_URL" env-default:"http://localhost:9446"`
	UpstreamTimeout int      `env:"UPSTREAM_TIMEOUT_SECONDS" env-default:"0"`
	CacheName       string   `env:"CACHE_NAME" env-default:"pp_cache"`
	CacheDBPath     string   `env:"CACHE_DB_PATH" env-default:"data/cache.db"`
	LocalDBPath     string   `env:"LOCAL_DB_PATH" env-default:"data/local.db"`
	// CacheAssets is the precache manifest, e.g. "/favicon.ico,/app.js". The
	// assets are fetched from AssetOrigin, or from UpstreamURL when unset.
	CacheAssets     []string `env:"CACHE_ASSETS" env-separator:","`
	AssetOrigin     string   `env:"ASSET_ORIGIN"`

	APIBaseURL    string `env:"API_BASE_URL" env-default:"http://localhost:9446/api"`
	TokenStoreDir string `env:"TOKEN_STORE_DIR" env-default:".pocketplanner"`
	TokenStoreKey string `env:"TOKEN_STORE_KEY"`
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var env Config
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, err
	}

	return &env, nil
}
