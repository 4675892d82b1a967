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
	FeatureFlags FeatureFlagsConfig
	Records      RecordsConfig
	Workspace    WorkspaceConfig
	Idempotency  IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Records.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ERP_APP_ENV" required:"true"`
	Port         string   `envconfig:"ERP_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"ERP_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ERP_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ERP_CORS_ORIGINS" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ERP_DB_DSN"`
	Driver string `envconfig:"ERP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ERP_DB_HOST"`
	LegacyPort     int    `envconfig:"ERP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ERP_DB_USER"`
	LegacyPassword string `envconfig:"ERP_DB_PASSWORD"`
	LegacyName     string `envconfig:"ERP_DB_NAME"`
	LegacySSLMode  string `envconfig:"ERP_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"ERP_DB_SQLITE_PATH" default:"erp_records.db"`

	MaxOpenConns    int           `envconfig:"ERP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ERP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ERP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ERP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ERP_REDIS_URL"`
	Address      string        `envconfig:"ERP_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"ERP_REDIS_PASSWORD"`
	DB           int           `envconfig:"ERP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ERP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ERP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ERP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ERP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ERP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ERP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ERP_AUTO_MIGRATE" default:"false"`
}

// RecordsConfig controls the record list defaults handed to new views.
type RecordsConfig struct {
	DefaultPageSize int    `envconfig:"ERP_RECORDS_DEFAULT_PAGE_SIZE" default:"50"`
	MaxPageSize     int    `envconfig:"ERP_RECORDS_MAX_PAGE_SIZE" default:"200"`
	ExportSheetName string `envconfig:"ERP_RECORDS_EXPORT_SHEET" default:"Records"`
}

func (r RecordsConfig) validate() error {
	if r.DefaultPageSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvRecordsDefaultPageSize)
	}
	if r.MaxPageSize < r.DefaultPageSize {
		return fmt.Errorf("%s must be at least %s", EnvRecordsMaxPageSize, EnvRecordsDefaultPageSize)
	}
	return nil
}

type WorkspaceConfig struct {
	TTL time.Duration `envconfig:"ERP_WORKSPACE_TTL" default:"12h"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"ERP_IDEMPOTENCY_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
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
