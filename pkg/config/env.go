package config

// EnvPrefix is handed to envconfig; every field carries an explicit name.
const EnvPrefix = "ERP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "ERP_APP_ENV"
	EnvPort     = "ERP_APP_PORT"
	EnvLogLevel = "ERP_LOG_LEVEL"

	EnvDBDSN     = "ERP_DB_DSN"
	EnvDBHost    = "ERP_DB_HOST"
	EnvDBUser    = "ERP_DB_USER"
	EnvDBName    = "ERP_DB_NAME"
	EnvDBPort    = "ERP_DB_PORT"
	EnvUseSQLite = "ERP_USE_SQLITE"

	EnvRedisURL = "ERP_REDIS_URL"

	EnvRecordsDefaultPageSize = "ERP_RECORDS_DEFAULT_PAGE_SIZE"
	EnvRecordsMaxPageSize     = "ERP_RECORDS_MAX_PAGE_SIZE"
	EnvWorkspaceTTL           = "ERP_WORKSPACE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
