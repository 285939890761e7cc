package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv        = "LANDTRACK_APP_ENV"
	EnvLogLevel      = "LANDTRACK_LOG_LEVEL"
	EnvDBPath        = "LANDTRACK_DB_PATH"
	EnvDBBusyTimeout = "LANDTRACK_DB_BUSY_TIMEOUT"
	EnvAutoMigrate   = "LANDTRACK_AUTO_MIGRATE"
)
