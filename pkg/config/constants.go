package config

// EnvPrefix is passed to envconfig; variable names are spelled out in full on
// each struct tag, so the prefix only matters for variables without one.
const EnvPrefix = "ghorkotha"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "GHORKOTHA_DB_DSN"
	EnvDBHost = "GHORKOTHA_DB_HOST"
	EnvDBUser = "GHORKOTHA_DB_USER"
	EnvDBName = "GHORKOTHA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
