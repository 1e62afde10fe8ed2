package config

const (
	// EnvPrefix is empty because every tag carries the full AURALUXE_ name.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AURALUXE_DB_DSN"
	EnvDBHost = "AURALUXE_DB_HOST"
	EnvDBUser = "AURALUXE_DB_USER"
	EnvDBName = "AURALUXE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
