package constants

const (
	// Connection types supported by the demo kit.
	ConnectionTypePostgres  = "postgres"
	ConnectionTypeSnowflake = "snowflake"

	// EnvVarPrefix is used to build environment variable names e.g. CDCDEMO_LOG_LEVEL.
	EnvVarPrefix = "CDCDEMO"

	// TimeFormatYearSeconds is compatible with Postgres and Snowflake date-time literals.
	TimeFormatYearSeconds = "20060102T150405"

	// Default object names created by the setup actions.
	DefaultSourceSchema    = "clinic"
	DefaultPublicationName = "clinic_cdc_pub"
	DefaultTargetRole      = "CDC_DEMO_ROLE"
	DefaultTargetWarehouse = "CDC_DEMO_WH"
	DefaultTargetDatabase  = "CDC_DEMO_DB"
	DefaultTargetSchema    = "CLINIC"
	DefaultNetworkRule     = "CDC_DEMO_EGRESS_RULE"
	DefaultSecretName      = "CDC_DEMO_PG_SECRET"
	DefaultIntegrationName = "CDC_DEMO_ACCESS_INTEGRATION"
	DefaultStageName       = "CDC_DEMO_STAGE"
	DefaultSourcePort      = 5432

	// Default seed volumes. The verify action treats these as lower bounds
	// because the simulate action adds rows on top of a seeded load.
	DefaultSeedPatients     = 100
	DefaultSeedDoctors      = 10
	DefaultSeedAppointments = 170

	EmojiBang = "\U0001F4A5"
)
