package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyRelayDBType string = "RELAY_DB_TYPE"
	EnvKeyRelayDbPath string = "RELAY_DB_PATH"

	EnvKeyRelayHttpHostPort string = "RELAY_HTTP_HOST_PORT"

	EnvKeyRelayDefaultRate  string = "RELAY_DEFAULT_RATE"
	EnvKeyRelayDefaultBurst string = "RELAY_DEFAULT_BURST"

	EnvKeyFleetServerURL string = "FLEET_SERVER_URL"

	LoggerNameRelayCore     string = "relay_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameWsServer      string = "ws_server"
	LoggerNameStorageSink   string = "storage_sink"
	LoggerNameSimulator     string = "simulator"

	LoggerFieldRelayCategory  string = "category"
	LoggerCategoryRegistry    string = "registry"
	LoggerCategoryTelemetry   string = "telemetry"
	LoggerCategoryCommand     string = "command"
	LoggerCategorySession     string = "session"
	LoggerCategoryControlLoop string = "control_loop"
	LoggerCategoryAppend      string = "append"
	LoggerCategoryQuery       string = "query"
)
