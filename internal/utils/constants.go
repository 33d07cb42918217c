package utils

const (
	// ApplicationName is the binary name used in usage text and configuration paths.
	ApplicationName = "codeheader"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = "." + ApplicationName
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "config.yaml"

	// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal log entry written when a run fails.
	ApplicationExecutionFailedMessage = "codeheader failed"
)
