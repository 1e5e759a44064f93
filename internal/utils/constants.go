package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command failures.
const ApplicationExecutionFailedMessage = "application execution failed"

// ConfigFileName is the name of the configuration file read from the working
// directory and from the global configuration directory.
const ConfigFileName = ".shinju.yaml"

// GlobalConfigDirectoryName is the directory under the user home that holds
// the global configuration file.
const GlobalConfigDirectoryName = ".shinju"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"
