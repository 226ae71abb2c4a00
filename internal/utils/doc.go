// Package utils exposes reusable helpers consumed by the CLI and its commands.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging, plus the accessor used to
// pass invocation metadata through command contexts.
package utils
