// Package cli constructs the git-importer command-line interface. It wires the
// Cobra root command to the configuration loader and zap loggers, registers the
// import command, and maps import failures onto process exit codes.
package cli
