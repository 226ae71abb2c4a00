// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging, OSCommandRunner runs
// processes through os/exec, and ToolLocator checks that required executables
// are installed before any work begins. Credentials embedded in URL arguments
// are redacted from every log entry and error message.
package execshell
