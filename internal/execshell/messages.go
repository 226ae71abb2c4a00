package execshell

import (
	"fmt"
	"net/url"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	schemeSeparatorConstant                 = "://"
	userInfoSeparatorConstant               = "@"
	httpSchemeConstant                      = "http"
	httpsSchemeConstant                     = "https"
	redactedCredentialConstant              = "xxxxx"
)

const (
	gitCloneSubcommandNameConstant = "clone"
	gitPushSubcommandNameConstant  = "push"
	gitMirrorFlagConstant          = "--mirror"
)

const (
	gitMirrorCloneStartTemplateConstant            = "Mirroring %s into %s"
	gitMirrorCloneSuccessTemplateConstant          = "Mirrored %s into %s"
	gitMirrorCloneFailureTemplateConstant          = "Failed to mirror %s into %s (exit code %d%s)"
	gitMirrorCloneExecutionFailureTemplateConstant = "Unable to mirror %s into %s: %s"
	gitMirrorPushStartTemplateConstant             = "Pushing all references from %s to %s"
	gitMirrorPushSuccessTemplateConstant           = "Pushed all references from %s to %s"
	gitMirrorPushFailureTemplateConstant           = "Failed to push references from %s to %s (exit code %d%s)"
	gitMirrorPushExecutionFailureTemplateConstant  = "Unable to push references from %s to %s: %s"
)

type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	switch strings.TrimSpace(arguments[0]) {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitMirrorFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	positionalArguments := formatter.extractPositionalArguments(command.Details.Arguments[1:])
	source := formatter.ensureValue(RedactURL(formatter.argumentAtIndex(positionalArguments, 0)))
	destination := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))

	templates := stageTemplates{
		start:            gitMirrorCloneStartTemplateConstant,
		success:          gitMirrorCloneSuccessTemplateConstant,
		failure:          gitMirrorCloneFailureTemplateConstant,
		executionFailure: gitMirrorCloneExecutionFailureTemplateConstant,
	}
	return formatter.applyTemplates(templates, []any{source, destination}, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitMirrorFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remote := formatter.ensureValue(RedactURL(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])))
	templates := stageTemplates{
		start:            gitMirrorPushStartTemplateConstant,
		success:          gitMirrorPushSuccessTemplateConstant,
		failure:          gitMirrorPushFailureTemplateConstant,
		executionFailure: gitMirrorPushExecutionFailureTemplateConstant,
	}
	return formatter.applyTemplates(templates, []any{formatter.describeWorkingDirectory(command), remote}, result, failure, stage)
}

func (formatter CommandMessageFormatter) applyTemplates(templates stageTemplates, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		values := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, values...)
	case messageStageExecutionFailure:
		values := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, values...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(RedactArguments(command.Details.Arguments), commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractPositionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	return formatter.argumentAtIndex(formatter.extractPositionalArguments(arguments), 0)
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

// RedactURL masks credentials embedded in http(s) URLs, including tokens supplied as the user name.
// Values that are not URLs with credentials are returned unchanged.
func RedactURL(value string) string {
	if !strings.Contains(value, schemeSeparatorConstant) || !strings.Contains(value, userInfoSeparatorConstant) {
		return value
	}
	parsedURL, parseError := url.Parse(value)
	if parseError != nil || parsedURL.User == nil {
		return value
	}
	if _, passwordSet := parsedURL.User.Password(); passwordSet {
		return parsedURL.Redacted()
	}
	switch strings.ToLower(parsedURL.Scheme) {
	case httpSchemeConstant, httpsSchemeConstant:
		parsedURL.User = url.User(redactedCredentialConstant)
		return parsedURL.String()
	default:
		return value
	}
}

// RedactArguments returns a copy of arguments with credentials removed from URL values.
func RedactArguments(arguments []string) []string {
	redacted := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		redacted = append(redacted, RedactURL(argument))
	}
	return redacted
}
