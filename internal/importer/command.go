package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitimporter/internal/githubauth"
	"github.com/temirov/gitimporter/internal/gitrepo"
	"github.com/temirov/gitimporter/internal/report"
	"github.com/temirov/gitimporter/internal/utils/flags"
	pathutils "github.com/temirov/gitimporter/internal/utils/path"
)

const (
	importCommandUseConstant                = "import"
	importCommandShortDescriptionConstant   = "Mirror a git repository into a GitHub repository"
	importCommandLongDescriptionConstant    = "import mirror-clones the source repository, creates the GitHub repository when it does not exist, pushes every branch and tag, and optionally switches the default branch."
	importCommandExampleConstant            = "  git-importer import -t $GITHUB_TOKEN -u acme -s https://git.example.com/team/service.git -b main"
	unexpectedArgumentsErrorMessageConstant = "import does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "import failed: %w"
	tokenFlagNameConstant                   = "token"
	tokenFlagShorthandConstant              = "t"
	tokenFlagDescriptionConstant            = "GitHub token (falls back to --token-source, GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN, then a prompt)"
	sourceFlagNameConstant                  = "source"
	sourceFlagShorthandConstant             = "s"
	sourceFlagDescriptionConstant           = "Source repository URL (anything git clone accepts)"
	privateFlagNameConstant                 = "private"
	privateFlagDescriptionConstant          = "Create the repository as private"
	descriptionFlagNameConstant             = "description"
	descriptionFlagDescriptionConstant      = "Description template for created repositories ({source_url}, {owner}, {name})"
	hostFlagNameConstant                    = "host"
	hostFlagDescriptionConstant             = "GitHub Enterprise host (empty targets github.com)"
	verifyFlagNameConstant                  = "verify"
	verifyFlagDescriptionConstant           = "Compare pushed branches and tags with the local mirror"
	timeoutFlagNameConstant                 = "timeout"
	timeoutFlagDescriptionConstant          = "Overall time limit for the import, e.g. 10m (0 disables)"
	temporaryRootFlagNameConstant           = "temporary-root"
	temporaryRootFlagDescriptionConstant    = "Directory holding the temporary mirror (defaults to the OS temporary directory)"
	tokenSourceFlagNameConstant             = "token-source"
	tokenSourceFlagDescriptionConstant      = "Token source (env:NAME or file:/path)"
	summaryFormatFlagNameConstant           = "summary-format"
	summaryFormatFlagDescriptionConstant    = "Summary printed after the import"
	tokenPromptConstant                     = "GitHub token: "
	ownerPromptConstant                     = "Target owner (user or organization): "
	sourcePromptConstant                    = "Source repository URL: "
	branchPromptConstant                    = "Default branch (press Enter to skip): "
	namePromptTemplateConstant              = "Repository name (press Enter to use %s): "
	namePromptWithoutDefaultConstant        = "Repository name: "
	tokenResolutionErrorTemplateConstant    = "resolving token: %w"
	promptErrorTemplateConstant             = "reading %s: %w"
	tokenResolvedMessageConstant            = "GitHub token resolved"
	tokenOriginFieldNameConstant            = "token_origin"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current import configuration.
type ConfigurationProvider func() Configuration

// HumanReadableLoggingProvider reports whether command logs use the console format.
type HumanReadableLoggingProvider func() bool

// InteractivePrompter collects missing values and confirmations from the user.
type InteractivePrompter interface {
	ConfirmationPrompter
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

// StageObserverProvider supplies the observer notified about import stages.
type StageObserverProvider func() StageObserver

// PrompterFactory creates a prompter bound to the command streams.
type PrompterFactory func(input io.Reader, output io.Writer) InteractivePrompter

// TokenResolver locates the GitHub token from explicit values, token sources, or the environment.
type TokenResolver interface {
	Resolve(explicitToken string, tokenSource string) (githubauth.ResolvedToken, error)
}

// CommandBuilder assembles the import command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ServiceResolver              ServiceResolver
	TokenResolver                TokenResolver
	PrompterFactory              PrompterFactory
	StageObserverProvider        StageObserverProvider
	HTTPClient                   *http.Client
	APIBaseURL                   string
}

type commandOptions struct {
	importOptions Options
	tokenOrigin   githubauth.TokenOrigin
	timeout       time.Duration
	summaryFormat report.Format
}

type commandFlagValues struct {
	repository *flags.RepositoryFlagValues
	branch     *flags.BranchFlagValues
}

// Build constructs the import command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultConfiguration()

	importCommand := &cobra.Command{
		Use:           importCommandUseConstant,
		Short:         importCommandShortDescriptionConstant,
		Long:          importCommandLongDescriptionConstant,
		Example:       importCommandExampleConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flagValues := commandFlagValues{
		repository: flags.BindRepositoryFlags(importCommand, flags.RepositoryFlagValues{}, flags.DefaultRepositoryFlagDefinitions()),
		branch:     flags.BindBranchFlags(importCommand, flags.BranchFlagValues{}, flags.DefaultBranchFlagDefinition()),
	}
	flags.BindExecutionFlags(importCommand, flags.ExecutionDefaults{AssumeYes: defaults.AssumeYes}, flags.DefaultExecutionFlagDefinitions())

	importCommand.Flags().StringP(tokenFlagNameConstant, tokenFlagShorthandConstant, "", tokenFlagDescriptionConstant)
	importCommand.Flags().StringP(sourceFlagNameConstant, sourceFlagShorthandConstant, "", sourceFlagDescriptionConstant)
	importCommand.Flags().Bool(privateFlagNameConstant, defaults.Private, privateFlagDescriptionConstant)
	importCommand.Flags().String(descriptionFlagNameConstant, "", descriptionFlagDescriptionConstant)
	importCommand.Flags().String(hostFlagNameConstant, "", hostFlagDescriptionConstant)
	importCommand.Flags().Bool(verifyFlagNameConstant, defaults.Verify, verifyFlagDescriptionConstant)
	importCommand.Flags().Duration(timeoutFlagNameConstant, defaults.Timeout, timeoutFlagDescriptionConstant)
	importCommand.Flags().String(temporaryRootFlagNameConstant, "", temporaryRootFlagDescriptionConstant)
	importCommand.Flags().String(tokenSourceFlagNameConstant, "", tokenSourceFlagDescriptionConstant)

	var summaryFormatValue string
	flags.AddChoiceFlag(importCommand.Flags(), &summaryFormatValue, summaryFormatFlagNameConstant, defaults.SummaryFormat, report.SupportedFormats(), summaryFormatFlagDescriptionConstant)

	importCommand.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.runImport(command, arguments, flagValues, summaryFormatValue)
	}

	return importCommand, nil
}

func (builder *CommandBuilder) runImport(command *cobra.Command, arguments []string, flagValues commandFlagValues, summaryFormatValue string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	logger := builder.resolveLogger()
	prompter := builder.resolvePrompter(command)

	parsedOptions, optionsError := builder.parseOptions(command, flagValues, summaryFormatValue, prompter)
	if optionsError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, optionsError)
	}

	if validationError := parsedOptions.importOptions.Validate(); validationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, validationError)
	}

	logger.Debug(tokenResolvedMessageConstant, zap.String(tokenOriginFieldNameConstant, string(parsedOptions.tokenOrigin)))

	importService, serviceError := builder.resolveService(logger, parsedOptions.importOptions, prompter)
	if serviceError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, serviceError)
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	if parsedOptions.timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, parsedOptions.timeout)
		defer cancel()
	}

	result, runError := importService.Run(executionContext, parsedOptions.importOptions)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return report.NewRenderer(parsedOptions.summaryFormat).Render(command.OutOrStdout(), NewSummary(result))
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, flagValues commandFlagValues, summaryFormatValue string, prompter InteractivePrompter) (commandOptions, error) {
	configuration := builder.resolveConfiguration()
	flagSet := command.Flags()

	tokenFlagValue, tokenFlagError := flagSet.GetString(tokenFlagNameConstant)
	if tokenFlagError != nil {
		return commandOptions{}, tokenFlagError
	}
	sourceFlagValue, sourceFlagError := flagSet.GetString(sourceFlagNameConstant)
	if sourceFlagError != nil {
		return commandOptions{}, sourceFlagError
	}
	descriptionFlagValue, descriptionFlagError := flagSet.GetString(descriptionFlagNameConstant)
	if descriptionFlagError != nil {
		return commandOptions{}, descriptionFlagError
	}
	hostFlagValue, hostFlagError := flagSet.GetString(hostFlagNameConstant)
	if hostFlagError != nil {
		return commandOptions{}, hostFlagError
	}
	temporaryRootFlagValue, temporaryRootFlagError := flagSet.GetString(temporaryRootFlagNameConstant)
	if temporaryRootFlagError != nil {
		return commandOptions{}, temporaryRootFlagError
	}
	tokenSourceFlagValue, tokenSourceFlagError := flagSet.GetString(tokenSourceFlagNameConstant)
	if tokenSourceFlagError != nil {
		return commandOptions{}, tokenSourceFlagError
	}

	options := Options{
		Owner:          selectStringValue(flagValues.repository.Owner, configuration.Owner),
		SourceURL:      strings.TrimSpace(sourceFlagValue),
		RepositoryName: strings.TrimSpace(flagValues.repository.Name),
		DefaultBranch:  selectStringValue(flagValues.branch.Name, configuration.DefaultBranch),
		Description:    selectStringValue(descriptionFlagValue, configuration.Description),
		Host:           selectStringValue(hostFlagValue, configuration.Host),
		TemporaryRoot:  configuration.TemporaryRoot,
	}
	if trimmedRoot := strings.TrimSpace(temporaryRootFlagValue); len(trimmedRoot) > 0 {
		options.TemporaryRoot = pathutils.NewHomeExpander().Expand(trimmedRoot)
	}

	var boolError error
	if options.Private, boolError = selectBoolValue(command, privateFlagNameConstant, configuration.Private); boolError != nil {
		return commandOptions{}, boolError
	}
	if options.Verify, boolError = selectBoolValue(command, verifyFlagNameConstant, configuration.Verify); boolError != nil {
		return commandOptions{}, boolError
	}
	if options.AssumeYes, boolError = selectBoolValue(command, flags.AssumeYesFlagName, configuration.AssumeYes); boolError != nil {
		return commandOptions{}, boolError
	}
	interactiveRequested, interactiveError := selectBoolValue(command, flags.InteractiveFlagName, false)
	if interactiveError != nil {
		return commandOptions{}, interactiveError
	}

	timeoutValue := configuration.Timeout
	if flagSet.Changed(timeoutFlagNameConstant) {
		flagTimeout, timeoutFlagError := flagSet.GetDuration(timeoutFlagNameConstant)
		if timeoutFlagError != nil {
			return commandOptions{}, timeoutFlagError
		}
		timeoutValue = flagTimeout
	}

	formatValue := configuration.SummaryFormat
	if flagSet.Changed(summaryFormatFlagNameConstant) {
		formatValue = summaryFormatValue
	}
	summaryFormat, formatError := report.ParseFormat(formatValue)
	if formatError != nil {
		return commandOptions{}, newImportError(ErrorKindInvalidInput, StageInit, formatError)
	}

	resolvedToken, tokenError := builder.resolveToken(tokenFlagValue, selectStringValue(tokenSourceFlagValue, configuration.TokenSource))
	if tokenError != nil {
		return commandOptions{}, tokenError
	}
	options.Token = resolvedToken.Value

	interactive := interactiveRequested || len(options.Token) == 0 || len(options.Owner) == 0 || len(options.SourceURL) == 0
	if interactive {
		if promptError := collectMissingValues(prompter, &options); promptError != nil {
			return commandOptions{}, promptError
		}
		if len(resolvedToken.Value) == 0 {
			resolvedToken.Origin = githubauth.TokenOriginPrompt
		}
	}

	if len(options.RepositoryName) == 0 && len(options.SourceURL) > 0 {
		derivedName, derivationError := gitrepo.RepositoryNameFromURL(options.SourceURL)
		if derivationError != nil {
			return commandOptions{}, newImportError(ErrorKindInvalidInput, StageInit, derivationError)
		}
		options.RepositoryName = derivedName
	}

	return commandOptions{importOptions: options, tokenOrigin: resolvedToken.Origin, timeout: timeoutValue, summaryFormat: summaryFormat}, nil
}

// resolveToken returns an empty token without error when none is configured, leaving it to the prompt.
func (builder *CommandBuilder) resolveToken(explicitToken string, tokenSource string) (githubauth.ResolvedToken, error) {
	tokenResolver := builder.TokenResolver
	if tokenResolver == nil {
		tokenResolver = githubauth.NewResolver(nil, nil)
	}

	resolvedToken, resolutionError := tokenResolver.Resolve(explicitToken, tokenSource)
	if resolutionError != nil {
		if errors.Is(resolutionError, githubauth.ErrTokenNotFound) {
			return githubauth.ResolvedToken{}, nil
		}
		return githubauth.ResolvedToken{}, newImportError(ErrorKindInvalidInput, StageInit, fmt.Errorf(tokenResolutionErrorTemplateConstant, resolutionError))
	}
	return resolvedToken, nil
}

// collectMissingValues prompts only for values that are still empty.
func collectMissingValues(prompter InteractivePrompter, options *Options) error {
	if len(options.Token) == 0 {
		token, readError := prompter.ReadSecret(tokenPromptConstant)
		if readError != nil {
			return fmt.Errorf(promptErrorTemplateConstant, tokenFieldNameConstant, readError)
		}
		options.Token = token
	}

	lineValues := []struct {
		fieldName string
		prompt    string
		target    *string
	}{
		{fieldName: ownerFieldNameConstant, prompt: ownerPromptConstant, target: &options.Owner},
		{fieldName: sourceFieldNameConstant, prompt: sourcePromptConstant, target: &options.SourceURL},
		{fieldName: branchFieldNameConstant, prompt: branchPromptConstant, target: &options.DefaultBranch},
	}
	for _, lineValue := range lineValues {
		if len(*lineValue.target) > 0 {
			continue
		}
		answer, readError := prompter.ReadLine(lineValue.prompt)
		if readError != nil {
			return fmt.Errorf(promptErrorTemplateConstant, lineValue.fieldName, readError)
		}
		*lineValue.target = answer
	}

	if len(options.RepositoryName) == 0 {
		namePrompt := namePromptWithoutDefaultConstant
		if derivedName, derivationError := gitrepo.RepositoryNameFromURL(options.SourceURL); derivationError == nil {
			namePrompt = fmt.Sprintf(namePromptTemplateConstant, derivedName)
		}
		answer, readError := prompter.ReadLine(namePrompt)
		if readError != nil {
			return fmt.Errorf(promptErrorTemplateConstant, repositoryNameFieldNameConstant, readError)
		}
		options.RepositoryName = answer
	}
	return nil
}

// NewSummary converts a Result into its displayable form.
func NewSummary(result Result) report.Summary {
	return report.Summary{
		Outcome:              string(result.Outcome),
		SourceURL:            result.SourceURL,
		TargetURL:            result.TargetURL,
		RepositoryURL:        result.RepositoryURL,
		AuthenticatedLogin:   result.AuthenticatedLogin,
		DefaultBranch:        result.DefaultBranch,
		DefaultBranchChanged: result.DefaultBranchChanged,
		BranchCount:          result.BranchCount,
		TagCount:             result.TagCount,
		Verified:             result.Verified,
		Duration:             result.Duration.Round(time.Millisecond).String(),
	}
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) InteractivePrompter {
	if builder.PrompterFactory != nil {
		return builder.PrompterFactory(command.InOrStdin(), command.ErrOrStderr())
	}
	return NewConsolePrompter(command.InOrStdin(), command.ErrOrStderr())
}

func (builder *CommandBuilder) resolveService(logger *zap.Logger, options Options, prompter ConfirmationPrompter) (ImportExecutor, error) {
	if builder.ServiceResolver != nil {
		return builder.ServiceResolver.Resolve(logger, options, prompter)
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	var stageObserver StageObserver
	if builder.StageObserverProvider != nil {
		stageObserver = builder.StageObserverProvider()
	}

	defaultResolver := &DefaultServiceResolver{
		Observer:             stageObserver,
		HTTPClient:           builder.HTTPClient,
		APIBaseURL:           builder.APIBaseURL,
		HumanReadableLogging: humanReadableLogging,
	}
	return defaultResolver.Resolve(logger, options, prompter)
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}

func selectBoolValue(command *cobra.Command, flagName string, configurationValue bool) (bool, error) {
	if !command.Flags().Changed(flagName) {
		return configurationValue, nil
	}
	return command.Flags().GetBool(flagName)
}
