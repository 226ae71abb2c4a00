package importer

import (
	"strings"
	"time"

	"github.com/temirov/gitimporter/internal/report"
	pathutils "github.com/temirov/gitimporter/internal/utils/path"
)

const (
	configurationKeySeparatorConstant     = "."
	ownerConfigurationKeyConstant         = "owner"
	defaultBranchConfigurationKeyConstant = "default_branch"
	privateConfigurationKeyConstant       = "private"
	descriptionConfigurationKeyConstant   = "description"
	hostConfigurationKeyConstant          = "host"
	verifyConfigurationKeyConstant        = "verify"
	timeoutConfigurationKeyConstant       = "timeout"
	temporaryRootConfigurationKeyConstant = "temporary_root"
	tokenSourceConfigurationKeyConstant   = "token_source"
	assumeYesConfigurationKeyConstant     = "assume_yes"
	summaryFormatConfigurationKeyConstant = "summary_format"
)

var importConfigurationHomeDirectoryExpander = pathutils.NewHomeExpander()

// Configuration stores defaults for the import command loaded from configuration files and the environment.
type Configuration struct {
	Owner         string        `mapstructure:"owner"`
	DefaultBranch string        `mapstructure:"default_branch"`
	Private       bool          `mapstructure:"private"`
	Description   string        `mapstructure:"description"`
	Host          string        `mapstructure:"host"`
	Verify        bool          `mapstructure:"verify"`
	Timeout       time.Duration `mapstructure:"timeout"`
	TemporaryRoot string        `mapstructure:"temporary_root"`
	TokenSource   string        `mapstructure:"token_source"`
	AssumeYes     bool          `mapstructure:"assume_yes"`
	SummaryFormat string        `mapstructure:"summary_format"`
}

// DefaultConfiguration supplies baseline values for the import command.
func DefaultConfiguration() Configuration {
	return Configuration{
		Description:   DefaultDescriptionTemplate,
		Verify:        true,
		SummaryFormat: string(report.FormatText),
	}
}

// DefaultConfigurationValues returns the default import settings keyed under the provided configuration prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	values := map[string]any{
		ownerConfigurationKeyConstant:         defaults.Owner,
		defaultBranchConfigurationKeyConstant: defaults.DefaultBranch,
		privateConfigurationKeyConstant:       defaults.Private,
		descriptionConfigurationKeyConstant:   defaults.Description,
		hostConfigurationKeyConstant:          defaults.Host,
		verifyConfigurationKeyConstant:        defaults.Verify,
		timeoutConfigurationKeyConstant:       defaults.Timeout,
		temporaryRootConfigurationKeyConstant: defaults.TemporaryRoot,
		tokenSourceConfigurationKeyConstant:   defaults.TokenSource,
		assumeYesConfigurationKeyConstant:     defaults.AssumeYes,
		summaryFormatConfigurationKeyConstant: defaults.SummaryFormat,
	}

	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return values
	}

	prefixedValues := make(map[string]any, len(values))
	for key, value := range values {
		prefixedValues[trimmedPrefix+configurationKeySeparatorConstant+key] = value
	}
	return prefixedValues
}

// Sanitize trims configured values, expands the temporary root, and restores blank defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	sanitized.Host = strings.TrimSpace(configuration.Host)
	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	sanitized.SummaryFormat = strings.ToLower(strings.TrimSpace(configuration.SummaryFormat))
	if len(sanitized.SummaryFormat) == 0 {
		sanitized.SummaryFormat = string(report.FormatText)
	}
	if len(strings.TrimSpace(configuration.Description)) == 0 {
		sanitized.Description = DefaultDescriptionTemplate
	}
	if sanitized.Timeout < 0 {
		sanitized.Timeout = 0
	}

	trimmedRoot := strings.TrimSpace(configuration.TemporaryRoot)
	if len(trimmedRoot) > 0 {
		trimmedRoot = importConfigurationHomeDirectoryExpander.Expand(trimmedRoot)
	}
	sanitized.TemporaryRoot = trimmedRoot
	return sanitized
}
