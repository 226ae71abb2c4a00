package flags

import "github.com/spf13/cobra"

const (
	// RepositoryOwnerFlagName exposes the shared repository owner flag name.
	RepositoryOwnerFlagName = "owner"
	// RepositoryOwnerFlagShorthand provides the shorthand for the owner flag.
	RepositoryOwnerFlagShorthand = "u"
	// RepositoryOwnerFlagUsage describes the owner flag purpose.
	RepositoryOwnerFlagUsage = "GitHub user or organization that owns the target repository"
	// RepositoryNameFlagName exposes the shared repository name flag name.
	RepositoryNameFlagName = "name"
	// RepositoryNameFlagShorthand provides the shorthand for the repository name flag.
	RepositoryNameFlagShorthand = "n"
	// RepositoryNameFlagUsage describes the repository name flag purpose.
	RepositoryNameFlagUsage = "Target repository name (defaults to the source repository name)"
	// BranchFlagName exposes the shared branch flag name.
	BranchFlagName = "branch"
	// BranchFlagShorthand provides the shorthand for the branch flag.
	BranchFlagShorthand = "b"
	// BranchFlagUsage describes the branch flag purpose.
	BranchFlagUsage = "Default branch to set on the target repository after the push"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Confirm overwriting an existing repository without prompting"
	// InteractiveFlagName exposes the shared interactive flag name.
	InteractiveFlagName = "interactive"
	// InteractiveFlagShorthand provides the shorthand for the interactive flag.
	InteractiveFlagShorthand = "i"
	// InteractiveFlagUsage describes the shared interactive flag purpose.
	InteractiveFlagUsage = "Prompt for any value not supplied through flags or configuration"
)

// RepositoryFlagDefinition captures configuration for repository context flags.
type RepositoryFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// RepositoryFlagDefinitions groups repository context flag definitions.
type RepositoryFlagDefinitions struct {
	Owner RepositoryFlagDefinition
	Name  RepositoryFlagDefinition
}

// DefaultRepositoryFlagDefinitions returns the owner and name definitions used by the import command.
func DefaultRepositoryFlagDefinitions() RepositoryFlagDefinitions {
	return RepositoryFlagDefinitions{
		Owner: RepositoryFlagDefinition{Name: RepositoryOwnerFlagName, Shorthand: RepositoryOwnerFlagShorthand, Usage: RepositoryOwnerFlagUsage, Enabled: true},
		Name:  RepositoryFlagDefinition{Name: RepositoryNameFlagName, Shorthand: RepositoryNameFlagShorthand, Usage: RepositoryNameFlagUsage, Enabled: true},
	}
}

// RepositoryFlagValues stores repository context flag values.
type RepositoryFlagValues struct {
	Owner string
	Name  string
}

// BindRepositoryFlags attaches repository context flags to the provided command.
func BindRepositoryFlags(command *cobra.Command, defaults RepositoryFlagValues, definitions RepositoryFlagDefinitions) *RepositoryFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	persistentFlagSet := command.PersistentFlags()
	if definitions.Owner.Enabled && len(definitions.Owner.Name) > 0 {
		persistentFlagSet.StringVarP(&values.Owner, definitions.Owner.Name, definitions.Owner.Shorthand, defaults.Owner, definitions.Owner.Usage)
	}
	if definitions.Name.Enabled && len(definitions.Name.Name) > 0 {
		persistentFlagSet.StringVarP(&values.Name, definitions.Name.Name, definitions.Name.Shorthand, defaults.Name, definitions.Name.Usage)
	}

	return &values
}

// BranchFlagDefinition captures configuration for branch context flags.
type BranchFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// DefaultBranchFlagDefinition returns the branch definition used by the import command.
func DefaultBranchFlagDefinition() BranchFlagDefinition {
	return BranchFlagDefinition{Name: BranchFlagName, Shorthand: BranchFlagShorthand, Usage: BranchFlagUsage, Enabled: true}
}

// BranchFlagValues stores branch context flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches branch context flags to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.PersistentFlags().StringVarP(&values.Name, definition.Name, definition.Shorthand, defaults.Name, definition.Usage)
	return &values
}
