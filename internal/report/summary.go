package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	unsupportedFormatTemplateConstant = "unsupported summary format %q"
	renderErrorTemplateConstant       = "rendering %s summary: %w"
	jsonIndentConstant                = "  "
	yamlIndentConstant                = 2
	fieldColumnHeaderConstant         = "FIELD"
	valueColumnHeaderConstant         = "VALUE"
	outcomeLabelConstant              = "Outcome"
	sourceLabelConstant               = "Source"
	targetLabelConstant               = "Target"
	repositoryURLLabelConstant        = "Repository"
	authenticatedLoginLabelConstant   = "Authenticated as"
	defaultBranchLabelConstant        = "Default branch"
	defaultBranchChangedLabelConstant = "Default branch changed"
	branchesLabelConstant             = "Branches"
	tagsLabelConstant                 = "Tags"
	verifiedLabelConstant             = "Verified"
	durationLabelConstant             = "Duration"
	emptyValuePlaceholderConstant     = "-"
)

// Format selects how a summary is written.
type Format string

// Supported summary formats.
const (
	FormatText Format = Format("text")
	FormatJSON Format = Format("json")
	FormatYAML Format = Format("yaml")
	FormatNone Format = Format("none")
)

// SupportedFormats lists the accepted format names.
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatNone)}
}

// ParseFormat converts a case-insensitive format name. An empty value selects FormatText.
func ParseFormat(formatValue string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(formatValue)))
	switch normalized {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatNone:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, formatValue)
	}
}

// Summary describes a finished import for display.
type Summary struct {
	Outcome              string `json:"outcome" yaml:"outcome"`
	SourceURL            string `json:"source_url" yaml:"source_url"`
	TargetURL            string `json:"target_url" yaml:"target_url"`
	RepositoryURL        string `json:"repository_url" yaml:"repository_url"`
	AuthenticatedLogin   string `json:"authenticated_login,omitempty" yaml:"authenticated_login,omitempty"`
	DefaultBranch        string `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	DefaultBranchChanged bool   `json:"default_branch_changed" yaml:"default_branch_changed"`
	BranchCount          int    `json:"branches" yaml:"branches"`
	TagCount             int    `json:"tags" yaml:"tags"`
	Verified             bool   `json:"verified" yaml:"verified"`
	Duration             string `json:"duration" yaml:"duration"`
}

// Renderer writes summaries in a single format.
type Renderer struct {
	format Format
}

// NewRenderer constructs a renderer for the provided format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

// Render writes the summary to writer.
func (renderer *Renderer) Render(writer io.Writer, summary Summary) error {
	var renderError error
	switch renderer.format {
	case FormatNone:
		return nil
	case FormatJSON:
		renderError = renderJSON(writer, summary)
	case FormatYAML:
		renderError = renderYAML(writer, summary)
	case FormatText, "":
		renderText(writer, summary)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, renderer.format)
	}
	if renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderer.format, renderError)
	}
	return nil
}

func renderJSON(writer io.Writer, summary Summary) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(summary)
}

func renderYAML(writer io.Writer, summary Summary) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(summary); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func renderText(writer io.Writer, summary Summary) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{fieldColumnHeaderConstant, valueColumnHeaderConstant})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(textRows(summary))
	table.Render()
}

func textRows(summary Summary) [][]string {
	return [][]string{
		{outcomeLabelConstant, displayValue(summary.Outcome)},
		{sourceLabelConstant, displayValue(summary.SourceURL)},
		{targetLabelConstant, displayValue(summary.TargetURL)},
		{repositoryURLLabelConstant, displayValue(summary.RepositoryURL)},
		{authenticatedLoginLabelConstant, displayValue(summary.AuthenticatedLogin)},
		{defaultBranchLabelConstant, displayValue(summary.DefaultBranch)},
		{defaultBranchChangedLabelConstant, strconv.FormatBool(summary.DefaultBranchChanged)},
		{branchesLabelConstant, strconv.Itoa(summary.BranchCount)},
		{tagsLabelConstant, strconv.Itoa(summary.TagCount)},
		{verifiedLabelConstant, strconv.FormatBool(summary.Verified)},
		{durationLabelConstant, displayValue(summary.Duration)},
	}
}

func displayValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return emptyValuePlaceholderConstant
	}
	return value
}
