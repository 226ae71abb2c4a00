package importer

import (
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/temirov/gitimporter/internal/execshell"
)

const (
	// DefaultDescriptionTemplate is applied to repositories created by the import.
	DefaultDescriptionTemplate = "Imported from {source_url}"

	descriptionStartTagConstant      = "{"
	descriptionEndTagConstant        = "}"
	descriptionSourceURLTagConstant  = "source_url"
	descriptionOwnerTagConstant      = "owner"
	descriptionRepositoryTagConstant = "name"
)

// DescriptionRenderer expands {source_url}, {owner} and {name} placeholders in a description template.
// Unknown placeholders are left untouched.
type DescriptionRenderer struct {
	template string
}

// NewDescriptionRenderer constructs a renderer, falling back to DefaultDescriptionTemplate for a blank template.
func NewDescriptionRenderer(template string) *DescriptionRenderer {
	if len(strings.TrimSpace(template)) == 0 {
		template = DefaultDescriptionTemplate
	}
	return &DescriptionRenderer{template: template}
}

// Render produces the description for the given import. Credentials embedded in the source URL are redacted.
func (renderer *DescriptionRenderer) Render(options Options) string {
	values := map[string]interface{}{
		descriptionSourceURLTagConstant:  execshell.RedactURL(strings.TrimSpace(options.SourceURL)),
		descriptionOwnerTagConstant:      strings.TrimSpace(options.Owner),
		descriptionRepositoryTagConstant: strings.TrimSpace(options.RepositoryName),
	}
	return fasttemplate.ExecuteStringStd(renderer.template, descriptionStartTagConstant, descriptionEndTagConstant, values)
}
