package githubapi

import (
	"fmt"
	"strings"
)

const (
	ownerTypeUserConstant              = "User"
	ownerTypeOrganizationConstant      = "Organization"
	ownerTypeOrganizationAliasConstant = "org"
	ownerTypeEmptyErrorMessageConstant = "owner type must be provided"
	ownerTypeInvalidTemplateConstant   = "owner type %q is not supported"
)

// OwnerType distinguishes GitHub user accounts from organizations.
type OwnerType string

// Owner type enumerations as reported by GET /users/{login}.
const (
	UserOwnerType         OwnerType = OwnerType(ownerTypeUserConstant)
	OrganizationOwnerType OwnerType = OwnerType(ownerTypeOrganizationConstant)
)

// ParseOwnerType normalizes the account type reported by the API.
func ParseOwnerType(ownerTypeValue string) (OwnerType, error) {
	trimmedValue := strings.TrimSpace(ownerTypeValue)
	if len(trimmedValue) == 0 {
		return "", fmt.Errorf(ownerTypeEmptyErrorMessageConstant)
	}

	switch {
	case strings.EqualFold(trimmedValue, ownerTypeUserConstant):
		return UserOwnerType, nil
	case strings.EqualFold(trimmedValue, ownerTypeOrganizationConstant), strings.EqualFold(trimmedValue, ownerTypeOrganizationAliasConstant):
		return OrganizationOwnerType, nil
	default:
		return "", fmt.Errorf(ownerTypeInvalidTemplateConstant, ownerTypeValue)
	}
}

// IsOrganization reports whether repositories are created through the organization endpoint.
func (ownerType OwnerType) IsOrganization() bool {
	return ownerType == OrganizationOwnerType
}
