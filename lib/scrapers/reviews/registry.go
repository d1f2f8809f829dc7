package reviews

import (
	"fmt"
	"reviewharvest/internal/assert"
)

// Role is a semantic region of a review page, the thing a locator is
// trying to find regardless of what the site's markup calls it.
type Role string

const (
	RoleContainer       Role = "container"
	RoleTitle           Role = "title"
	RoleBody            Role = "body"
	RoleDate            Role = "date"
	RoleRating          Role = "rating"
	RoleReviewerName    Role = "reviewer_name"
	RoleReviewerContext Role = "reviewer_context"
	RolePros            Role = "pros"
	RoleCons            Role = "cons"
	RoleNextPage        Role = "next_page"
	RoleLoadMore        Role = "load_more"
)

// LocatorSpec maps each role to its ordered locator candidates for one
// source. Order encodes trust: the first candidate that matches wins.
// Specs are loaded once and shared read-only across crawls.
type LocatorSpec map[Role][]string

// Locators returns the candidates for a role, possibly none.
func (s LocatorSpec) Locators(role Role) []string {
	return s[role]
}

// Registry maps each source to its locator spec. Adding a new source
// is a registry change only, the engine's control flow is shared.
type Registry map[Source]LocatorSpec

// Spec returns the locator spec for a source.
func (r Registry) Spec(source Source) (LocatorSpec, error) {
	spec, ok := r[source]
	if !ok {
		return nil, fmt.Errorf("no locator spec registered for source %q", source)
	}
	return spec, nil
}

// DefaultRegistry returns the built-in locator tables.
func DefaultRegistry() Registry {
	reg := Registry{
		SourceG2:          g2Locators,
		SourceCapterra:    capterraLocators,
		SourceTrustRadius: trustRadiusLocators,
	}
	for source, spec := range reg {
		// a spec without container locators can never find anything
		assert.NotEmptySlice(fmt.Sprintf("%s container locators", source), spec[RoleContainer])
	}
	return reg
}
