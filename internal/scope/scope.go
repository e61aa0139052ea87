package scope

import (
	"fmt"
	"strings"
)

// Project identifies a repository on a provider (github, gitlab).
type Project struct {
	RepoFullName string
	Provider     string
}

func (p Project) String() string {
	return fmt.Sprintf("%s/%s", strings.ToLower(p.Provider), p.RepoFullName)
}

// Matches reports whether p and other are the same project. Repo names and
// providers are compared case-insensitively.
func (p Project) Matches(other Project) bool {
	return strings.EqualFold(p.RepoFullName, other.RepoFullName) &&
		strings.EqualFold(p.Provider, other.Provider)
}

// Contributor identifies a user account on a provider.
type Contributor struct {
	Username string
	Provider string
}

func (c Contributor) String() string {
	return fmt.Sprintf("%s/%s", strings.ToLower(c.Provider), c.Username)
}

// Matches reports whether c and other are the same account. The username must
// match exactly, the provider case-insensitively.
func (c Contributor) Matches(other Contributor) bool {
	return c.Username == other.Username && strings.EqualFold(c.Provider, other.Provider)
}

// Narrow resolves a request to narrow an optional scope dimension to want.
//
// If current is unset the dimension can be narrowed and narrowed is true. If it
// is set and matches want the caller should reuse its view. Otherwise a
// *MismatchError is returned.
func Narrow[T interface {
	fmt.Stringer
	Matches(T) bool
}](kind string, current *T, want T) (narrowed bool, err error) {
	if current == nil {
		return true, nil
	}

	if !(*current).Matches(want) {
		return false, Mismatch(kind, *current, want)
	}

	return false, nil
}

// Check returns a *MismatchError unless expected matches actual.
func Check[T interface {
	fmt.Stringer
	Matches(T) bool
}](kind string, expected, actual T) error {
	if expected.Matches(actual) {
		return nil
	}

	return Mismatch(kind, expected, actual)
}
