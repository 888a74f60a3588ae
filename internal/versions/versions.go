// Package versions compares semantic versions and checks tooling
// constraints for boilerplates and plugins.
package versions

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Dev is the version reported by builds without release ldflags.
const Dev = "dev"

// Compare compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// A leading "v" is tolerated.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// Newer reports whether candidate is a higher version than current. An
// unparsable current loses to a parsable candidate; an unparsable candidate
// never wins.
func Newer(candidate, current string) bool {
	cv, err := parse(candidate)
	if err != nil {
		return false
	}
	cur, err := parse(current)
	if err != nil {
		return true
	}
	return cv.GreaterThan(cur)
}

// Satisfies reports whether version meets constraint. An empty constraint
// and development builds satisfy everything.
func Satisfies(constraint, version string) (bool, error) {
	if strings.TrimSpace(constraint) == "" || version == "" || version == Dev {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := parse(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}

// parse strips a leading "v" and parses the version string.
func parse(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
