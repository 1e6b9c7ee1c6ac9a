package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckRequires verifies that version satisfies the configuration's
// "requires" constraint. Development builds and unversioned binaries are
// always accepted.
func (c *Config) CheckRequires(version string) error {
	if strings.TrimSpace(c.Requires) == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", c.Requires, err)
	}

	current, err := parseSemver(version)
	if err != nil {
		return nil
	}

	if !constraint.Check(current) {
		return fmt.Errorf("configuration requires version %s, running %s", c.Requires, version)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
