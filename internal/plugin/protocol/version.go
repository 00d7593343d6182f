// Package protocol checks that a document host speaks a protocol version
// this build of tether understands.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tether/pkg/plugin"
)

// MinCompatibleVersion is the oldest host protocol version tether works with.
const MinCompatibleVersion = "1.0.0"

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid %s version: %s", name, parts[i])
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// CheckHost returns an error unless a host reporting hostVersion can be used.
// The major version must match; newer minor and patch versions are accepted.
func CheckHost(hostVersion string) error {
	host, err := Parse(hostVersion)
	if err != nil {
		return fmt.Errorf("failed to parse host version: %w", err)
	}
	current, err := Parse(plugin.ProtocolVersion)
	if err != nil {
		return fmt.Errorf("failed to parse current protocol version: %w", err)
	}
	minimum, err := Parse(MinCompatibleVersion)
	if err != nil {
		return fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}

	if host.Major != current.Major {
		return fmt.Errorf("incompatible major version: host is %s, tether requires %d.x.x", host, current.Major)
	}
	if host.Less(minimum) {
		return fmt.Errorf("host version %s is too old, minimum required is %s", host, MinCompatibleVersion)
	}
	return nil
}
