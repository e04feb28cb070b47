package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the dvkit release version, reported in the User-Agent header.
const Current = "0.3.0"

// Version represents a parsed Dataverse server version. Servers report
// versions such as "6.1", "5.13.1" or "5.13 build 1244-79d6e57".
type Version struct {
	Major int
	Minor int
	Patch int    // 0 when the server reports only major.minor
	Build string // build metadata, e.g. "1244-79d6e57"
}

// Parse parses a Dataverse server version string.
func Parse(versionStr string) (*Version, error) {
	s := strings.TrimSpace(versionStr)
	if s == "" {
		return nil, fmt.Errorf("version cannot be empty")
	}

	// Split off " build NNN" style metadata
	var build string
	if idx := strings.Index(s, " "); idx != -1 {
		build = strings.TrimSpace(strings.TrimPrefix(s[idx+1:], "build"))
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: expected x.y or x.y.z, got %s", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return nil, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return nil, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	patch := 0
	if len(parts) == 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil || patch < 0 {
			return nil, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Build: build,
	}, nil
}

// String returns the string representation of the version
func (v *Version) String() string {
	result := fmt.Sprintf("%d.%d", v.Major, v.Minor)
	if v.Patch > 0 {
		result += fmt.Sprintf(".%d", v.Patch)
	}
	if v.Build != "" {
		result += " build " + v.Build
	}
	return result
}

// Compare compares two versions and returns:
// -1 if v < other
//
//	0 if v == other
//	1 if v > other
//
// Build metadata is ignored.
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}

	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}

	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}

	return 0
}

// AtLeast reports whether versionStr is at least min. Both arguments
// must be parseable server version strings.
func AtLeast(versionStr, min string) (bool, error) {
	have, err := Parse(versionStr)
	if err != nil {
		return false, fmt.Errorf("invalid server version %s: %w", versionStr, err)
	}

	want, err := Parse(min)
	if err != nil {
		return false, fmt.Errorf("invalid minimum version %s: %w", min, err)
	}

	return have.Compare(want) >= 0, nil
}
