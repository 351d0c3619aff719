package resolver

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// versionTagRe matches version-shaped tags: an optional "v" prefix, major and
// minor components, an optional patch, and arbitrary trailing text such as
// prerelease suffixes.
var versionTagRe = regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+))?(.*)$`)

// Version is a parsed version tag, retaining the original tag string.
type Version struct {
	Tag   string
	Major int
	Minor int
	Patch int
	Rest  string
}

// ParseVersionTag parses a tag into a Version. The second return value is
// false for tags that are not version-shaped.
func ParseVersionTag(tag string) (Version, bool) {
	m := versionTagRe.FindStringSubmatch(tag)
	if m == nil {
		return Version{}, false
	}

	v := Version{Tag: tag, Rest: m[4]}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, true
}

// IsVersionTag checks whether a tag is version-shaped.
func IsVersionTag(tag string) bool {
	return versionTagRe.MatchString(tag)
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	// A prerelease suffix sorts below the bare version.
	if v.Rest != "" && other.Rest == "" {
		return -1
	}
	if v.Rest == "" && other.Rest != "" {
		return 1
	}

	return strings.Compare(v.Rest, other.Rest)
}

// sortVersionsDesc returns the version-shaped tags from the input sorted by
// descending version. Non-conforming tags are excluded.
func sortVersionsDesc(tags []string) []Version {
	var versions []Version
	for _, tag := range tags {
		if v, ok := ParseVersionTag(tag); ok {
			versions = append(versions, v)
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})

	return versions
}
