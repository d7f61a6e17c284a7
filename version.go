package promptvault

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// maxVersionParts is the number of components in major.minor.patch.
const maxVersionParts = 3

// Bump selects the version component incremented by BumpVersion.
type Bump int

// Bump kinds. Lower-significance components are reset to zero.
const (
	BumpMajor Bump = iota
	BumpMinor
	BumpPatch
)

// DefaultBump is used when a vault auto-bumps on a version collision.
const DefaultBump = BumpMinor

// String implements fmt.Stringer.
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "Bump(" + strconv.Itoa(int(b)) + ")"
	}
}

// ParseBump parses "major", "minor" or "patch".
func ParseBump(s string) (Bump, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return 0, fmt.Errorf("promptvault: unknown bump kind %q", s)
	}
}

// ParseVersion splits a dotted version into integer components.
// Accepts 1 to 3 components of ASCII digits.
func ParseVersion(version string) ([]int, error) {
	if version == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	fields := strings.Split(version, ".")
	if len(fields) > maxVersionParts {
		return nil, fmt.Errorf("%w: %q has more than %d components", ErrInvalidVersion, version, maxVersionParts)
	}
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" || strings.ContainsFunc(f, func(r rune) bool { return r < '0' || r > '9' }) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, version, err)
		}
		parts = append(parts, n)
	}
	return parts, nil
}

// NextVersion returns version bumped by kind. The result keeps the original
// component count, with at least two components and room for the bumped one:
// "1.0"+minor = "1.1", "1.5"+major = "2.0", "1.2.3"+patch = "1.2.4", "1.0"+patch = "1.0.1".
func NextVersion(version string, kind Bump) (string, error) {
	if kind < BumpMajor || kind > BumpPatch {
		return "", fmt.Errorf("promptvault: unknown bump kind %d", int(kind))
	}
	parts, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	idx := int(kind)
	n := max(len(parts), 2, idx+1)
	for len(parts) < n {
		parts = append(parts, 0)
	}
	if parts[idx] == math.MaxInt {
		return "", fmt.Errorf("%w: %q cannot be bumped past %d", ErrInvalidVersion, version, math.MaxInt)
	}
	parts[idx]++
	for i := idx + 1; i < n; i++ {
		parts[i] = 0
	}
	return formatVersion(parts), nil
}

// BumpVersion increments the selected component of Version in place.
func (t *Template) BumpVersion(kind Bump) error {
	next, err := NextVersion(t.Version, kind)
	if err != nil {
		return err
	}
	t.Version = next
	return nil
}

func formatVersion(parts []int) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = strconv.Itoa(p)
	}
	return strings.Join(s, ".")
}

// CompareVersions compares two versions component-wise; missing components count as 0.
// Unparsable versions sort before parsable ones and compare as strings among themselves.
func CompareVersions(a, b string) int {
	pa, errA := ParseVersion(a)
	pb, errB := ParseVersion(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	for i := range maxVersionParts {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}

// VersionOrder decides which stored version is the latest.
type VersionOrder int

const (
	// OrderLexical picks the greatest version string ("9.0" beats "10.0").
	OrderLexical VersionOrder = iota
	// OrderSemantic compares versions component-wise ("10.0" beats "9.0").
	OrderSemantic
)

// Latest returns the greatest version under the order, or false when versions is empty.
func (o VersionOrder) Latest(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}
	if o == OrderSemantic {
		return slices.MaxFunc(versions, CompareVersions), true
	}
	return slices.Max(versions), true
}

// ParseVersionOrder parses "lexical" or "semantic".
func ParseVersionOrder(s string) (VersionOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lexical":
		return OrderLexical, nil
	case "semantic":
		return OrderSemantic, nil
	default:
		return 0, fmt.Errorf("promptvault: unknown version order %q", s)
	}
}
