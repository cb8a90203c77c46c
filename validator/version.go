package validator

import (
	"strconv"
	"strings"
)

// compareVersions compares two version labels segment-by-segment after
// splitting on '.', with each segment compared as an integer when both
// sides parse as one, falling back to a string comparison otherwise. This
// is not semver: MCDOC versions may have any number of segments, and
// "1.2" < "1.10" must hold, which a 3-segment semver comparator would get
// wrong beyond the first two fields. Missing trailing segments compare as
// 0, so "1.20" < "1.20.5".
//
// Returns -1, 0, or 1.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		sa, sb := "0", "0"
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if c := compareSegment(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

func compareSegment(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// versionInRange reports whether v falls in [since, until), per spec §4.5
// and §8's version-gate-monotonicity property. An empty since or until
// means that bound is absent.
func versionInRange(v, since, until string) bool {
	if since != "" && compareVersions(v, since) < 0 {
		return false
	}
	if until != "" && compareVersions(v, until) >= 0 {
		return false
	}
	return true
}
