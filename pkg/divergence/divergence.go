package divergence

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Severity ranks how far a declared version lags the registry, by the
// first version component that moved.
type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
	SeverityPatch Severity = "patch"
	SeverityNone  Severity = "none"
)

// Record is the comparison outcome for one runtime pin or one package.
type Record struct {
	Current         string
	Latest          string
	UpdateAvailable bool
	Severity        Severity
}

const operatorCutset = "^~><= \t"

// BaseVersion strips leading range operators from a constraint and
// returns its first version token, e.g. ">=1.2.0 <1.3.0" -> "1.2.0".
func BaseVersion(constraint string) string {
	stripped := strings.TrimLeft(constraint, operatorCutset)
	if fields := strings.Fields(stripped); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// Classify compares a declared constraint against the latest published
// version. An update is flagged only when the latest version is strictly
// newer than the constraint's base AND the constraint expression does not
// already admit it; a caret range that still covers the latest release is
// quiet. Unparsable inputs classify as no update.
func Classify(constraint, latest string) Record {
	record := Record{Current: constraint, Latest: latest, Severity: SeverityNone}

	base, err := semver.StrictNewVersion(BaseVersion(constraint))
	if err != nil {
		return record
	}
	latestVersion, err := semver.StrictNewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return record
	}

	if !latestVersion.GreaterThan(base) {
		return record
	}
	if rangeAllows(constraint, latestVersion) {
		return record
	}

	record.UpdateAvailable = true
	switch {
	case latestVersion.Major() > base.Major():
		record.Severity = SeverityMajor
	case latestVersion.Minor() > base.Minor():
		record.Severity = SeverityMinor
	case latestVersion.Patch() > base.Patch():
		record.Severity = SeverityPatch
	}
	return record
}

// rangeAllows reports whether the constraint expression already admits
// the given version. A constraint that does not parse as a range admits
// nothing, so a plain pin always diverges from a newer release.
func rangeAllows(constraint string, version *semver.Version) bool {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(version)
}
