// Package profile defines the canonical job-seeker profile, the field-level
// merge rules applied to partial updates, and the completeness predicate that
// decides whether a returning user may skip the interview steps.
package profile

import "strings"

// Profile is the durable per-user record of job-search-relevant attributes.
// Every field may be empty; a record is created as soon as any field is known.
type Profile struct {
	UserID          int64
	TargetRole      string
	ExperienceLevel string
	FirstName       string
	LastName        string
	Phone           string
	Skills          []string
}

// Patch is a partial profile update. String fields are applied only when
// non-empty. Skills follows a nil-aware rule: a nil slice preserves the
// stored skills, a non-nil slice (even empty) replaces them.
type Patch struct {
	TargetRole      string
	ExperienceLevel string
	FirstName       string
	LastName        string
	Phone           string
	Skills          []string
}

// IsZero reports whether the patch carries no updates at all.
func (p Patch) IsZero() bool {
	return p.TargetRole == "" &&
		p.ExperienceLevel == "" &&
		p.FirstName == "" &&
		p.LastName == "" &&
		p.Phone == "" &&
		p.Skills == nil
}

// Merge applies patch to base and returns the resulting profile. A field
// supplied in the patch overrides the stored value; an absent field never
// erases one.
func Merge(base Profile, patch Patch) Profile {
	merged := base

	if v := strings.TrimSpace(patch.TargetRole); v != "" {
		merged.TargetRole = v
	}
	if v := strings.TrimSpace(patch.ExperienceLevel); v != "" {
		merged.ExperienceLevel = v
	}
	if v := strings.TrimSpace(patch.FirstName); v != "" {
		merged.FirstName = v
	}
	if v := strings.TrimSpace(patch.LastName); v != "" {
		merged.LastName = v
	}
	if v := strings.TrimSpace(patch.Phone); v != "" {
		merged.Phone = v
	}
	if patch.Skills != nil {
		merged.Skills = append([]string(nil), patch.Skills...)
	}

	return merged
}

// Complete reports whether the profile carries enough data to skip the
// interview: first name, last name and target role. Phone is optional.
func (p Profile) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.TargetRole != ""
}
