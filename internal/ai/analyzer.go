// Package ai defines the résumé analysis contract implemented by
// generative-text providers.
package ai

import (
	"context"
	"errors"
)

// ErrNoProfile marks an analysis that produced nothing usable: the service
// answered with malformed output or an empty profile. The user is asked to
// resubmit the document.
var ErrNoProfile = errors.New("analysis produced no usable profile")

// CVProfile is the structured result of analyzing a résumé.
type CVProfile struct {
	TargetRole      string
	ExperienceLevel string
	Skills          []string
}

// Analyzer derives a job-seeker profile from résumé text.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string) (*CVProfile, error)
}
