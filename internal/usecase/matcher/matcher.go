// Package matcher maps a free-text question to a knowledge base entry.
package matcher

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/virtualta/internal/domain"
	"github.com/kailas-cloud/virtualta/internal/domain/knowledge"
)

// DefaultAnswer is returned when neither a rule nor any keyword matches.
const DefaultAnswer = "I don't have specific information about this question in my current knowledge base. " +
	"Please refer to the course materials, check the Discourse forum for similar discussions, " +
	"or contact the teaching assistants for clarification."

// Outcome records how an answer was selected.
type Outcome string

const (
	// OutcomeRule means a high-priority rule fired.
	OutcomeRule Outcome = "rule"
	// OutcomeKeyword means the keyword fallback picked an entry.
	OutcomeKeyword Outcome = "keyword"
	// OutcomeDefault means nothing matched.
	OutcomeDefault Outcome = "default"
)

// Result is the outcome of matching a single question.
type Result struct {
	Answer   domain.Answer
	EntryKey string // empty for OutcomeDefault
	Outcome  Outcome
	Rule     string // set for OutcomeRule
	Score    int    // set for OutcomeKeyword
}

// Matcher selects answers from a knowledge Store. It is pure and safe for concurrent use.
type Matcher struct {
	store *knowledge.Store
	rules []Rule
}

// New creates a Matcher. Every rule must reference an entry present in store.
func New(store *knowledge.Store, rules []Rule) (*Matcher, error) {
	if store == nil {
		return nil, fmt.Errorf("knowledge store is required")
	}
	for i, r := range rules {
		if r.Predicate == nil {
			return nil, fmt.Errorf("rule %d (%s): predicate is required", i, r.Name)
		}
		if _, ok := store.Get(r.EntryKey); !ok {
			return nil, fmt.Errorf("rule %d (%s): unknown entry %q", i, r.Name, r.EntryKey)
		}
	}
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Matcher{store: store, rules: cp}, nil
}

// NewDefault wires the compiled-in knowledge base with the default rules.
func NewDefault() *Matcher {
	m, err := New(knowledge.Default(), DefaultRules())
	if err != nil {
		panic(err)
	}
	return m
}

// Match returns exactly one answer for question. Matching is on raw lowercased substrings.
func (m *Matcher) Match(question string) Result {
	lowered := strings.ToLower(question)

	for _, r := range m.rules {
		if !r.Predicate(lowered) {
			continue
		}
		// New guarantees presence; the check keeps Match total for zero-value rules.
		if e, ok := m.store.Get(r.EntryKey); ok {
			return Result{
				Answer:   e.ToAnswer(),
				EntryKey: e.Key(),
				Outcome:  OutcomeRule,
				Rule:     r.Name,
			}
		}
	}

	if e, score, ok := bestByKeywords(m.store.Entries(), lowered); ok {
		return Result{
			Answer:   e.ToAnswer(),
			EntryKey: e.Key(),
			Outcome:  OutcomeKeyword,
			Score:    score,
		}
	}

	return Result{
		Answer:  domain.NewAnswer(DefaultAnswer, nil),
		Outcome: OutcomeDefault,
	}
}

// Score computes the keyword overlap score of an entry: 2 points per keyword
// longer than 3 bytes found in the question, 1 point per shorter one.
func Score(e knowledge.Entry, lowered string) int {
	score := 0
	for _, kw := range e.Keywords() {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			if len(kw) > 3 {
				score += 2
			} else {
				score++
			}
		}
	}
	return score
}

// bestByKeywords returns the highest scoring entry. Ties keep the earliest entry.
// ok is false when no entry scores at least 1.
func bestByKeywords(entries []knowledge.Entry, lowered string) (knowledge.Entry, int, bool) {
	var (
		best      knowledge.Entry
		bestScore int
	)
	for _, e := range entries {
		if s := Score(e, lowered); s > bestScore {
			best, bestScore = e, s
		}
	}
	if bestScore < 1 {
		return knowledge.Entry{}, 0, false
	}
	return best, bestScore, true
}
