package matcher

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/virtualta/internal/domain"
	"github.com/kailas-cloud/virtualta/internal/domain/knowledge"
)

func mustEntry(t *testing.T, key string, keywords ...string) knowledge.Entry {
	t.Helper()
	e, err := knowledge.NewEntry(key, "answer for "+key, keywords, []domain.Link{{URL: "https://example.com/" + key, Text: key}})
	if err != nil {
		t.Fatalf("NewEntry(%s): %v", key, err)
	}
	return e
}

func TestMatch_Rules(t *testing.T) {
	m := NewDefault()

	tests := []struct {
		name     string
		question string
		rule     string
		entry    string
	}{
		{
			"model selection",
			"The question asks to use gpt-3.5-turbo-0125 but the AI Proxy only supports gpt-4o-mini. What should I use?",
			"model_selection", knowledge.KeyModelSelection,
		},
		{
			"model selection alt spelling",
			"gpt4o-mini or gpt3.5?",
			"model_selection", knowledge.KeyModelSelection,
		},
		{
			"ga4 bonus",
			"If a student scores 10/10 on GA4 as well as a bonus, how would it appear on the dashboard?",
			"ga4_bonus", knowledge.KeyGA4Scoring,
		},
		{
			"docker without podman",
			"Can I use Docker for this course?",
			"docker_without_podman", knowledge.KeyDockerPodman,
		},
		{
			"future exam",
			"When is the TDS Sep 2025 end-term exam?",
			"future_exam", knowledge.KeyFutureExams,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := m.Match(tc.question)
			if res.Outcome != OutcomeRule {
				t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeRule)
			}
			if res.Rule != tc.rule {
				t.Errorf("rule = %q, want %q", res.Rule, tc.rule)
			}
			if res.EntryKey != tc.entry {
				t.Errorf("entry = %q, want %q", res.EntryKey, tc.entry)
			}
		})
	}
}

func TestMatch_RulePriority(t *testing.T) {
	m := NewDefault()
	res := m.Match("Should I use gpt-4o-mini via the AI proxy? Also ga4 10/10 bonus dashboard")
	if res.EntryKey != knowledge.KeyModelSelection {
		t.Errorf("expected model selection to win, got %q", res.EntryKey)
	}
}

func TestMatch_PodmanMentionSkipsDockerRule(t *testing.T) {
	m := NewDefault()
	res := m.Match("I know Docker but have not used Podman before. Should I use Docker for this course?")
	if res.Outcome != OutcomeKeyword {
		t.Fatalf("outcome = %q, want keyword fallback", res.Outcome)
	}
	if res.EntryKey != knowledge.KeyDockerPodman {
		t.Errorf("entry = %q, want %q", res.EntryKey, knowledge.KeyDockerPodman)
	}
	if res.Score != 4 {
		t.Errorf("score = %d, want 4", res.Score)
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	m := NewDefault()
	upper := m.Match("DOCKER vs PODMAN")
	lower := m.Match("docker vs podman")
	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case should not matter:\nupper: %+v\nlower: %+v", upper, lower)
	}
	if upper.EntryKey != knowledge.KeyDockerPodman {
		t.Errorf("entry = %q, want %q", upper.EntryKey, knowledge.KeyDockerPodman)
	}
}

func TestMatch_KeywordFallback(t *testing.T) {
	m := NewDefault()

	tests := []struct {
		question string
		entry    string
		score    int
	}{
		{"What data sources can I use for the assignment?", knowledge.KeyDataSources, 2},
		{"How do I install Jupyter in my Python environment?", knowledge.KeyPythonEnvironment, 6},
		{"Is there a penalty for a late submission?", knowledge.KeySubmissions, 6},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			res := m.Match(tc.question)
			if res.Outcome != OutcomeKeyword {
				t.Fatalf("outcome = %q, want keyword", res.Outcome)
			}
			if res.EntryKey != tc.entry {
				t.Errorf("entry = %q, want %q", res.EntryKey, tc.entry)
			}
			if res.Score != tc.score {
				t.Errorf("score = %d, want %d", res.Score, tc.score)
			}
			want, _ := knowledge.Default().Get(tc.entry)
			if res.Answer.Answer != want.Answer() {
				t.Error("answer should be the entry answer")
			}
			if !reflect.DeepEqual(res.Answer.Links, want.Links()) {
				t.Errorf("links = %+v, want %+v", res.Answer.Links, want.Links())
			}
		})
	}
}

func TestMatch_TieKeepsFirstEntry(t *testing.T) {
	// "ga4" is a keyword of both ga4_scoring and data_sources; ga4_scoring is declared first.
	m := NewDefault()
	res := m.Match("ga4")
	if res.EntryKey != knowledge.KeyGA4Scoring {
		t.Errorf("entry = %q, want %q", res.EntryKey, knowledge.KeyGA4Scoring)
	}
	if res.Score != 1 {
		t.Errorf("score = %d, want 1", res.Score)
	}

	store := knowledge.MustNew(
		mustEntry(t, "second", "shared"),
		mustEntry(t, "first", "shared"),
	)
	custom, err := New(store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := custom.Match("a shared word").EntryKey; got != "second" {
		t.Errorf("tie should keep declaration order, got %q", got)
	}
}

func TestMatch_Default(t *testing.T) {
	m := NewDefault()
	res := m.Match("What is the meaning of life?")
	if res.Outcome != OutcomeDefault {
		t.Fatalf("outcome = %q, want default", res.Outcome)
	}
	if res.Answer.Answer != DefaultAnswer {
		t.Errorf("unexpected answer: %q", res.Answer.Answer)
	}
	if res.Answer.Links == nil || len(res.Answer.Links) != 0 {
		t.Errorf("expected empty non-nil links, got %#v", res.Answer.Links)
	}
	if res.EntryKey != "" {
		t.Errorf("default answer has no entry, got %q", res.EntryKey)
	}
}

func TestMatch_Total(t *testing.T) {
	m := NewDefault()
	inputs := []string{"", " ", "???", "ÄÖÜ docker", "\x00\xff", "gpt-4o-mini"}
	for _, q := range inputs {
		res := m.Match(q)
		if res.Answer.Answer == "" {
			t.Errorf("Match(%q) returned empty answer", q)
		}
		if res.Answer.Links == nil {
			t.Errorf("Match(%q) returned nil links", q)
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewDefault()
	q := "Can I use Docker for this course?"
	first := m.Match(q)
	for i := 0; i < 10; i++ {
		if got := m.Match(q); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestMatch_ResultDoesNotAliasStore(t *testing.T) {
	m := NewDefault()
	res := m.Match("Can I use Docker for this course?")
	res.Answer.Links[0].URL = "mutated"

	again := m.Match("Can I use Docker for this course?")
	if again.Answer.Links[0].URL == "mutated" {
		t.Error("mutating a result must not leak into the knowledge base")
	}
}

func TestMatch_EmptyStore(t *testing.T) {
	m, err := New(knowledge.MustNew(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := m.Match("docker")
	if res.Outcome != OutcomeDefault {
		t.Errorf("outcome = %q, want default", res.Outcome)
	}
}

func TestMatch_EntriesWithoutKeywords(t *testing.T) {
	m, err := New(knowledge.MustNew(mustEntry(t, "bare")), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res := m.Match("bare"); res.Outcome != OutcomeDefault {
		t.Errorf("entry without keywords must never score, got %q", res.Outcome)
	}
}

func TestScore(t *testing.T) {
	e := mustEntry(t, "k", "api", "csv", "database", "Data Source")

	tests := []struct {
		lowered string
		want    int
	}{
		{"nothing here", 0},
		{"the api", 1},
		{"api and csv", 2},
		{"a database", 2},
		{"api database", 3},
		{"data source", 2},
		{"rapid", 1}, // substring, not word match
	}
	for _, tc := range tests {
		if got := Score(e, tc.lowered); got != tc.want {
			t.Errorf("Score(%q) = %d, want %d", tc.lowered, got, tc.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	store := knowledge.MustNew(mustEntry(t, "known", "x"))

	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := New(store, []Rule{{Name: "r", EntryKey: "missing", Predicate: Contains("x")}}); err == nil {
		t.Error("expected error for unknown entry key")
	}
	if _, err := New(store, []Rule{{Name: "r", EntryKey: "known"}}); err == nil {
		t.Error("expected error for nil predicate")
	}
	if _, err := New(store, []Rule{{Name: "r", EntryKey: "known", Predicate: Contains("x")}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_CustomRuleOrder(t *testing.T) {
	store := knowledge.MustNew(mustEntry(t, "a"), mustEntry(t, "b"))
	m, err := New(store, []Rule{
		{Name: "first", EntryKey: "b", Predicate: Contains("x")},
		{Name: "second", EntryKey: "a", Predicate: Contains("x")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := m.Match("X")
	if res.Rule != "first" || res.EntryKey != "b" {
		t.Errorf("first satisfied rule must win, got rule=%q entry=%q", res.Rule, res.EntryKey)
	}
}
