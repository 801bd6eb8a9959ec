package knowledge

import (
	"fmt"

	"github.com/kailas-cloud/virtualta/internal/domain"
)

// Entry is a knowledge base topic (immutable value object).
type Entry struct {
	key      string
	answer   string
	keywords []string
	links    []domain.Link
}

// NewEntry validates and creates an Entry. keywords may be empty.
func NewEntry(key, answer string, keywords []string, links []domain.Link) (Entry, error) {
	if key == "" {
		return Entry{}, fmt.Errorf("entry key is required")
	}
	if answer == "" {
		return Entry{}, fmt.Errorf("entry %s: answer is required", key)
	}
	for i, kw := range keywords {
		if kw == "" {
			return Entry{}, fmt.Errorf("entry %s: keyword %d is empty", key, i)
		}
	}
	kws := make([]string, len(keywords))
	copy(kws, keywords)
	ls := make([]domain.Link, len(links))
	copy(ls, links)
	return Entry{key: key, answer: answer, keywords: kws, links: ls}, nil
}

// Key returns the topic key.
func (e Entry) Key() string { return e.key }

// Answer returns the canned answer text.
func (e Entry) Answer() string { return e.answer }

// Keywords returns a copy of the fallback-scoring keywords in declaration order.
func (e Entry) Keywords() []string {
	cp := make([]string, len(e.keywords))
	copy(cp, e.keywords)
	return cp
}

// Links returns a copy of the supporting links.
func (e Entry) Links() []domain.Link {
	cp := make([]domain.Link, len(e.links))
	copy(cp, e.links)
	return cp
}

// ToAnswer converts the entry into a response.
func (e Entry) ToAnswer() domain.Answer {
	return domain.NewAnswer(e.answer, e.links)
}
