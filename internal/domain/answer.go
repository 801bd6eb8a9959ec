package domain

import (
	"encoding/json"
	"time"
)

// Link is a supporting reference returned alongside an answer (usually a Discourse post).
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Answer is the response to a question.
type Answer struct {
	Answer string
	Links  []Link
}

// NewAnswer creates an Answer with a copied, never-nil link list.
func NewAnswer(text string, links []Link) Answer {
	cp := make([]Link, len(links))
	copy(cp, links)
	return Answer{Answer: text, Links: cp}
}

// QuestionRecord is a logged question/answer pair.
// Links holds the JSON-serialised link list.
type QuestionRecord struct {
	ID        int64
	Question  string
	Answer    string
	Links     string
	CreatedAt time.Time
}

// EncodeLinks serialises links the way they are stored in a QuestionRecord.
func EncodeLinks(links []Link) string {
	if links == nil {
		links = []Link{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		// Link has only string fields; Marshal cannot fail.
		return "[]"
	}
	return string(data)
}

// DecodeLinks parses a serialised link list.
func DecodeLinks(s string) ([]Link, error) {
	var links []Link
	if err := json.Unmarshal([]byte(s), &links); err != nil {
		return nil, err //nolint:wrapcheck // caller adds context
	}
	if links == nil {
		links = []Link{}
	}
	return links, nil
}
