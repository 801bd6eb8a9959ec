package chi

import (
	"time"

	"github.com/kailas-cloud/virtualta/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type linkResponse struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type answerResponse struct {
	Answer string         `json:"answer"`
	Links  []linkResponse `json:"links"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// recordResponse keeps links as the stored JSON string.
type recordResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Links     string    `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
}

func answerToResponse(a domain.Answer) answerResponse {
	links := make([]linkResponse, len(a.Links))
	for i, l := range a.Links {
		links[i] = linkResponse{URL: l.URL, Text: l.Text}
	}
	return answerResponse{Answer: a.Answer, Links: links}
}

func recordToResponse(r domain.QuestionRecord) recordResponse {
	return recordResponse{
		ID:        r.ID,
		Question:  r.Question,
		Answer:    r.Answer,
		Links:     r.Links,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
