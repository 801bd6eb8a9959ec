package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// Question is the request body of POST /api.
type Question struct {
	Question string `json:"question"`
	Image    string `json:"image,omitempty"` // base64
}

// Link is a reference attached to an answer.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Answer is the response of POST /api.
type Answer struct {
	Answer string `json:"answer"`
	Links  []Link `json:"links"`
}

// HealthStatus is the response of GET /api/health.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// RecentQuestion is one entry of GET /api/recent.
type RecentQuestion struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Links     string    `json:"links"` // JSON-encoded []Link
	CreatedAt time.Time `json:"createdAt"`
}

// DecodedLinks parses the stored link list.
func (q RecentQuestion) DecodedLinks() ([]Link, error) {
	if q.Links == "" {
		return []Link{}, nil
	}
	var links []Link
	if err := json.Unmarshal([]byte(q.Links), &links); err != nil {
		return nil, fmt.Errorf("decode links of question %d: %w", q.ID, err)
	}
	return links, nil
}
