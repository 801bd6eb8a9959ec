package questionlog

import (
	"time"

	"github.com/kailas-cloud/virtualta/internal/domain"
)

// recordJSON is the stored form of a QuestionRecord.
type recordJSON struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Links     string    `json:"links"`
	CreatedAt time.Time `json:"created_at"`
}

func toJSON(r domain.QuestionRecord) recordJSON {
	return recordJSON(r)
}

func fromJSON(r recordJSON) domain.QuestionRecord {
	return domain.QuestionRecord(r)
}
