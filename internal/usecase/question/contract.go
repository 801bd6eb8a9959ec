package question

import (
	"context"

	"github.com/kailas-cloud/virtualta/internal/domain"
	"github.com/kailas-cloud/virtualta/internal/usecase/matcher"
)

// Matcher selects an answer for a question.
type Matcher interface {
	Match(question string) matcher.Result
}

// Log records answered questions.
type Log interface {
	Append(ctx context.Context, question, answer string, links []domain.Link) (domain.QuestionRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.QuestionRecord, error)
}
