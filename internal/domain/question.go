package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QuestionRequest is a validated student question.
// Image is accepted (base64 by convention) but never used for matching.
type QuestionRequest struct {
	Question string
	Image    string
}

// HasImage reports whether an image was attached.
func (r QuestionRequest) HasImage() bool { return r.Image != "" }

// rawQuestionRequest keeps fields undecoded so type mismatches can be reported per field.
type rawQuestionRequest struct {
	Question json.RawMessage `json:"question"`
	Image    json.RawMessage `json:"image"`
}

// ParseQuestionRequest decodes and validates a JSON request body.
// question must be a non-empty string; image is an optional string.
func ParseQuestionRequest(body []byte) (QuestionRequest, error) {
	var raw rawQuestionRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return QuestionRequest{}, NewValidationError(FieldError{Message: "Malformed JSON body"})
	}

	var (
		req    QuestionRequest
		fields []FieldError
	)

	switch q, err := decodeString(raw.Question); {
	case err != nil:
		fields = append(fields, FieldError{Field: "question", Message: err.Error()})
	case q == "":
		fields = append(fields, FieldError{Field: "question", Message: "Question is required"})
	default:
		req.Question = q
	}

	if !isAbsent(raw.Image) {
		img, err := decodeString(raw.Image)
		if err != nil {
			fields = append(fields, FieldError{Field: "image", Message: err.Error()})
		} else {
			req.Image = img
		}
	}

	if len(fields) > 0 {
		return QuestionRequest{}, NewValidationError(fields...)
	}
	return req, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0
}

// decodeString mirrors the messages of the schema validator the API was specified with.
func decodeString(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", fmt.Errorf("Required") //nolint:staticcheck // client-facing message
	}
	var s string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("Expected string, received null") //nolint:staticcheck // client-facing message
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("Expected string, received %s", jsonKind(raw)) //nolint:staticcheck // client-facing message
	}
	return s, nil
}

func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "undefined"
	}
	switch trimmed[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}
