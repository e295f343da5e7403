package jenkins

import (
	"fmt"
)

// maxExcerptLength is the number of characters of the raw body kept in a
// MalformedDocumentError.
const maxExcerptLength = 200

// TransportError is returned when a document could not be retrieved.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unable to fetch %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedDocumentError is returned when a fetched document could not be
// parsed or lacks an expected element.
type MalformedDocumentError struct {
	Reference BuildReference
	Document  string
	Excerpt   string
	Err       error
}

// NewMalformedDocumentError wraps err with the reference and an excerpt of body.
func NewMalformedDocumentError(ref BuildReference, document string, body string, err error) *MalformedDocumentError {
	return &MalformedDocumentError{
		Reference: ref,
		Document:  document,
		Excerpt:   Excerpt(body),
		Err:       err,
	}
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed %s for build %s%s: %v (response starts with %q)",
		e.Document, e.Reference.JobPath, e.Reference.Number, e.Err, e.Excerpt)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Excerpt returns at most the first 200 characters of body.
func Excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= maxExcerptLength {
		return body
	}
	return string(runes[:maxExcerptLength])
}
