// Package anecdote defines the anecdote domain model and the service contract
// used to read and mutate anecdotes on the remote anecdote service.
package anecdote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// MinContentLength is the minimum number of characters, after trimming, that
// the content of a new anecdote must have.
const MinContentLength = 5

// ErrContentTooShort is returned when content is below MinContentLength.
var ErrContentTooShort = errors.New("too short anecdote, must have length 5 characters or more")

// ID identifies an anecdote on the service. Services assign either strings
// or numbers; both decode into the same textual form.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("anecdote id must be a string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Anecdote is a user-submitted text item with a vote counter.
type Anecdote struct {
	ID      ID     `json:"id,omitempty"`
	Content string `json:"content"`
	Votes   int    `json:"votes"`
}

// New returns an unsaved anecdote with zero votes. The content is trimmed.
func New(content string) Anecdote {
	return Anecdote{Content: strings.TrimSpace(content)}
}

// Voted returns a copy of a with the vote counter incremented by one.
func (a Anecdote) Voted() Anecdote {
	a.Votes++
	return a
}

// Service is the remote anecdote service.
type Service interface {
	List(ctx context.Context) ([]Anecdote, error)
	Get(ctx context.Context, id string) (Anecdote, error)
	Create(ctx context.Context, a Anecdote) (Anecdote, error)
	Update(ctx context.Context, a Anecdote) (Anecdote, error)
}

// ValidateContent checks content after trimming whitespace.
func ValidateContent(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		return ErrContentTooShort
	}
	return nil
}

// ContentField returns a criterio validator for anecdote content.
func ContentField(field, content string) error {
	return criterio.Run(field, content, ValidateContent)
}

// ValidateID checks that an identifier is usable in a request path.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("id %q contains invalid characters", id)
	}
	return nil
}
