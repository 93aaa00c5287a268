package anecdote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "empty", content: "", wantErr: true},
		{name: "short", content: "hi", wantErr: true},
		{name: "padded short", content: "   abcd   ", wantErr: true},
		{name: "exactly five", content: "abcde", wantErr: false},
		{name: "sentence", content: "hello world", wantErr: false},
		{name: "multibyte counted as runes", content: "héllo", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrContentTooShort)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestContentField(t *testing.T) {
	assert.Error(t, ContentField("content", "hi"))
	assert.NoError(t, ContentField("content", "hello world"))
}

func TestNew_trims_and_starts_at_zero(t *testing.T) {
	a := New("  hello world \n")

	assert.Equal(t, "hello world", a.Content)
	assert.Equal(t, 0, a.Votes)
	assert.Empty(t, a.ID)
}

func TestVoted(t *testing.T) {
	a := Anecdote{ID: "a1", Content: "hello world", Votes: 3}

	v := a.Voted()

	assert.Equal(t, 4, v.Votes)
	assert.Equal(t, 3, a.Votes, "original must not change")
	assert.Equal(t, a.ID, v.ID)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("a1b2"))
	assert.Error(t, ValidateID(""))
	assert.Error(t, ValidateID("  "))
	assert.Error(t, ValidateID("a/b"))
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "string", input: `{"id":"a1b2"}`, want: "a1b2"},
		{name: "number", input: `{"id":17}`, want: "17"},
		{name: "null", input: `{"id":null}`, want: ""},
		{name: "missing", input: `{}`, want: ""},
		{name: "object", input: `{"id":{"x":1}}`, wantErr: true},
		{name: "bool", input: `{"id":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Anecdote
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ID)
		})
	}
}

func TestID_MarshalJSON_is_string(t *testing.T) {
	bits, err := json.Marshal(Anecdote{ID: "17", Content: "hello world", Votes: 2})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"17","content":"hello world","votes":2}`, string(bits))
}
