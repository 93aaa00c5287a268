package iojson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]int{"votes": 3}))
	require.NoError(t, WriteLine(&buf, map[string]int{"votes": 4}))

	assert.Equal(t, "{\"votes\":3}\n{\"votes\":4}\n", buf.String())
}

func TestWriteLine_unmarshalable(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLine(&buf, make(chan int))

	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteError_unmarshalable_data(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteError(&buf, "import failed", map[string]any{"bad": make(chan int)}))

	assert.Contains(t, buf.String(), `"message":"import failed"`)
	assert.Contains(t, buf.String(), "json_error")
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteError(&buf, "vote failed", map[string]any{"id": "a1"}))

	assert.JSONEq(t, `{"message":"vote failed","data":{"id":"a1"}}`, strings.TrimSpace(buf.String()))
}

func TestJSONError_escapes(t *testing.T) {
	out := jsonError(`say "hi"`, errors.New(`bad "thing"`))

	assert.Contains(t, out, `\"hi\"`)
	assert.Contains(t, out, `\"thing\"`)
}

type item struct {
	Content string `json:"content"`
}

func TestFileReader_reads_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"content":"hello world"}]`), 0o644))

	fr := &FileReader[[]item]{fileFlagValue: path}
	got, err := fr.Read()

	require.NoError(t, err)
	assert.Equal(t, []item{{Content: "hello world"}}, got)
}

func TestFileReader_reads_stdin(t *testing.T) {
	fr := &FileReader[[]item]{stdin: strings.NewReader(`[{"content":"from stdin"}]`)}

	got, err := fr.Read()

	require.NoError(t, err)
	assert.Equal(t, "from stdin", got[0].Content)
}

func TestFileReader_bad_json(t *testing.T) {
	fr := &FileReader[[]item]{stdin: strings.NewReader(`[`)}

	_, err := fr.Read()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestFileReader_Flag(t *testing.T) {
	fr := &FileReader[[]item]{}

	f := fr.Flag()

	assert.Equal(t, "file", f.Name)
	assert.Equal(t, []string{"f"}, f.Aliases)
}
