package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadVariable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		def    string
		want   string
		prompt string
	}{
		{name: "plain answer", input: "my-project\n", def: "default", want: "my-project", prompt: "project_name [default]: "},
		{name: "empty answer uses default", input: "\n", def: "default", want: "default"},
		{name: "eof uses default", input: "", def: "default", want: "default"},
		{name: "answer without newline", input: "last", def: "", want: "last", prompt: "project_name: "},
		{name: "windows line ending", input: "proj\r\n", want: "proj"},
		{name: "backspaces are applied", input: "prok\x08j\n", want: "proj"},
		{name: "erased answer uses default", input: "ab\x08\x08\n", def: "fallback", want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			reader := NewReader(strings.NewReader(tt.input), out)

			got, err := reader.ReadVariable("project_name", tt.def)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.prompt != "" {
				assert.Equal(t, tt.prompt, out.String())
			}
		})
	}
}

func TestReader_ReadsSuccessiveLines(t *testing.T) {
	reader := NewReader(strings.NewReader("first\nsecond\n"), nil)

	first, err := reader.ReadVariable("a", "")
	require.NoError(t, err)
	second, err := reader.ReadVariable("b", "")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestReader_ReadYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{name: "yes", input: "yes\n", want: true},
		{name: "short no", input: "n\n", def: true, want: false},
		{name: "case insensitive", input: "TRUE\n", want: true},
		{name: "empty uses default", input: "\n", def: true, want: true},
		{name: "reprompts on garbage", input: "maybe\ny\n", want: true},
		{name: "eof after garbage uses default", input: "maybe\n", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			reader := NewReader(strings.NewReader(tt.input), out)

			got, err := reader.ReadYesNo("Delete existing template?", tt.def)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if strings.HasPrefix(tt.input, "maybe") {
				assert.Contains(t, out.String(), "Please answer yes or no.")
			}
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReader_PropagatesReadErrors(t *testing.T) {
	boom := errors.New("tty closed")
	reader := NewReader(failingReader{err: boom}, nil)

	_, err := reader.ReadVariable("name", "x")
	assert.ErrorIs(t, err, boom)

	_, err = reader.ReadYesNo("ok?", true)
	assert.ErrorIs(t, err, boom)
}

func TestIsInteractive_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, IsInteractive(f))
}
