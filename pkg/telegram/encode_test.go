package telegram

import (
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-1001234567890), "-1001234567890"},
		{"uint8", uint8(7), "7"},
		{"whole float", 1.0, "1"},
		{"float", 55.755826, "55.755826"},
		{"float32", float32(0.5), "0.5"},
		{"stringer", 90 * time.Second, "1m30s"},
		{"markup", map[string]any{"remove_keyboard": true}, `{"remove_keyboard":true}`},
		{"slice", []int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValueUnsupported(t *testing.T) {
	_, err := formatValue(make(chan int))
	assert.Error(t, err)
}

func TestEncodeForm(t *testing.T) {
	body, contentType, err := encodeForm(Params{
		"chat_id":              int64(-100),
		"text":                 "a & b",
		"disable_notification": true,
		"reply_markup":         nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	values, err := url.ParseQuery(string(raw))
	require.NoError(t, err)

	assert.Equal(t, "-100", values.Get("chat_id"))
	assert.Equal(t, "a & b", values.Get("text"))
	assert.Equal(t, "true", values.Get("disable_notification"))
	_, present := values["reply_markup"]
	assert.False(t, present)
}

func TestEncodeFormRejectsFiles(t *testing.T) {
	_, _, err := encodeForm(Params{"photo": FileFromBytes("a.png", nil)})
	assert.ErrorIs(t, err, ErrFileNeedsMultipart)
	assert.Contains(t, err.Error(), `"photo"`)
}

func readParts(t *testing.T, body io.Reader, contentType string) map[string]string {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	parts := map[string]string{}
	reader := multipart.NewReader(body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return parts
		}
		require.NoError(t, err)
		raw, err := io.ReadAll(part)
		require.NoError(t, err)
		key := part.FormName()
		if part.FileName() != "" {
			key += "@" + part.FileName()
		}
		parts[key] = string(raw)
	}
}

func TestEncodeMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	file := FileFromPath(path)
	assert.Equal(t, "report.pdf", file.Name())

	for i := 0; i < 2; i++ {
		body, contentType, err := encodeMultipart(Params{
			"chat_id":  123,
			"document": file,
			"caption":  "monthly",
		})
		require.NoError(t, err)

		parts := readParts(t, body, contentType)
		assert.Equal(t, map[string]string{
			"chat_id":             "123",
			"caption":             "monthly",
			"document@report.pdf": "%PDF-1.4",
		}, parts)
	}
}

func TestEncodeMultipartReader(t *testing.T) {
	body, contentType, err := encodeMultipart(Params{
		"voice": FileFromReader("note.ogg", strings.NewReader("ogg")),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"voice@note.ogg": "ogg"}, readParts(t, body, contentType))
}

func TestEncodeMultipartMissingFile(t *testing.T) {
	_, _, err := encodeMultipart(Params{
		"document": FileFromPath(filepath.Join(t.TempDir(), "missing.txt")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
