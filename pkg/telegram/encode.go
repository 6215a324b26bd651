package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// InputFile is file content uploaded in a multipart body.
type InputFile struct {
	name   string
	path   string
	data   []byte
	reader io.Reader
}

// FileFromPath uploads the file at path. It is opened each time a request is
// encoded, so the same InputFile can be sent repeatedly.
func FileFromPath(path string) *InputFile {
	return &InputFile{name: filepath.Base(path), path: path}
}

// FileFromBytes uploads data under the given file name.
func FileFromBytes(name string, data []byte) *InputFile {
	return &InputFile{name: name, data: data}
}

// FileFromReader uploads what r yields. The reader is consumed by the first request.
func FileFromReader(name string, r io.Reader) *InputFile {
	return &InputFile{name: name, reader: r}
}

// Name is the file name sent in the multipart part.
func (f *InputFile) Name() string {
	return f.name
}

func (f *InputFile) writeTo(w io.Writer) error {
	switch {
	case f.path != "":
		file, err := os.Open(f.path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(w, file)
		return err
	case f.reader != nil:
		_, err := io.Copy(w, f.reader)
		return err
	default:
		_, err := w.Write(f.data)
		return err
	}
}

func encodeForm(params Params) (io.Reader, string, error) {
	values := url.Values{}
	for key, v := range params {
		if v == nil {
			continue
		}
		if _, ok := v.(*InputFile); ok {
			return nil, "", fmt.Errorf("field %q: %w", key, ErrFileNeedsMultipart)
		}
		s, err := formatValue(v)
		if err != nil {
			return nil, "", fmt.Errorf("field %q: %w", key, err)
		}
		values.Set(key, s)
	}
	return bytes.NewBufferString(values.Encode()), "application/x-www-form-urlencoded", nil
}

func encodeMultipart(params Params) (io.Reader, string, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, key := range keys {
		v := params[key]
		if v == nil {
			continue
		}
		if f, ok := v.(*InputFile); ok {
			part, err := w.CreateFormFile(key, f.name)
			if err != nil {
				return nil, "", err
			}
			if err := f.writeTo(part); err != nil {
				return nil, "", fmt.Errorf("field %q: read file: %w", key, err)
			}
			continue
		}
		s, err := formatValue(v)
		if err != nil {
			return nil, "", fmt.Errorf("field %q: %w", key, err)
		}
		if err := w.WriteField(key, s); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// formatValue renders a scalar the way the Bot API reads form fields.
// Composite values such as reply_markup are sent as JSON.
func formatValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(raw), nil
}
