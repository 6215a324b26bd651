package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response is the envelope every Bot API method answers with.
type Response struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters explains why a request failed.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// MessageID returns result.message_id, or 0 when the result is not a message.
func (r *Response) MessageID() int64 {
	var msg struct {
		MessageID int64 `json:"message_id"`
	}
	if len(r.Result) == 0 || json.Unmarshal(r.Result, &msg) != nil {
		return 0
	}
	return msg.MessageID
}

// DecodeResponse reads and closes resp.Body and decodes the envelope.
// An envelope with "ok": false is returned as *APIError along with the decoded Response.
func DecodeResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram: read response: %w", err)
	}
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("telegram: decode response: %w", err)
	}
	if !env.OK {
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		return env, &APIError{
			Endpoint:    endpointFromRequest(resp.Request),
			StatusCode:  resp.StatusCode,
			ErrorCode:   env.ErrorCode,
			Description: env.Description,
			Body:        raw,
			Response:    resp,
		}
	}
	return env, nil
}

func decodeEnvelope(raw []byte) (*Response, error) {
	env := &Response{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, err
	}
	return env, nil
}

// endpointFromRequest returns the last path segment, the method name.
func endpointFromRequest(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	path := req.URL.Path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
