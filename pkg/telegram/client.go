// Package telegram is a thin client for sending outbound messages, files and
// locations through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"
)

// DefaultAPIURL is the Bot API base URL. The token and endpoint are appended to it.
const DefaultAPIURL = "https://api.telegram.org/bot"

// HTTPClient is the transport used to issue requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Params holds the request fields of a Bot API method (chat_id, text, ...).
// Keys and values are passed through without validation.
type Params map[string]any

// Client sends requests to the Bot API. It is safe for concurrent use.
type Client struct {
	mu     sync.RWMutex
	token  string
	apiURL string

	httpOnce sync.Once
	http     HTTPClient

	logger logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. Without it an *http.Client is created on first use.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithAPIURL overrides DefaultAPIURL, e.g. to go through a proxy.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		if apiURL != "" {
			c.apiURL = apiURL
		}
	}
}

// WithLogger sets the logger. Output is discarded by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client. The token may be empty and set later with SetToken.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:  token,
		apiURL: DefaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = l
	}
	return c
}

// Token returns the current bot token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bot token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// APIURL returns the configured base URL.
func (c *Client) APIURL() string {
	return c.apiURL
}

func (c *Client) httpClient() HTTPClient {
	c.httpOnce.Do(func() {
		if c.http == nil {
			c.http = &http.Client{}
		}
	})
	return c.http
}

// SendMessage sends a text message.
//
//	telegram.Params{
//		"chat_id":                  "",
//		"text":                     "",
//		"parse_mode":               "",
//		"disable_web_page_preview": false,
//		"disable_notification":     false,
//		"reply_to_message_id":      0,
//		"reply_markup":             nil,
//	}
//
// See https://core.telegram.org/bots/api#sendmessage
func (c *Client) SendMessage(ctx context.Context, params Params) (*http.Response, error) {
	return c.sendRequest(ctx, "sendMessage", params, false)
}

// SendFile sends a photo, document or another file type. The endpoint is
// FileEndpoint(fileType). With multipart set the body is multipart/form-data,
// which is required for uploading an InputFile; otherwise files are referenced
// by URL or file_id in a URL-encoded form.
func (c *Client) SendFile(ctx context.Context, params Params, fileType string, multipart bool) (*http.Response, error) {
	return c.sendRequest(ctx, FileEndpoint(fileType), params, multipart)
}

// SendLocation sends a point on the map.
func (c *Client) SendLocation(ctx context.Context, params Params) (*http.Response, error) {
	return c.sendRequest(ctx, "sendLocation", params, false)
}

// sendRequest issues exactly one POST to {apiURL}{token}/{endpoint}.
// On success the caller owns the response body.
func (c *Client) sendRequest(ctx context.Context, endpoint string, params Params, multipart bool) (*http.Response, error) {
	token := c.Token()
	if token == "" {
		return nil, ErrMissingToken
	}

	log := c.logger.WithFields(logrus.Fields{
		"endpoint":  endpoint,
		"multipart": multipart,
	})

	var (
		body        io.Reader
		contentType string
		err         error
	)
	if multipart {
		body, contentType, err = encodeMultipart(params)
	} else {
		body, contentType, err = encodeForm(params)
	}
	if err != nil {
		log.WithError(err).Warn("Could not encode request body")
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	endpointURL := c.apiURL + token + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: redact(err, token)}
	}
	req.Header.Set("Content-Type", contentType)

	log.Debug("Sending Bot API request")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		err = redact(err, token)
		log.WithError(err).Warn("Could not communicate with Telegram")
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(endpoint, resp)
		log.WithFields(logrus.Fields{
			"status":      resp.StatusCode,
			"description": apiErr.Description,
		}).Warn("Telegram responded with an error")
		return nil, apiErr
	}

	log.WithField("status", resp.StatusCode).Debug("Bot API request sent")
	return resp, nil
}

// newAPIError buffers the response body so it stays readable through APIError.Response.
func newAPIError(endpoint string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	apiErr := &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Body:       raw,
		Response:   resp,
	}
	if env, err := decodeEnvelope(raw); err == nil {
		apiErr.ErrorCode = env.ErrorCode
		apiErr.Description = env.Description
	}
	return apiErr
}

// redact strips the bot token from the URL carried by *url.Error.
func redact(err error, token string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, token, "<token>")
		return err
	}
	if !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
}

// FileEndpoint returns the Bot API method for a file type: "send" followed by
// fileType with its first character uppercased and the rest unchanged.
func FileEndpoint(fileType string) string {
	if fileType == "" {
		return "send"
	}
	r := []rune(fileType)
	r[0] = unicode.ToUpper(r[0])
	return "send" + string(r)
}
