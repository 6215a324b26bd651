package telegram

import (
	"context"
	"net/http"

	tg "github.com/maxbond/telegram/pkg/telegram"
)

// Client defines the Bot API calls the notifier makes.
// This keeps the application service independent of the concrete client;
// *telegram.Client from pkg/telegram implements it.
type Client interface {
	SendMessage(ctx context.Context, params tg.Params) (*http.Response, error)
	SendFile(ctx context.Context, params tg.Params, fileType string, multipart bool) (*http.Response, error)
	SendLocation(ctx context.Context, params tg.Params) (*http.Response, error)
}

var _ Client = (*tg.Client)(nil)
