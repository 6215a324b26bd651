// internal/domain/notification/notification.go
package notification

import (
	"fmt"

	"github.com/maxbond/telegram/pkg/telegram"
)

// Notification is one outbound Telegram message, file or location.
type Notification struct {
	Kind      Kind
	FileType  string // Only for KindFile, e.g. "photo", "document"
	Multipart bool   // Only for KindFile, true when Params carry an *telegram.InputFile
	Params    telegram.Params
}

// ChatID returns the chat_id parameter as text, or "" when it is missing.
func (n Notification) ChatID() string {
	v, ok := n.Params["chat_id"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
