package telegram

// File types accepted by SendFile. Each maps to a send<Type> method and is
// also the name of the field that carries the file.
const (
	FilePhoto     = "photo"
	FileDocument  = "document"
	FileAudio     = "audio"
	FileVideo     = "video"
	FileVoice     = "voice"
	FileAnimation = "animation"
	FileSticker   = "sticker"
)

// Message builds sendMessage parameters.
type Message struct {
	ChatID                string
	Text                  string
	ParseMode             string
	DisableWebPagePreview bool
	DisableNotification   bool
	ReplyToMessageID      int64
	// ReplyMarkup is sent as JSON.
	ReplyMarkup any
}

// Params returns the set fields only.
func (m Message) Params() Params {
	p := Params{
		"chat_id": m.ChatID,
		"text":    m.Text,
	}
	if m.ParseMode != "" {
		p["parse_mode"] = m.ParseMode
	}
	if m.DisableWebPagePreview {
		p["disable_web_page_preview"] = true
	}
	setCommon(p, m.DisableNotification, m.ReplyToMessageID, m.ReplyMarkup)
	return p
}

// Location builds sendLocation parameters.
type Location struct {
	ChatID              string
	Latitude            float64
	Longitude           float64
	LivePeriod          int
	DisableNotification bool
	ReplyToMessageID    int64
	ReplyMarkup         any
}

func (l Location) Params() Params {
	p := Params{
		"chat_id":   l.ChatID,
		"latitude":  l.Latitude,
		"longitude": l.Longitude,
	}
	if l.LivePeriod > 0 {
		p["live_period"] = l.LivePeriod
	}
	setCommon(p, l.DisableNotification, l.ReplyToMessageID, l.ReplyMarkup)
	return p
}

// File builds parameters for SendFile. Source is a file_id or URL string, or
// an *InputFile to upload.
type File struct {
	ChatID              string
	Type                string
	Source              any
	Caption             string
	ParseMode           string
	DisableNotification bool
	ReplyToMessageID    int64
	ReplyMarkup         any
}

func (f File) Params() Params {
	p := Params{
		"chat_id": f.ChatID,
		f.Type:    f.Source,
	}
	if f.Caption != "" {
		p["caption"] = f.Caption
	}
	if f.ParseMode != "" {
		p["parse_mode"] = f.ParseMode
	}
	setCommon(p, f.DisableNotification, f.ReplyToMessageID, f.ReplyMarkup)
	return p
}

// Multipart reports whether the file is uploaded and needs a multipart body.
func (f File) Multipart() bool {
	_, ok := f.Source.(*InputFile)
	return ok
}

func setCommon(p Params, disableNotification bool, replyTo int64, markup any) {
	if disableNotification {
		p["disable_notification"] = true
	}
	if replyTo != 0 {
		p["reply_to_message_id"] = replyTo
	}
	if markup != nil {
		p["reply_markup"] = markup
	}
}
