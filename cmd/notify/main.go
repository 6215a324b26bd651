package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxbond/telegram/internal/app"
	"github.com/maxbond/telegram/internal/domain/notification"
	"github.com/maxbond/telegram/internal/infra/config"
	idb "github.com/maxbond/telegram/internal/infra/database"
	"github.com/maxbond/telegram/internal/infra/logger"
	"github.com/maxbond/telegram/internal/infra/scheduler"
	"github.com/maxbond/telegram/pkg/telegram"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		return 1
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	n, err := opts.notification()
	if err != nil {
		log.Errorf("Invalid notification: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Delivery journal is optional
	var deliveryRepo notification.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Errorf("Could not connect to database: %v", err)
			return 1
		}
		defer db.Close()

		repo := idb.NewPostgresDeliveryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Errorf("Could not prepare delivery journal: %v", err)
			return 1
		}
		deliveryRepo = repo
		log.Info("Delivery journal enabled.")
	}

	client := telegram.New(opts.token,
		telegram.WithAPIURL(cfg.TelegramAPIURL),
		telegram.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		telegram.WithLogger(logger.Component("telegram")),
	)
	notifService := app.NewNotificationServiceImpl(client, deliveryRepo, logger.Component("notification"))

	if opts.cronSpec == "" {
		if _, err := notifService.Send(ctx, n); err != nil {
			return 1
		}
		return 0
	}

	notifScheduler := scheduler.NewNotificationScheduler(notifService, n, logger.Component("scheduler"), opts.cronSpec)
	if err := notifScheduler.Start(); err != nil {
		log.Errorf("Could not start scheduler: %v", err)
		return 1
	}

	<-ctx.Done() // Block until a signal is received

	log.Info("Shutting down notifier...")
	notifScheduler.Stop()
	log.Info("Notifier shut down gracefully.")
	return 0
}

type options struct {
	kind      string
	chatID    string
	text      string
	parseMode string
	fileType  string
	file      string
	upload    bool
	caption   string
	lat       float64
	lon       float64
	silent    bool
	token     string
	cronSpec  string
}

func parseFlags(args []string, cfg *config.AppConfig) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	fs.StringVar(&opts.kind, "kind", "message", "what to send: message, file or location")
	fs.StringVar(&opts.chatID, "chat", cfg.DefaultChatID, "target chat_id (defaults to TELEGRAM_CHAT_ID)")
	fs.StringVar(&opts.text, "text", "", "message text")
	fs.StringVar(&opts.parseMode, "parse-mode", "", "parse_mode: Markdown, MarkdownV2 or HTML")
	fs.StringVar(&opts.fileType, "type", telegram.FileDocument, "file type: photo, document, audio, video, voice, animation, sticker")
	fs.StringVar(&opts.file, "file", "", "file_id, URL, or local path with -upload")
	fs.BoolVar(&opts.upload, "upload", false, "upload -file from disk as multipart")
	fs.StringVar(&opts.caption, "caption", "", "file caption")
	fs.Float64Var(&opts.lat, "lat", 0, "latitude")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude")
	fs.BoolVar(&opts.silent, "silent", false, "send with disable_notification")
	fs.StringVar(&opts.token, "token", cfg.TelegramToken, "bot token (defaults to TELEGRAM_TOKEN)")
	fs.StringVar(&opts.cronSpec, "cron", cfg.CronSpec, "repeat on this cron spec instead of sending once")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// notification converts the flags into the Bot API call to make.
func (o *options) notification() (notification.Notification, error) {
	if o.chatID == "" {
		return notification.Notification{}, fmt.Errorf("chat id is required (-chat or TELEGRAM_CHAT_ID)")
	}

	switch o.kind {
	case "message":
		if o.text == "" {
			return notification.Notification{}, fmt.Errorf("-text is required for a message")
		}
		return notification.Notification{
			Kind: notification.KindMessage,
			Params: telegram.Message{
				ChatID:              o.chatID,
				Text:                o.text,
				ParseMode:           o.parseMode,
				DisableNotification: o.silent,
			}.Params(),
		}, nil
	case "file":
		if o.file == "" {
			return notification.Notification{}, fmt.Errorf("-file is required for a file")
		}
		var source any = o.file
		if o.upload {
			if _, err := os.Stat(o.file); err != nil {
				return notification.Notification{}, fmt.Errorf("cannot upload %s: %w", o.file, err)
			}
			source = telegram.FileFromPath(o.file)
		}
		f := telegram.File{
			ChatID:              o.chatID,
			Type:                o.fileType,
			Source:              source,
			Caption:             o.caption,
			ParseMode:           o.parseMode,
			DisableNotification: o.silent,
		}
		return notification.Notification{
			Kind:      notification.KindFile,
			FileType:  o.fileType,
			Multipart: f.Multipart(),
			Params:    f.Params(),
		}, nil
	case "location":
		return notification.Notification{
			Kind: notification.KindLocation,
			Params: telegram.Location{
				ChatID:              o.chatID,
				Latitude:            o.lat,
				Longitude:           o.lon,
				DisableNotification: o.silent,
			}.Params(),
		}, nil
	default:
		return notification.Notification{}, fmt.Errorf("unknown -kind %q", o.kind)
	}
}
