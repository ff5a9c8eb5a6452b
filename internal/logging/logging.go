// -----------------------------------------------------------------------------
// Logging
// -----------------------------------------------------------------------------
// Uygulamanın tek logger'ı burada kurulur. Konsola text veya JSON yazılır;
// SEQ_URL tanımlıysa aynı kayıtlar Seq'e de gönderilir. Logger main'de
// oluşturulur ve katmanlara (*slog.Logger olarak) enjekte edilir.
// -----------------------------------------------------------------------------

package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// Options, logger kurulum ayarları.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json
	SeqURL string
	Output io.Writer
}

// ParseLevel, seviye adını slog.Level'a çevirir. Bilinmeyen ad info olur.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup, logger'ı kurar ve kapanışta çağrılacak cleanup fonksiyonunu döndürür.
func Setup(opts Options) (*slog.Logger, func()) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var console slog.Handler
	if opts.Format == "json" {
		console = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		console = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	if opts.SeqURL == "" {
		return slog.New(console), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(2*time.Second),
		slogseq.WithHandlerOptions(handlerOpts),
	)
	if seqHandler == nil {
		return slog.New(console), func() {}
	}

	logger := slog.New(&multiHandler{handlers: []slog.Handler{console, seqHandler}})
	return logger, func() { seqHandler.Close() }
}

// multiHandler, kayıtları birden fazla handler'a iletir.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle, her handler'ı çalıştırır; biri hata verse bile diğerleri atlanmaz.
func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
