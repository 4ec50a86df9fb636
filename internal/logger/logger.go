package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects how the process logger encodes and filters entries.
type Options struct {
	// Format is "console" (default) or "json".
	Format string
	Debug  bool
	// Service is attached to every entry when set.
	Service string
}

// New builds the process logger writing to stdout.
func New(opts Options) (*zap.Logger, error) {
	core, err := newCore(opts, zapcore.Lock(os.Stdout))
	if err != nil {
		return nil, err
	}

	zapOpts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}
	if opts.Service != "" {
		zapOpts = append(zapOpts, zap.Fields(zap.String("service", opts.Service)))
	}

	return zap.New(core, zapOpts...), nil
}

func newCore(opts Options, out zapcore.WriteSyncer) (zapcore.Core, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	return zapcore.NewCore(enc, out, level), nil
}

// Snippet logs model text as its length and a rune-safe prefix of at most
// limit runes, so prompts and completions never land in logs whole.
func Snippet(key, text string, limit int) zap.Field {
	return zap.Object(key, zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddInt("chars", len(text))
		enc.AddString("preview", preview(text, limit))
		return nil
	}))
}

func preview(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
