package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "15:04:05"}
	}
	styles := levelStyles()

	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

type levelStyle struct {
	level log.Level
	key   string
	icon  string
	color lipgloss.AdaptiveColor
}

var palette = []levelStyle{
	{log.ErrorLevel, "error", "✖", lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}},
	{log.WarnLevel, "warn", "!", lipgloss.AdaptiveColor{Light: "#B86E00", Dark: "#F4B942"}},
	{log.InfoLevel, "info", "•", lipgloss.AdaptiveColor{Light: "#1B7F5A", Dark: "#2BD98E"}},
	{log.DebugLevel, "debug", "·", lipgloss.AdaptiveColor{Light: "#5C4AA8", Dark: "#9D8DF1"}},
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	muted := palette[len(palette)-1].color
	for _, p := range palette {
		styles.Levels[p.level] = lipgloss.NewStyle().
			SetString(p.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(p.color)
		styles.Keys[p.key] = lipgloss.NewStyle().Foreground(p.color)
		styles.Values[p.key] = lipgloss.NewStyle().Bold(true)
	}
	for _, k := range []string{"prefix", "caller", "time", "userID"} {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(muted)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}
