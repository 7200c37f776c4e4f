package tsalert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RenderStats summarizes a render run.
type RenderStats struct {
	Alerts   int `json:"alerts"`
	Rendered int `json:"rendered"`
	Skipped  int `json:"skipped"`
}

// Render reads the report and renders every alert, in report order.
func Render(ctx context.Context, opts RenderOptions) (RenderStats, error) {
	if opts.Report == "" {
		return RenderStats{}, errors.New("report is required")
	}
	alerts, err := LoadReport(opts.Report, opts.SourceRoot)
	if err != nil {
		return RenderStats{}, err
	}
	return RenderAlerts(ctx, alerts, opts)
}

// RenderAlerts renders alerts that are already loaded. opts.Report is
// ignored. Failures tied to a single alert are logged and skipped unless
// opts.Strict is set.
func RenderAlerts(ctx context.Context, alerts []Alert, opts RenderOptions) (RenderStats, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Color == "" {
		opts.Color = ColorAuto
	}
	if opts.SeparatorWidth == 0 {
		opts.SeparatorWidth = DefaultSeparatorWidth
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	language := Get(opts.Language)
	if language == nil {
		return RenderStats{}, fmt.Errorf("%s: %w", opts.Language, ErrLanguageNotRegistered)
	}

	if opts.Dedup {
		alerts = dedupAlerts(alerts)
	}

	r := NewRenderer(opts.Output, opts.Color, opts.SeparatorWidth)
	cache := newSourceCache(language, opts.Cache, opts.AllowSyntaxErrors)
	defer cache.close()

	stats := RenderStats{Alerts: len(alerts)}
	for _, alert := range alerts {
		rendered, err := renderAlert(ctx, r, cache, alert, opts.Logger)
		if err != nil {
			if opts.Strict {
				return stats, &AlertError{Alert: alert, Err: err}
			}
			opts.Logger.Warn("skipping alert",
				slog.String("file", alert.File),
				slog.Int("line", alert.Line),
				slog.Int("column", alert.Column),
				slog.String("error", err.Error()),
			)
		}
		if rendered {
			stats.Rendered++
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

// renderAlert processes one alert. Only an unreadable source file is
// returned as an error; a missing tree, token or function is a silent skip.
func renderAlert(ctx context.Context, r *Renderer, cache *sourceCache, alert Alert, logger *slog.Logger) (bool, error) {
	attrs := []any{
		slog.String("file", alert.File),
		slog.Int("line", alert.Line),
		slog.Int("column", alert.Column),
	}

	unit, err := cache.get(ctx, alert.File)
	if err != nil {
		return false, err
	}
	defer cache.release(unit)

	// Without a tree nothing is printed. Past this point the header is
	// always printed, even when no identifier or function is found.
	if !unit.HasTree() {
		logger.Debug("no syntax tree", append(attrs, slog.Any("error", unit.ParseErr()))...)
		return false, nil
	}
	if other := ByExtension(filepath.Ext(alert.File)); other != nil && other.Name() != unit.Language().Name() {
		logger.Debug("file extension belongs to another grammar", append(attrs, slog.String("grammar", other.Name()))...)
	}

	if err := r.Header(alert); err != nil {
		return false, err
	}

	line := alert.Line - 1
	node := unit.Locate(line, alert.Column-1)
	rendered := false
	if node == nil {
		logger.Debug("no identifier at position", attrs...)
	} else if _, ok := unit.EnclosingFunction(node); !ok {
		logger.Debug("no enclosing function", attrs...)
	} else {
		if err := r.Render(unit, node, line, alert.Message); err != nil {
			return false, err
		}
		rendered = true
	}

	if err := r.Footer(); err != nil {
		return false, err
	}
	return rendered, nil
}

// ListAlerts reads the report and returns its alerts without rendering them.
func ListAlerts(opts ListOptions) ([]Alert, error) {
	if opts.Report == "" {
		return nil, errors.New("report is required")
	}
	alerts, err := LoadReport(opts.Report, opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	if opts.Dedup {
		alerts = dedupAlerts(alerts)
	}
	return alerts, nil
}

// dedupAlerts keeps the first occurrence of each (file, line, column,
// message) tuple, preserving order.
func dedupAlerts(alerts []Alert) []Alert {
	seen := make(map[uint64]struct{}, len(alerts))
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		key := alertKey(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

func alertKey(a Alert) uint64 {
	d := xxhash.New()
	d.WriteString(a.File)
	d.WriteString("\x00")
	d.WriteString(strconv.Itoa(a.Line))
	d.WriteString(":")
	d.WriteString(strconv.Itoa(a.Column))
	d.WriteString("\x00")
	d.WriteString(a.Message)
	return d.Sum64()
}

// sourceCache loads source units. When disabled every alert gets a fresh
// unit that is closed after use; when enabled units live until close.
type sourceCache struct {
	language          Language
	enabled           bool
	allowSyntaxErrors bool
	units             map[string]*SourceUnit
}

func newSourceCache(language Language, enabled, allowSyntaxErrors bool) *sourceCache {
	return &sourceCache{
		language:          language,
		enabled:           enabled,
		allowSyntaxErrors: allowSyntaxErrors,
		units:             make(map[string]*SourceUnit),
	}
}

func (c *sourceCache) get(ctx context.Context, path string) (*SourceUnit, error) {
	if unit, ok := c.units[path]; ok {
		return unit, nil
	}
	unit, err := LoadSource(ctx, path, c.language, c.allowSyntaxErrors)
	if err != nil {
		return nil, err
	}
	if c.enabled {
		c.units[path] = unit
	}
	return unit, nil
}

func (c *sourceCache) release(unit *SourceUnit) {
	if !c.enabled {
		unit.Close()
	}
}

func (c *sourceCache) close() {
	for path, unit := range c.units {
		unit.Close()
		delete(c.units, path)
	}
}
