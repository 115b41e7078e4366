// Package formatter turns a decoded one-call response into display-ready values:
// local-time strings, icon classes, truncated forecast lists and description
// fallbacks. It performs no I/O.
package formatter

import (
	"fmt"
	"time"

	"github.com/tejusbharadwaj/weatherboard/internal/models"
)

const (
	NoDescription = "No description"

	ClockLayout   = "3:04 PM"
	DayLayout     = "Mon, Jan 2"
	HourLayout    = "Mon 3 PM"
	UpdatedLayout = "Mon, Jan 2 3:04 PM"

	DefaultDailyCount  = 7
	DefaultHourlyCount = 12
)

type Options struct {
	DailyCount  int
	HourlyCount int
	// Location used for every timestamp; nil means the process local zone.
	Location *time.Location
}

// Report is the presentation view shared by all renderers. Empty time strings
// mean the source timestamp was unusable and the field is omitted.
type Report struct {
	Location           string
	CurrentTemp        float64
	CurrentDescription string
	CurrentIcon        string
	Updated            string
	Sunrise            string
	Sunset             string
	Daily              []DayForecast
	Hourly             []HourForecast
}

type DayForecast struct {
	Date        string
	Min         float64
	Max         float64
	Description string
	Icon        string
	Summary     string
	Pop         float64
	Rain        *float64
}

type HourForecast struct {
	Time        string
	Temp        float64
	Description string
	Icon        string
	Pop         float64
	WindGust    *float64
}

type Formatter struct {
	opts Options
}

func New(opts Options) *Formatter {
	if opts.DailyCount <= 0 {
		opts.DailyCount = DefaultDailyCount
	}
	if opts.HourlyCount <= 0 {
		opts.HourlyCount = DefaultHourlyCount
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Formatter{opts: opts}
}

// Format builds the report for one response. label names the location in headers.
func (f *Formatter) Format(resp *models.WeatherResponse, label string) *Report {
	desc, icon := describe(resp.Current.Weather)

	report := &Report{
		Location:           label,
		CurrentTemp:        resp.Current.Temp,
		CurrentDescription: desc,
		CurrentIcon:        icon,
		Updated:            f.localTime(resp.Current.Dt, UpdatedLayout),
		Sunrise:            f.localTime(resp.Current.Sunrise, ClockLayout),
		Sunset:             f.localTime(resp.Current.Sunset, ClockLayout),
	}

	days := Truncate(resp.Daily, f.opts.DailyCount)
	report.Daily = make([]DayForecast, 0, len(days))
	for _, day := range days {
		desc, icon := describe(day.Weather)
		report.Daily = append(report.Daily, DayForecast{
			Date:        f.localTime(day.Dt, DayLayout),
			Min:         day.Temp.Min,
			Max:         day.Temp.Max,
			Description: desc,
			Icon:        icon,
			Summary:     day.Summary,
			Pop:         day.Pop,
			Rain:        day.Rain,
		})
	}

	hours := Truncate(resp.Hourly, f.opts.HourlyCount)
	report.Hourly = make([]HourForecast, 0, len(hours))
	for _, hour := range hours {
		desc, icon := describe(hour.Weather)
		report.Hourly = append(report.Hourly, HourForecast{
			Time:        f.localTime(hour.Dt, HourLayout),
			Temp:        hour.Temp,
			Description: desc,
			Icon:        icon,
			Pop:         hour.Pop,
			WindGust:    hour.WindGust,
		})
	}

	return report
}

// localTime renders a unix timestamp in the configured zone, or "" when the
// timestamp is not a usable instant.
func (f *Formatter) localTime(ts int64, layout string) string {
	t, ok := ToLocal(ts, f.opts.Location)
	if !ok {
		return ""
	}
	return t.Format(layout)
}

// ToLocal converts unix seconds to loc. Non-positive values are provider
// placeholders for "no event" (e.g. moonrise on a moonless day) and are rejected.
func ToLocal(ts int64, loc *time.Location) (time.Time, bool) {
	if ts <= 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).In(loc), true
}

// Truncate returns the first n entries, keeping their order.
func Truncate[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func describe(conds []models.WeatherCondition) (string, string) {
	cond, ok := models.PrimaryCondition(conds)
	if !ok {
		return NoDescription, FallbackIcon
	}
	desc := cond.Description
	if desc == "" {
		desc = NoDescription
	}
	return desc, IconClass(cond.Icon)
}

// TemplateContext returns the substitution context consumed by HTML templates.
// Every entry carries the same keys; "rain" is empty on dry days.
func (r *Report) TemplateContext() map[string]any {
	daily := make([]map[string]string, 0, len(r.Daily))
	for _, d := range r.Daily {
		entry := map[string]string{
			"date":        d.Date,
			"min":         formatTemp(d.Min),
			"max":         formatTemp(d.Max),
			"description": d.Description,
			"icon":        d.Icon,
			"summary":     d.Summary,
			"pop":         formatPercent(d.Pop),
			"rain":        "",
		}
		if d.Rain != nil {
			entry["rain"] = fmt.Sprintf("%.2f", *d.Rain)
		}
		daily = append(daily, entry)
	}

	hourly := make([]map[string]string, 0, len(r.Hourly))
	for _, h := range r.Hourly {
		hourly = append(hourly, map[string]string{
			"time":        h.Time,
			"temp":        formatTemp(h.Temp),
			"description": h.Description,
			"icon":        h.Icon,
			"pop":         formatPercent(h.Pop),
		})
	}

	return map[string]any{
		"location":            r.Location,
		"updated":             r.Updated,
		"current_temp":        formatTemp(r.CurrentTemp),
		"current_icon":        r.CurrentIcon,
		"current_description": r.CurrentDescription,
		"sunrise":             r.Sunrise,
		"sunset":              r.Sunset,
		"daily":               daily,
		"hourly":              hourly,
	}
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatPercent(frac float64) string {
	return fmt.Sprintf("%.0f%%", frac*100)
}
