package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
)

type TableConfig struct {
	LabelWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 28,
		ValueWidth: 24,
	}
}

// Reporter renders a report as a plain-text summary for the terminal.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"rating": func(v *float64) string {
			if v == nil {
				return "n/a"
			}
			return fmt.Sprintf("%.2f / 5", *v)
		},
		"window": func(w domain.Window) string {
			if w.AllTime {
				return "all time"
			}
			return fmt.Sprintf("%s to %s (%d days)",
				w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"), w.Days())
		},
		"row": func(label string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				r.config.LabelWidth, label,
				r.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", r.config.LabelWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2))
		},
	}

	tmpl := `
Hotel Performance Report ({{window .Window}})

Total Revenue:  {{money .TotalRevenue}}
Reservations:   {{.ReservationCount}}
Occupancy Rate: {{pct .OccupancyRate}}
Average Rating: {{rating .AverageRating}}

=== Revenue Trend ===
{{separator}}
{{row "Bucket" "Revenue"}}
{{separator}}
{{range .RevenueTrend}}{{row .Label (money .Revenue)}}
{{end}}{{separator}}

=== Top Rooms ===
{{separator}}
{{row "Room" "Revenue"}}
{{separator}}
{{range .TopRooms}}{{row .Name (printf "%s (%d bookings)" (money .Revenue) .Bookings)}}
{{end}}{{separator}}

=== Top Services ===
{{separator}}
{{row "Service" "Revenue"}}
{{separator}}
{{range .TopServices}}{{row .Name (printf "%s (%d bookings)" (money .Revenue) .Bookings)}}
{{end}}{{separator}}

=== Guest Statuses ===
{{separator}}
{{row "Status" "Guests"}}
{{separator}}
{{range .GuestStatuses}}{{row .Status .Guests}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, report)
}
