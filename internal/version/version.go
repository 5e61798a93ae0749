package version

import (
	"fmt"
	"time"

	"worldbridge/pkg/api"
)

// Заполняются через -ldflags "-X worldbridge/internal/version.Date=..."
var (
	Date   string // YYYY-MM-DD (UTC)
	Commit string
	Branch string
)

// Номер сборки - число дней от этой даты
var epoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// Build - то, что отдает /version и печатает баннер при старте
type Build struct {
	Number   int    `json:"number,omitempty"`
	Date     string `json:"date,omitempty"`
	Commit   string `json:"commit,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Protocol string `json:"protocol"`
	Err      string `json:"error,omitempty"`
}

// Current собирает сведения о текущей сборке. Пустая или кривая дата - не фатально,
// причина попадает в Err.
func Current() Build {
	b := Build{
		Date:     Date,
		Commit:   Commit,
		Branch:   Branch,
		Protocol: api.ProtocolVersion,
	}
	n, err := buildNumber(Date)
	if err != nil {
		b.Err = err.Error()
		return b
	}
	b.Number = n
	return b
}

func buildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is not set")
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("build date %q: %w", date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, epoch.Format(time.DateOnly))
	}
	return int(t.Sub(epoch) / (24 * time.Hour)), nil
}

func (b Build) String() string {
	if b.Err != "" {
		return fmt.Sprintf("worldbridge dev build (%s), protocol %s", b.Err, b.Protocol)
	}
	commit := b.Commit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("worldbridge build %d (%s, %s), protocol %s", b.Number, b.Date, commit, b.Protocol)
}
