package service

import (
	"time"
)

const (
	// DisplayDateLayout is how entry dates show up on the pages.
	DisplayDateLayout = "2006-01-02"

	// ExportDateLayout mirrors the store's native timestamp text,
	// e.g. 2024-05-01 12:00:00.250000. Whole seconds drop the fraction,
	// see FormatExport.
	ExportDateLayout = "2006-01-02 15:04:05.000000"

	exportWholeSecondLayout = "2006-01-02 15:04:05"
)

var nowFunc = time.Now

func NowUTC() time.Time {
	return nowFunc().
		UTC()
}

func FormatDisplay(t time.Time) string {
	return t.UTC().
		Format(DisplayDateLayout)
}

// FormatExport prints microsecond precision, omitting the fraction entirely
// when it is zero.
func FormatExport(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(exportWholeSecondLayout)
	}
	return t.Format(ExportDateLayout)
}
