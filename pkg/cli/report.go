package cli

import (
	"fmt"
	"io"

	"github.com/ChumaSuey/TaxReminder/pkg/display"
	"github.com/ChumaSuey/TaxReminder/pkg/reminder"
)

// RenderReport writes the today/upcoming report as the bullet list both
// report surfaces share. Nothing is written for empty buckets; callers print
// their own "all clear" line when the whole report is empty.
func RenderReport(w io.Writer, report reminder.Report) {
	if len(report.Today) > 0 {
		fmt.Fprintf(w, "\n🔔 ¡VENCIMIENTOS PARA HOY!\n")

		for _, item := range report.Today {
			renderItem(w, item, "")
		}
	}

	if len(report.Upcoming) > 0 {
		fmt.Fprintf(w, "\n🔔 PRÓXIMOS VENCIMIENTOS\n")

		for _, item := range report.Upcoming {
			renderItem(w, item, fmt.Sprintf(" (%s)", display.DaysText(item.DaysUntil)))
		}
	}
}

func renderItem(w io.Writer, item reminder.Item, suffix string) {
	entry := item.Entry

	fmt.Fprintf(w, "\n• %s\n", entry.CategoryDescription)
	fmt.Fprintf(w, "  📅 %d de %s%s\n", entry.Day, display.MonthName(entry.Month), suffix)

	if entry.Description != "" {
		fmt.Fprintf(w, "  📝 %s\n", entry.Description)
	}
}
