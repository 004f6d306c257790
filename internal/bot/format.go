package bot

import (
	"fmt"
	"strings"
	"time"

	"burgerbot/internal/catalog"
	"burgerbot/internal/model"
)

// FormatNotification renders the slot announcement for one service: display
// name, a day-plus-month date, and a markdown link to the service page.
func FormatNotification(service model.Service, date time.Time) string {
	return fmt.Sprintf(
		"There are slots on %s available for booking for %s, click [here](%s) to check it out",
		date.Format("02 January"), service.Name, service.URL,
	)
}

// FormatCatalog lists every available service as "id - name" lines.
func FormatCatalog(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("Available services:\n")
	for _, s := range cat.All() {
		fmt.Fprintf(&b, "%d - %s\n", s.ID, s.Name)
	}
	return b.String()
}

// FormatMyServices lists the subscriber's services with their display names.
func FormatMyServices(cat *catalog.Catalog, serviceIDs []int64) string {
	if len(serviceIDs) == 0 {
		return "The following services are on your list:\n - (none)"
	}
	var b strings.Builder
	b.WriteString("The following services are on your list:\n")
	for _, id := range serviceIDs {
		if s, ok := cat.Lookup(id); ok {
			fmt.Fprintf(&b, " - %d %s\n", id, s.Name)
		} else {
			fmt.Fprintf(&b, " - %d\n", id)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
