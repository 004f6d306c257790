// Package catalog holds the static mapping of Berlin service ids to their
// display names and information pages. The catalog is built once at startup
// and never mutated.
package catalog

import (
	"fmt"
	"sort"

	"burgerbot/internal/model"
)

var serviceNames = map[int64]string{
	120335: "Abmeldung einer Wohnung",
	120686: "Anmeldung",
	120701: "Personalausweis beantragen",
	120702: "Meldebescheinigung beantragen",
	120703: "Reisepass beantragen",
	120914: "Zulassung eines Fahrzeuges mit auswärtigem Kennzeichen mit Halterwechsel",
	121469: "Kinderreisepass beantragen / verlängern / aktualisieren",
	121598: "Fahrerlaubnis - Umschreibung einer ausländischen Fahrerlaubnis aus einem EU-/EWR-Staat",
	121627: "Fahrerlaubnis - Ersterteilung beantragen",
	121701: "Beglaubigung von Kopien",
	121921: "Gewerbeanmeldung",
	318998: "Einbürgerung - Verleihung der deutschen Staatsangehörigkeit beantragen",
	324280: "Niederlassungserlaubnis oder Erlaubnis",
	326798: "Blaue Karte EU auf einen neuen Pass übertragen",
	327537: "Fahrerlaubnis - Umschreibung einer ausländischen",
}

// Catalog is an immutable lookup table of services.
type Catalog struct {
	byID map[int64]model.Service
}

// New builds the default Berlin service catalog.
func New() *Catalog {
	return FromServices(defaultServices())
}

// FromServices builds a catalog from an explicit service list (useful for
// testing with a small fixed set).
func FromServices(services []model.Service) *Catalog {
	byID := make(map[int64]model.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	return &Catalog{byID: byID}
}

// Lookup returns the service for the given id.
func (c *Catalog) Lookup(id int64) (model.Service, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Contains reports whether the id is a known service.
func (c *Catalog) Contains(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every service sorted by id.
func (c *Catalog) All() []model.Service {
	out := make([]model.Service, 0, len(c.byID))
	for _, s := range c.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func defaultServices() []model.Service {
	services := make([]model.Service, 0, len(serviceNames))
	for id, name := range serviceNames {
		services = append(services, model.Service{
			ID:   id,
			Name: name,
			URL:  fmt.Sprintf("https://service.berlin.de/dienstleistung/%d/", id),
		})
	}
	return services
}
