package feeds

import "strings"

// FilterByName keeps the records whose name contains term, ignoring case.
// Order is preserved and an empty term keeps everything.
func FilterByName(feed *Feed, term string) *Feed {
	term = strings.ToLower(term)
	out := &Feed{Category: feed.Category}

	match := func(name string) bool {
		return strings.Contains(strings.ToLower(name), term)
	}

	switch feed.Category {
	case CategoryIncidents:
		out.Incidents = []Incident{}
		for _, i := range feed.Incidents {
			if match(i.Name) {
				out.Incidents = append(out.Incidents, i)
			}
		}
	case CategoryMaintenance:
		out.Maintenances = []ScheduledMaintenance{}
		for _, m := range feed.Maintenances {
			if match(m.Name) {
				out.Maintenances = append(out.Maintenances, m)
			}
		}
	default:
		out.Components = []Component{}
		for _, c := range feed.Components {
			if match(c.Name) {
				out.Components = append(out.Components, c)
			}
		}
	}

	return out
}
