package cards

import "github.com/castawaylabs/status-board/feeds"

// Placeholders is the text shown when a category has no records.
var Placeholders = map[feeds.Category]string{
	feeds.CategorySummary:     "No data available for servers",
	feeds.CategoryIncidents:   "No incidents to be reported",
	feeds.CategoryMaintenance: "No scheduled maintenances",
}

// emptyCard receives the category placeholder as its data.
const emptyCard = `
<div class="col-md-12"><p>{{ . }}</p></div>`

// {{ template "updates" .Updates }} is available to every card template.
const updatesPartial = `{{ define "updates" }}{{ range . }}
<div class="incident-update">
  <p class="update-status">Status: {{ .Status }}</p>
  <p class="update-body">{{ .Body }}</p>
</div>{{ end }}{{ end }}`

var defaultSummaryTpl = CardTemplate{
	Card: `
<div class="col-md-4 mb-4">
  <div class="card">
    <div class="card-header bg-dark text-white">
      <h5 class="card-title">{{ .Name }}</h5>
    </div>
    <div class="card-body">
      <p class="card-text">Status: {{ .Status }}</p>
      <p class="card-text">Created At: {{ date .CreatedAt }}</p>
      <p class="card-text">Updated At: {{ date .UpdatedAt }}</p>
      <p class="card-text">Position: {{ .Position }}</p>
      <p class="card-text">Description: {{ orNA .Description }}</p>
      <p class="card-text">Showcase: {{ .Showcase }}</p>
      <p class="card-text">Start Date: {{ date .StartDate }}</p>
      <p class="card-text">Group ID: {{ orNA .GroupID }}</p>
      <p class="card-text">Page ID: {{ orNA .PageID }}</p>
      <p class="card-text">Group: {{ .Group }}</p>
      <p class="card-text">Only Show If Degraded: {{ .OnlyShowIfDegraded }}</p>
    </div>
  </div>
</div>`,
	Empty: emptyCard,
}

var defaultIncidentsTpl = CardTemplate{
	Card: `
<div class="col-md-4 mb-4">
  <div class="card">
    <div class="card-header bg-danger text-white">
      <h5 class="card-title">{{ .Name }}</h5>
    </div>
    <div class="card-body">
      <p class="card-text">Status: {{ .Status }}</p>
      <p class="card-text">Impact: {{ orNA .Impact }}</p>
      {{- template "updates" .Updates }}
    </div>
  </div>
</div>`,
	Empty: emptyCard,
}

var defaultMaintenanceTpl = CardTemplate{
	Card: `
<div class="col-md-4 mb-4">
  <div class="card">
    <div class="card-header bg-warning text-white">
      <h5 class="card-title">{{ .Name }}</h5>
    </div>
    <div class="card-body">
      <p class="card-text">Status: {{ .Status }}</p>
      <p class="card-text">Scheduled: {{ date .ScheduledFor }} - {{ date .ScheduledUntil }}</p>
      {{- template "updates" .Updates }}
    </div>
  </div>
</div>`,
	Empty: emptyCard,
}

func defaultTemplate(c feeds.Category) CardTemplate {
	switch c {
	case feeds.CategoryIncidents:
		return defaultIncidentsTpl
	case feeds.CategoryMaintenance:
		return defaultMaintenanceTpl
	default:
		return defaultSummaryTpl
	}
}

const defaultTextTpl = `{{ range . }}{{ .Name }} [{{ .Status }}]
{{ range .Updates }}  - {{ .Status }}: {{ .Body }}
{{ end }}{{ end }}`

const defaultSummaryTextTpl = `{{ range . }}{{ .Name }} [{{ .Status }}] position {{ .Position }}, updated {{ date .UpdatedAt }}
  {{ orNA .Description }}
{{ end }}`
