package cards

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/castawaylabs/status-board/feeds"
)

// DefaultDateFormat prints calendar dates the way en-US browsers do.
const DefaultDateFormat = "1/2/2006"

// NotAvailable replaces absent optional values.
const NotAvailable = "N/A"

// Renderer turns feeds into replacement card markup. It is safe for
// concurrent use once built.
type Renderer struct {
	dateFormat string
	templates  map[feeds.Category]*CardTemplate
	text       map[feeds.Category]*texttemplate.Template
}

// NewRenderer compiles the card templates, filling categories missing from
// overrides with the built-in ones.
func NewRenderer(dateFormat string, overrides map[feeds.Category]CardTemplate) (*Renderer, error) {
	if len(dateFormat) == 0 {
		dateFormat = DefaultDateFormat
	}

	r := &Renderer{
		dateFormat: dateFormat,
		templates:  make(map[feeds.Category]*CardTemplate, len(feeds.Categories)),
		text:       make(map[feeds.Category]*texttemplate.Template, len(feeds.Categories)),
	}
	funcs := r.funcs()

	for _, c := range feeds.Categories {
		tpl := overrides[c]
		tpl.SetDefault(defaultTemplate(c))
		if err := tpl.Compile(template.FuncMap(funcs)); err != nil {
			return nil, fmt.Errorf("could not compile %q template: %w", c, err)
		}
		r.templates[c] = &tpl

		text := defaultTextTpl
		if c == feeds.CategorySummary {
			text = defaultSummaryTextTpl
		}
		textTpl, err := texttemplate.New(string(c)).Funcs(texttemplate.FuncMap(funcs)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("could not compile %q text template: %w", c, err)
		}
		r.text[c] = textTpl
	}

	return r, nil
}

// Render produces the full replacement content for the card container.
func (r *Renderer) Render(feed *feeds.Feed) (template.HTML, error) {
	tpl, ok := r.templates[feed.Category]
	if !ok {
		return "", fmt.Errorf("no template for category %q", feed.Category)
	}

	buf := new(bytes.Buffer)
	if err := tpl.Exec(buf, records(feed), Placeholders[feed.Category]); err != nil {
		return "", fmt.Errorf("render %s: %w", feed.Category, err)
	}

	return template.HTML(buf.String()), nil
}

// RenderText produces a plain listing for terminals.
func (r *Renderer) RenderText(feed *feeds.Feed) (string, error) {
	if feed.Len() == 0 {
		return Placeholders[feed.Category] + "\n", nil
	}

	tpl, ok := r.text[feed.Category]
	if !ok {
		return "", fmt.Errorf("no text template for category %q", feed.Category)
	}

	var data interface{}
	switch feed.Category {
	case feeds.CategoryIncidents:
		data = feed.Incidents
	case feeds.CategoryMaintenance:
		data = feed.Maintenances
	default:
		data = feed.Components
	}

	buf := new(bytes.Buffer)
	if err := tpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", feed.Category, err)
	}

	return buf.String(), nil
}

func (r *Renderer) funcs() map[string]interface{} {
	return map[string]interface{}{
		"date": r.formatDate,
		"orNA": orNA,
	}
}

func (r *Renderer) formatDate(ts feeds.Timestamp) string {
	if ts.IsZero() {
		return NotAvailable
	}

	return ts.Local().Format(r.dateFormat)
}

func orNA(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return NotAvailable
	case *string:
		if value == nil || len(*value) == 0 {
			return NotAvailable
		}
		return *value
	case string:
		if len(value) == 0 {
			return NotAvailable
		}
		return value
	default:
		return fmt.Sprint(value)
	}
}

func records(feed *feeds.Feed) []interface{} {
	out := make([]interface{}, 0, feed.Len())
	switch feed.Category {
	case feeds.CategoryIncidents:
		for _, i := range feed.Incidents {
			out = append(out, i)
		}
	case feeds.CategoryMaintenance:
		for _, m := range feed.Maintenances {
			out = append(out, m)
		}
	default:
		for _, c := range feed.Components {
			out = append(out, c)
		}
	}

	return out
}
