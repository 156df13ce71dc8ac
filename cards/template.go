package cards

import (
	"bytes"
	"html/template"
)

// CardTemplate renders one category: Card runs once per record, Empty when
// the list has no records.
type CardTemplate struct {
	Card  string `json:"card" yaml:"card"`
	Empty string `json:"empty" yaml:"empty"`

	cardTpl  *template.Template
	emptyTpl *template.Template
}

func (t *CardTemplate) SetDefault(d CardTemplate) {
	if len(t.Card) == 0 {
		t.Card = d.Card
	}
	if len(t.Empty) == 0 {
		t.Empty = d.Empty
	}
}

func (t *CardTemplate) Compile(funcs template.FuncMap) error {
	var err error

	t.cardTpl, err = compileTemplate("card", t.Card, funcs)
	if err == nil {
		t.emptyTpl, err = compileTemplate("empty", t.Empty, funcs)
	}

	return err
}

// Exec renders one card per record into buf, or the placeholder when records is empty.
func (t *CardTemplate) Exec(buf *bytes.Buffer, records []interface{}, placeholder string) error {
	if len(records) == 0 {
		return t.emptyTpl.Execute(buf, placeholder)
	}

	for _, record := range records {
		if err := t.cardTpl.Execute(buf, record); err != nil {
			return err
		}
	}

	return nil
}

func compileTemplate(name, text string, funcs template.FuncMap) (*template.Template, error) {
	tpl, err := template.New(name).Funcs(funcs).Parse(updatesPartial)
	if err != nil {
		return nil, err
	}

	return tpl.Parse(text)
}
