// Package templates renders the alert emails embedded in the binary.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

//go:embed *.html *.txt
var files embed.FS

type pair struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// Renderer holds every embedded template, keyed by name. Each name has an
// HTML body and a plain-text alternative.
type Renderer struct {
	byName map[string]pair
}

// Body is a rendered email body.
type Body struct {
	HTML string
	Text string
}

// NewRenderer parses the embedded templates. A template missing either of
// its two bodies is an error.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(files, "*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{byName: make(map[string]pair, len(names))}
	for _, file := range names {
		name := strings.TrimSuffix(file, path.Ext(file))

		html, err := htmltemplate.ParseFS(files, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		text, err := texttemplate.ParseFS(files, name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parse %s.txt: %w", name, err)
		}
		r.byName[name] = pair{html: html, text: text}
	}
	return r, nil
}

// Render executes both bodies of the named template.
func (r *Renderer) Render(name string, data any) (Body, error) {
	tmpl, ok := r.byName[name]
	if !ok {
		return Body{}, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, fmt.Errorf("template %q", name))
	}

	var html, text bytes.Buffer
	if err := tmpl.html.Execute(&html, data); err != nil {
		return Body{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := tmpl.text.Execute(&text, data); err != nil {
		return Body{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Body{HTML: html.String(), Text: text.String()}, nil
}

// LimitExceeded is the data of the budget_limit_exceeded template.
type LimitExceeded struct {
	UserName     string
	BudgetTitle  string
	TypeOfBudget string
	Limit        string
	Spent        string
	Overspent    string
	BudgetURL    string
}

// NewLimitExceeded formats email's alert for display. Amounts always carry
// two decimals.
func NewLimitExceeded(email *entity.AlertEmail, appBaseURL string) LimitExceeded {
	alert := email.Alert
	return LimitExceeded{
		UserName:     email.ToName,
		BudgetTitle:  alert.BudgetTitle,
		TypeOfBudget: strings.ToLower(strings.ReplaceAll(string(alert.TypeOfBudget), "_", "-")),
		Limit:        alert.Limit.StringFixed(2),
		Spent:        alert.Spent.StringFixed(2),
		Overspent:    alert.Overspent().StringFixed(2),
		BudgetURL:    strings.TrimRight(appBaseURL, "/") + "/budgets/" + alert.BudgetID,
	}
}
