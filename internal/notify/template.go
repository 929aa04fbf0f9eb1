package notify

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/nikolayk812/subsync/internal/domain"
)

//go:embed templates/summary.tmpl
var templatesFS embed.FS

var issueTitles = map[domain.SummaryIssueKind]string{
	domain.SummaryIssueComplete:   "Already complete",
	domain.SummaryIssueProcessing: "Still processing",
	domain.SummaryIssueFailure:    "Failed",
	domain.SummaryIssueChanges:    "Placed with unavailable items removed",
	domain.SummaryIssueEmpty:      "Skipped, no items available",
}

// Engine renders the subject and body of a shop summary.
type Engine struct {
	tmpl *template.Template
}

func NewEngine() (*Engine, error) {
	tmpl, err := template.New("summary").
		Funcs(template.FuncMap{"issueTitle": issueTitle}).
		ParseFS(templatesFS, "templates/summary.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Engine{tmpl: tmpl}, nil
}

type summaryData struct {
	Kind    domain.SummaryKind
	Summary domain.ShopSummary
	Issues  map[domain.SummaryIssueKind][]domain.SummaryIssue
}

func (e *Engine) Render(kind domain.SummaryKind, summary domain.ShopSummary) (subject, body string, err error) {
	data := summaryData{
		Kind:    kind,
		Summary: summary,
		Issues:  make(map[domain.SummaryIssueKind][]domain.SummaryIssue),
	}
	for _, issue := range summary.Issues {
		data.Issues[issue.Kind] = append(data.Issues[issue.Kind], issue)
	}

	subject, err = e.execute("subject", data)
	if err != nil {
		return "", "", err
	}

	body, err = e.execute("body", data)
	if err != nil {
		return "", "", err
	}

	return subject, body, nil
}

func (e *Engine) execute(name string, data summaryData) (string, error) {
	var sb strings.Builder

	if err := e.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("tmpl.ExecuteTemplate[%s]: %w", name, err)
	}

	return sb.String(), nil
}

func issueTitle(kind domain.SummaryIssueKind) string {
	if title, ok := issueTitles[kind]; ok {
		return title
	}
	return string(kind)
}
