package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"sort"

	"github.com/ffodds/season-projector/internal/domain"
)

// HTMLFormatter renders a report as a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":      FormatPercentage,
	"pts":      FormatPoints,
	"record":   FormatRecord,
	"add":      func(i, j int) int { return i + j },
	"rowClass": standingsClass,
}).Parse(htmlTemplateSource))

// standingsClass marks rows holding a playoff spot.
func standingsClass(row domain.StandingRow) string {
	if row.InPlayoffs {
		return "in"
	}
	return "out"
}

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	data := struct {
		*Report
		Names     map[int]string
		TeamIDs   []int
		Divisions []int
	}{Report: r, Names: reportTeamNames(r)}

	for id := range data.Names {
		data.TeamIDs = append(data.TeamIDs, id)
	}
	sort.Ints(data.TeamIDs)
	for id := range r.Divisions {
		data.Divisions = append(data.Divisions, id)
	}
	sort.Ints(data.Divisions)

	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// reportTeamNames collects team names from whichever sections are present.
func reportTeamNames(r *Report) map[int]string {
	names := make(map[int]string)
	for _, row := range r.Standings {
		names[row.TeamID] = row.Name
	}
	if r.Projection != nil {
		for _, row := range r.Projection.PlayoffOdds {
			names[row.TeamID] = row.Name
		}
	}
	if r.Swing != nil {
		for _, ts := range r.Swing.Teams {
			names[ts.TeamID] = ts.Name
		}
	}
	for _, row := range r.Schedule {
		names[row.TeamID] = row.Name
	}
	return names
}
