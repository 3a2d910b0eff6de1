package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	"swnations/database"
	"swnations/nations"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/rankings.html"))

type tab struct {
	View    nations.View
	Title   string
	Active  bool
	Records []nations.DisplayRecord
}

type pageData struct {
	Active   nations.View
	Tabs     []tab
	Count    int
	LoadedAt time.Time
}

// Renders the rankings page for snap with the active view's tab selected.
// Every view is ranked again from the snapshot, nothing is carried over between renders.
func RenderPage(w io.Writer, snap *database.Snapshot, active nations.View) error {
	data := pageData{
		Active:   active,
		Count:    snap.Count(),
		LoadedAt: snap.LoadedAt,
	}

	for _, v := range nations.Views() {
		data.Tabs = append(data.Tabs, tab{
			View:    v,
			Title:   v.Title(),
			Active:  v == active,
			Records: nations.RankView(snap.Nations, v),
		})
	}

	// Render fully before writing so a template error never leaves a half-written page.
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
