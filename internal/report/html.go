package report

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/oldphoto/internal/domain"
)

const pageSkeleton = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title></title></head>
<body>
<h1></h1>
<dl class="run"></dl>
<table class="workers">
<thead><tr><th>worker</th><th>partition</th><th>seconds</th><th>processed</th><th>skipped</th><th>failed</th></tr></thead>
<tbody></tbody>
</table>
</body>
</html>`

// HTML 渲染一个自包含的计时页面。
//
// 页面结构是固定骨架，数据通过 goquery 填入；所有文本都经过转义。
func HTML(tr domain.TimingReport) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageSkeleton))
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("oldphoto timing: %d threads, order by %s", tr.Threads, tr.Order)
	doc.Find("title").SetText(title)
	doc.Find("h1").SetText(title)

	var run strings.Builder
	for _, kv := range [][2]string{
		{"started", tr.StartedAt.UTC().Format(time.RFC3339)},
		{"output", tr.OutputDir},
		{"files", fmt.Sprint(tr.Files)},
		{"total", Seconds(tr.Total)},
		{"ordering", Seconds(tr.Ordering)},
		{"parallel", Seconds(tr.Parallel)},
		{"processed", fmt.Sprint(tr.Summary.Processed)},
		{"skipped", fmt.Sprint(tr.Summary.Skipped)},
		{"failed", fmt.Sprint(tr.Summary.Failed)},
	} {
		fmt.Fprintf(&run, `<dt>%s</dt><dd data-key="%s">%s</dd>`, kv[0], kv[0], html.EscapeString(kv[1]))
	}
	doc.Find("dl.run").SetHtml(run.String())

	body := doc.Find("table.workers tbody")
	for _, w := range tr.Workers {
		body.AppendHtml(fmt.Sprintf(
			`<tr data-worker="%d"><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			w.Ordinal, w.Ordinal, html.EscapeString(w.Part.String()), Seconds(w.Elapsed), w.Processed, w.Skipped, w.Failed,
		))
	}

	out, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace([]byte(out)), nil
}

func joinPath(dir, name string) string { return filepath.Join(dir, name) }
