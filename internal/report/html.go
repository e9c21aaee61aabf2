package report

import (
	"bytes"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/types"
)

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>dbmapper report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
.meta { color: #666; margin-bottom: 1em; }
.evidence pre { margin: 0; padding: 4px; background: #272822; overflow-x: auto; }
.flagged { opacity: 0.6; }
</style>
</head>
<body>
<h1>Database artifact report</h1>
<p class="meta">
run {{.RunID}}{{if .Repo.Remote}} · {{.Repo.Remote}}{{end}}{{if .Repo.Branch}} @ {{.Repo.Branch}}{{end}}
· {{.FilesScanned}} files scanned · {{len .Findings}} findings
</p>
<table>
<tr><th>ID</th><th>Type</th><th>Location</th><th>Confidence</th><th>Evidence</th><th>Description</th></tr>
{{range .Findings}}
<tr{{if .Flagged}} class="flagged"{{end}}>
<td>{{.ID}}</td>
<td>{{.Type}}</td>
<td>{{.Path}}:{{.Line}}</td>
<td>{{printf "%.2f" .Confidence}}</td>
<td class="evidence">{{.EvidenceHTML}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

type htmlFinding struct {
	types.Finding
	EvidenceHTML template.HTML
}

type htmlData struct {
	Envelope
	Findings []htmlFinding
}

// WriteHTML renders the result as a standalone HTML page with
// syntax-highlighted evidence snippets.
func WriteHTML(w io.Writer, res engine.Result) error {
	env := NewEnvelope(res)
	data := htmlData{Envelope: env}
	for _, f := range env.Findings {
		data.Findings = append(data.Findings, htmlFinding{
			Finding:      f,
			EvidenceHTML: highlightEvidence(f),
		})
	}
	return htmlReport.Execute(w, data)
}

// highlightEvidence runs the finding's evidence through a lexer picked
// from its file name. Highlighting failures fall back to escaped text.
func highlightEvidence(f types.Finding) template.HTML {
	code := strings.Join(f.Evidence, "\n")
	if code == "" {
		return ""
	}

	lexer := lexers.Match(filepath.Base(f.Path))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("html")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return escapePre(code)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return escapePre(code)
	}
	return template.HTML(buf.String())
}

func escapePre(code string) template.HTML {
	return template.HTML("<pre>" + template.HTMLEscapeString(code) + "</pre>")
}
