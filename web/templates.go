package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/session"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"minutes":  ui.FormatMinutes,
		"isActive": func(p session.Phase) bool { return p == session.PhaseActive },
		"isDone":   func(p session.Phase) bool { return p == session.PhaseFinished },
		"add1":     func(i int) int { return i + 1 },
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  {{if isActive .View.Phase}}<meta http-equiv="refresh" content="{{.Refresh}}">{{end}}
  <title>{{if isActive .View.Phase}}{{.View.Countdown}} · {{end}}Contest</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
      display: flex;
      align-items: baseline;
      gap: 24px;
    }
    header h1 {
      margin: 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    .countdown {
      font-family: "Menlo", monospace;
      font-size: 28px;
      font-weight: 600;
    }
    .countdown.urgent {
      color: #b42318;
    }
    main {
      padding: 24px;
      max-width: 880px;
    }
    .summary {
      display: flex;
      gap: 32px;
      margin-bottom: 20px;
    }
    .summary strong {
      display: block;
      font-size: 22px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      background: rgba(255, 255, 255, 0.8);
    }
    th, td {
      text-align: left;
      padding: 10px 12px;
      border-bottom: 1px solid #e4dccf;
    }
    .Easy { color: #1f7a3a; }
    .Medium { color: #a36a00; }
    .Hard { color: #b42318; }
    .solved { font-weight: 600; color: #1f7a3a; }
    .muted { color: #7b7065; }
    .error {
      padding: 10px 12px;
      border: 1px solid #e6b8b3;
      background: #fbeeed;
      margin-bottom: 16px;
    }
  </style>
</head>
<body>
  <header>
    <h1>Contest</h1>
    {{if isActive .View.Phase}}
    <span class="countdown{{if .View.Urgent}} urgent{{end}}">{{.View.Countdown}}</span>
    {{else if isDone .View.Phase}}
    <span class="countdown">Finished</span>
    {{end}}
    {{if .View.Username}}<span class="muted">{{.View.Username}} · {{.View.Mode}}</span>{{end}}
  </header>
  <main>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
    {{if not .View.Rows}}
    <p class="muted">No contest in progress. Start one with <code>contest start</code>.</p>
    {{else}}
    <section class="summary">
      <div>Score<strong>{{.View.ScoreLine}}</strong></div>
      <div>Solved<strong>{{.View.Solved}}/{{len .View.Rows}}</strong></div>
      <div>Effective time<strong>{{.View.EffectiveTime}} min</strong></div>
      {{if .View.Verdict}}<div>Verdict<strong>{{.View.Verdict}}</strong></div>{{end}}
    </section>
    <table>
      <thead>
        <tr><th>#</th><th>Problem</th><th>Difficulty</th><th>Points</th><th>Time</th><th>Fails</th></tr>
      </thead>
      <tbody>
        {{range $i, $row := .View.Rows}}
        <tr>
          <td>{{add1 $i}}</td>
          <td>{{if $row.Solved}}<span class="solved">{{$row.Title}}</span>{{else}}<a href="{{$row.URL}}" target="_blank" rel="noopener">{{$row.Title}}</a>{{end}}</td>
          <td class="{{$row.Difficulty}}">{{$row.Difficulty}}</td>
          <td>{{$row.Earned}}/{{$row.Points}}</td>
          <td>{{minutes $row.TimeTaken $row.Solved}}</td>
          <td>{{$row.Fails}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{end}}
  </main>
</body>
</html>
`
