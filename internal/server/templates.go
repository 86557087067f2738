package server

// ── Base layout ─────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Solana DeFi Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
nav a{color:#8b949e;padding:4px 8px;border-radius:4px}
nav a:hover{color:#c9d1d9;background:#21262d;text-decoration:none}
nav a.active{background:#1f6feb;color:#fff}
nav .stamp{margin-left:auto;font-size:11px;color:#8b949e}
main{padding:16px}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:12px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:140px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
.card .src{font-size:10px;color:#f59e0b}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
tr:hover td{background:#161b22}
.warn-banner{background:#3d2c00;border:1px solid #9e6a03;color:#f59e0b;border-radius:6px;padding:8px 12px;margin-bottom:12px;font-size:12px}
.err-banner{background:#3d0c00;border:1px solid #f85149;color:#f87171;border-radius:6px;padding:12px 16px;margin-bottom:12px}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117}
.charts{display:flex;gap:16px;flex-wrap:wrap;margin-bottom:16px}
.charts img{max-width:100%;border:1px solid #30363d;border-radius:6px;background:#fff}
.filters{display:flex;gap:8px;flex-wrap:wrap;align-items:center;margin-bottom:12px;background:#161b22;padding:8px 12px;border-radius:6px;border:1px solid #30363d}
.filters label{font-size:11px;color:#8b949e}
.filters select,.filters input{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:3px 6px;font-size:12px;font-family:inherit}
.filters button{background:#1f6feb;border:none;color:#fff;padding:4px 12px;border-radius:4px;cursor:pointer;font-size:12px}
.dim{color:#8b949e}
</style>
</head>
<body>
<nav>
  <span class="brand">◎ Solana DeFi</span>
  {{range .Tabs}}<a href="/tab/{{.Slug}}" {{if eq .Slug $.Active}}class="active"{{end}}>{{.Title}}</a>{{end}}
  <span class="stamp">{{if not .LastUpdated.IsZero}}updated {{.LastUpdated.Format "2006-01-02 15:04 MST"}}{{end}}</span>
</nav>
<main>
{{template "content" .}}
</main>
</body>
</html>{{end}}`

// ── Tab page ────────────────────────────────────────────────────────────

const tmplTab = `
{{define "content"}}
<h1>{{.Model.Title}}</h1>

{{range .Model.Warnings}}<div class="warn-banner">⚠ {{.}}</div>{{end}}

<form class="filters" method="get" action="/tab/{{.Model.Slug}}">
  {{if .Model.Tokens}}
  <label>Token</label>
  <select name="token" onchange="this.form.submit()">
    {{range .Model.Tokens}}<option value="{{.}}" {{if eq . $.Model.SelectedToken}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  {{if .Model.CategoryOptions}}
  <label>Categories</label>
  <select name="category" multiple size="1">
    {{range .Model.CategoryOptions}}<option value="{{.}}" {{if $.Model.IsSelectedCategory .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  {{if .Model.RangeEnabled}}
  <label>{{.Model.RangeLabel}} min</label><input type="number" step="any" name="min" value="{{.MinValue}}">
  <label>max</label><input type="number" step="any" name="max" value="{{.MaxValue}}">
  {{end}}
  <label>Top</label>
  <select name="top">
    <option value="0" {{if eq .Model.TopN 0}}selected{{end}}>All</option>
    {{range .Model.TopNChoices}}<option value="{{.}}" {{if eq . $.Model.TopN}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{if .Model.ThresholdEnabled}}
  <label>{{.Model.ThresholdLabel}}</label><input type="number" step="any" name="threshold" value="{{.ThresholdValue}}">
  {{end}}
  <button type="submit">Apply</button>
  <a href="/tab/{{.Model.Slug}}">Reset</a>
</form>

<div class="cards">
  {{range .Model.KPIs}}
  <div class="card">
    <div class="val">{{.Value}}</div>
    <div class="lbl">{{.Label}}</div>
    {{if .FromSummary}}<div class="src">from summary</div>{{end}}
  </div>
  {{end}}
</div>

{{if .ChartImgs}}
<div class="charts">
  {{range .ChartImgs}}<img src="{{.URL}}" alt="{{.Title}}" width="480">{{end}}
</div>
{{end}}

<div class="section">
  <div class="section-hdr">{{.Model.RowCount}} of {{.Model.TotalCount}} rows</div>
  <table>
    <tr>{{range .Model.Headers}}<th>{{.}}</th>{{end}}</tr>
    {{range .Model.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
    {{if not .Model.Rows}}<tr><td class="dim" colspan="{{len .Model.Headers}}">no rows match the current filters</td></tr>{{end}}
  </table>
</div>
{{end}}`

// ── Error page ──────────────────────────────────────────────────────────

const tmplError = `
{{define "content"}}
<h1>Dashboard unavailable</h1>
<div class="err-banner">{{.Error}}</div>
<p class="dim">The snapshot metadata could not be loaded. Verify the data directory and re-run the collection pipeline.</p>
{{end}}`
