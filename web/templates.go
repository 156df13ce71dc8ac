package web

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{ .SystemName }} - Status</title>
{{- if .Board.Pending }}
<meta http-equiv="refresh" content="2">
{{- end }}
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/css/bootstrap.min.css">
<style>
.incident-update{border-left:2px solid #dee2e6;padding-left:8px;margin-top:8px}
.update-status{font-weight:600;margin-bottom:2px}
.loading{color:#6c757d;font-style:italic}
</style>
</head>
<body>
<div class="container mt-4">
  <h1 class="h4 mb-3">{{ .SystemName }}</h1>

  <form method="post" action="/filter" class="mb-2">
  {{- range .Categories }}
    <div class="form-check form-check-inline">
      <input class="form-check-input" type="radio" name="category" id="filter-{{ . }}" value="{{ . }}"
        {{- if eq . $.Board.Category }} checked{{ end }} onchange="this.form.submit()">
      <label class="form-check-label" for="filter-{{ . }}">{{ .Title }}</label>
    </div>
  {{- end }}
    <noscript><button type="submit" class="btn btn-sm btn-secondary">Apply</button></noscript>
  </form>

  <form method="post" action="/search" class="form-inline mb-4">
    <input type="text" class="form-control mr-2" id="search-box" name="q" value="{{ .Board.SearchText }}" placeholder="Search by name">
    <button type="submit" class="btn btn-primary" id="search-button">Search</button>
  </form>

  {{- if .Board.Pending }}
  <p class="loading">Loading...</p>
  {{- end }}

  <div class="row" id="status-container">{{ .Board.Content }}</div>
</div>
</body>
</html>
`
