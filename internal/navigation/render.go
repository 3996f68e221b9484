// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// shellTemplate is the HTML document the browser application boots from.
const shellTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Loading}}
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
{{- end}}
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.AssetBase}}/app.css">
</head>
<body>
{{- if .Loading}}
<div id="root" data-outcome="loading" aria-busy="true">Loading…</div>
{{- else}}
<div id="root" data-outcome="render" data-page="{{.Page}}" data-params="{{.Params}}"></div>
<script type="module" src="{{.AssetBase}}/app.js"></script>
{{- end}}
</body>
</html>
`

// Renderer writes the page shell and the loading placeholder.
type Renderer struct {
	shell     *template.Template
	title     string
	assetBase string
	retry     time.Duration
}

type shellData struct {
	Title          string
	AssetBase      string
	Loading        bool
	RefreshSeconds int
	Page           string
	Params         string
}

// NewRenderer parses the shell. retry is how soon a loading placeholder reloads.
func NewRenderer(title, assetBase string, retry time.Duration) *Renderer {
	return &Renderer{
		shell:     template.Must(template.New("shell").Parse(shellTemplate)),
		title:     title,
		assetBase: assetBase,
		retry:     retry,
	}
}

// Page writes the shell for a render decision.
func (renderer *Renderer) Page(writer http.ResponseWriter, decision Decision) error {
	params := "{}"
	if len(decision.Params) > 0 {
		encoded, err := json.Marshal(decision.Params)
		if err != nil {
			return err
		}
		params = string(encoded)
	}

	return renderer.write(writer, http.StatusOK, shellData{
		Title:     renderer.title,
		AssetBase: renderer.assetBase,
		Page:      decision.Page,
		Params:    params,
	})
}

// Loading writes the placeholder and asks the browser to retry shortly.
func (renderer *Renderer) Loading(writer http.ResponseWriter) error {
	seconds := int(renderer.retry / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	writer.Header().Set(constants.HeaderRefresh, strconv.Itoa(seconds))

	return renderer.write(writer, http.StatusOK, shellData{
		Title:          renderer.title,
		AssetBase:      renderer.assetBase,
		Loading:        true,
		RefreshSeconds: seconds,
	})
}

func (renderer *Renderer) write(writer http.ResponseWriter, status int, data shellData) error {
	var buffer bytes.Buffer
	if err := renderer.shell.Execute(&buffer, data); err != nil {
		return err
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, err := buffer.WriteTo(writer)
	return err
}
