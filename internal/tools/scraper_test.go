package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Gophers at Work</title></head>
<body>
<article>
<h1>Gophers at Work</h1>
<p>%s</p>
<p>%s</p>
<script>alert("x")</script>
</article>
</body></html>`

func TestScraperTool_Execute(t *testing.T) {
	para := strings.Repeat("Gophers dig tunnels through the garden all day long. ", 20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		fmt.Fprintf(w, articleHTML, para, para)
	}))
	defer srv.Close()

	out, err := NewScraperTool().Execute(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE: Gophers at Work")
	assert.Contains(t, out, "-- CONTENT --")
	assert.Contains(t, out, "Gophers dig tunnels")
	assert.NotContains(t, out, "<script>")
}

func TestScraperTool_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewScraperTool().Execute(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status code 404")

	out, err := NewScraperTool().Execute(context.Background(), "not a url")
	require.NoError(t, err)
	assert.Contains(t, out, "is not an absolute URL")
}
