package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gratitude/cmd/internal/contract"
)

func TestRenderIndex_EscapesContent(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	view := &contract.IndexView{
		Entries: []*contract.GratitudeResponse{
			{ID: 7, Content: "<script>alert(1)</script>", CreatedAt: "2024-05-01"},
		},
		TotalEntries: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, IndexTemplate, view, nil))

	html := buf.String()
	assert.Contains(t, html, `<span id="total-entries">1</span>`)
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, `href="/delete/7"`)
	assert.Contains(t, html, `href="/update/7"`)
}

func TestRenderIndex_Empty(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, IndexTemplate, &contract.IndexView{}, nil))
	assert.Contains(t, buf.String(), "No entries yet")
}

func TestRenderUpdate_Prefilled(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	view := &contract.UpdateView{
		Entry: &contract.GratitudeResponse{ID: 3, Content: `tea "and" cake`},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, UpdateTemplate, view, nil))
	assert.Contains(t, buf.String(), `action="/update/3"`)
	assert.Contains(t, buf.String(), `value="tea &#34;and&#34; cake"`)
}
