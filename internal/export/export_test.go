package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/quarkonium/internal/storage"
)

func sampleTable() *storage.Table {
	return &storage.Table{
		R:      []float64{0, 1, 2, 3},
		Labels: []string{"n=1, l=0", "n=2, l=0"},
		U: [][]float64{
			{0, 0.8, 0.4, 0.1},
			{0, 0.5, -0.5, 0.2},
		},
	}
}

func TestTableToSVG(t *testing.T) {
	svg := TableToSVG(sampleTable(), 400, 200)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 2, strings.Count(svg, "<path"))
	assert.Contains(t, svg, Palette[0])
	assert.Contains(t, svg, Palette[1])
	assert.Contains(t, svg, "n=2, l=0")
}

func TestTableToSVGEmpty(t *testing.T) {
	assert.Empty(t, TableToSVG(nil, 100, 100))
	assert.Empty(t, TableToSVG(&storage.Table{R: []float64{0}}, 100, 100))
}

func TestWriteJSON(t *testing.T) {
	meta := &storage.RunMetadata{ID: "charmonium_1", Slope: 0.195}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, meta, sampleTable()))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "charmonium_1", doc.Run.ID)
	assert.Equal(t, []float64{0, 1, 2, 3}, doc.R)
	require.Len(t, doc.States, 2)
	assert.Equal(t, "n=2, l=0", doc.States[1].Label)
	assert.Equal(t, -0.5, doc.States[1].U[2])
}

func TestWriteJSONMismatchedLabels(t *testing.T) {
	table := sampleTable()
	table.Labels = table.Labels[:1]

	assert.Error(t, WriteJSON(&bytes.Buffer{}, &storage.RunMetadata{}, table))
}

func TestWritePlotPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, sampleTable(), "charmonium", "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWritePlotSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, sampleTable(), "charmonium", "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestWritePlotUnknownFormat(t *testing.T) {
	assert.Error(t, WritePlot(&bytes.Buffer{}, sampleTable(), "x", "bmp"))
}
