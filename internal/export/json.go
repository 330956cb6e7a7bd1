package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/quarkonium/internal/storage"
)

type Document struct {
	Run    *storage.RunMetadata `json:"run"`
	R      []float64            `json:"r"`
	States []Series             `json:"states"`
}

type Series struct {
	Label string    `json:"label"`
	U     []float64 `json:"u"`
}

func NewDocument(meta *storage.RunMetadata, t *storage.Table) (*Document, error) {
	if len(t.Labels) != len(t.U) {
		return nil, fmt.Errorf("export: %d labels for %d columns", len(t.Labels), len(t.U))
	}
	doc := &Document{Run: meta, R: t.R}
	for i, u := range t.U {
		doc.States = append(doc.States, Series{Label: t.Labels[i], U: u})
	}
	return doc, nil
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, t *storage.Table) error {
	doc, err := NewDocument(meta, t)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
