package surface

import (
	"encoding/json"
	"io"

	"github.com/talentscope/talentscope/pkg/matching"
)

// JSONRenderer marshals the ResultTable to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, table *matching.ResultTable) error {
	return r.RenderValue(w, table)
}

// RenderValue marshals any value the same way, for partial views of a run.
func (r *JSONRenderer) RenderValue(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
