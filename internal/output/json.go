package output

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
)

// WriteJSON encodes any report value as indented JSON. Simulation results
// encode without their raw final-balance distribution (it carries a
// `json:"-"` tag), keeping emitted documents bounded.
func WriteJSON(w io.Writer, v any) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
