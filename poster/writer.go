package poster

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes a in the 2dja layout to w.
func Encode(w io.Writer, a *Array) error {
	return json.NewEncoder(w).Encode(a)
}

// EncodeSingle writes the only page of a in the 2dj layout to w. Arrays
// with more than one page cannot be represented and are rejected with
// ErrUnsupportedMultiPage rather than truncated.
func EncodeSingle(w io.Writer, a *Array) error {
	if len(a.Pages) > 1 {
		return fmt.Errorf("%w (%d pages)", ErrUnsupportedMultiPage, len(a.Pages))
	}
	if len(a.Pages) == 0 {
		return fmt.Errorf("%w (no pages)", ErrMalformedData)
	}
	return json.NewEncoder(w).Encode(&a.Pages[0])
}
