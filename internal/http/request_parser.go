package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// entryRequest is the wire form of a new ledger entry. Amount arrives as a
// string so clients cannot smuggle float rounding into the ledger.
type entryRequest struct {
	Date        string `json:"date,omitempty"`
	Payer       string `json:"payer"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind,omitempty"`
}

// parseJSONBody decodes a single JSON object into dst, rejecting unknown
// fields and trailing garbage.
func parseJSONBody(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("malformed JSON body: trailing data")
	}
	return nil
}
