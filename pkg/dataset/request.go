package dataset

import (
	"encoding/json"
	"fmt"
)

// Request asks the backend to create one dataset from a data file.
type Request struct {
	Name               string     `json:"name"`
	Filters            []Fragment `json:"filters"`
	Data               int64      `json:"data"`
	LastColumnIsOutput *bool      `json:"last_column_is_output,omitempty"`
}

// Payload is the body of a dataset-creation call: a single request, or the
// two sibling requests produced by a split.
type Payload struct {
	Requests []Request
}

// Split reports whether the payload carries the two halves of a split.
func (p Payload) Split() bool { return len(p.Requests) == 2 }

// MarshalJSON encodes a single request as an object and a split as an array.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch len(p.Requests) {
	case 1:
		return json.Marshal(p.Requests[0])
	case 2:
		return json.Marshal(p.Requests)
	default:
		return nil, fmt.Errorf("dataset: payload must hold 1 or 2 requests, got %d", len(p.Requests))
	}
}

// Record is a dataset as returned by the backend after creation. Filters are
// kept in their wire form.
type Record struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	Filters            []json.RawMessage `json:"filters"`
	LastColumnIsOutput *bool             `json:"last_column_is_output,omitempty"`
}

// DecodeRecords accepts either a single record object or an array of records.
func DecodeRecords(b []byte) ([]Record, error) {
	var many []Record
	if err := json.Unmarshal(b, &many); err == nil {
		return many, nil
	}
	var one Record
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, fmt.Errorf("dataset: decode records: %w", err)
	}
	return []Record{one}, nil
}
