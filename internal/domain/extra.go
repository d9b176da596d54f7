package domain

import (
	"encoding/json"
	"fmt"
)

// Extra holds JSON attributes an entity carries that this schema does not know
// about. They are preserved verbatim so documents written by newer clients
// survive a round trip through older ones.
type Extra map[string]json.RawMessage

// Clone returns an independent copy of the extra attributes.
func (e Extra) Clone() Extra {
	if len(e) == 0 {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		raw := make(json.RawMessage, len(v))
		copy(raw, v)
		out[k] = raw
	}
	return out
}

// decodeExtra collects the attributes of data that are not listed in known.
func decodeExtra(data []byte, known ...string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// encodeExtra marshals v and merges the extra attributes into the resulting
// object. Known attributes always win over extras with the same name.
func encodeExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to merge attributes: %w", err)
	}
	for k, raw := range extra {
		if _, exists := all[k]; !exists {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}
