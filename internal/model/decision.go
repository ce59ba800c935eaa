package model

import (
	"bytes"
	"encoding/json"
)

// Decision is the model's choice of tool and the input to run it with.
type Decision struct {
	ToolChoice string `json:"tool_choice"`
	ToolInput  string `json:"tool_input"`
}

// UnmarshalJSON accepts a tool_input of any JSON type. Non-string values are
// kept as compact JSON text so that tools always receive a string.
func (d *Decision) UnmarshalJSON(b []byte) error {
	var raw struct {
		ToolChoice string          `json:"tool_choice"`
		ToolInput  json.RawMessage `json:"tool_input"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	d.ToolChoice = raw.ToolChoice
	d.ToolInput = ""

	in := bytes.TrimSpace(raw.ToolInput)
	switch {
	case len(in) == 0 || bytes.Equal(in, []byte("null")):
	case in[0] == '"':
		return json.Unmarshal(in, &d.ToolInput)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, in); err != nil {
			return err
		}
		d.ToolInput = buf.String()
	}
	return nil
}
