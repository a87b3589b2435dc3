package display

import (
	"encoding/json"
)

// MarshalJSON pretty-prints v for humans. Under LANGKIT_OUTPUT=json the
// output is compact, one document per line, for piping into other tools.
func MarshalJSON(v interface{}) ([]byte, error) {
	if envWantsJSON() {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
