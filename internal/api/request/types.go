package request

import "encoding/json"

// SubmitRequest is the request body for saving keepers
// Players stays raw so a missing or non-array value can be told apart from bad JSON
type SubmitRequest struct {
	Team     string          `json:"team"`
	Players  json.RawMessage `json:"players"`
	Password string          `json:"password"`
}

// PlayerNames decodes Players, returning nil when it is absent, null or not a list of names
func (r SubmitRequest) PlayerNames() []string {
	if len(r.Players) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(r.Players, &names); err != nil {
		return nil
	}
	return names
}

// DecryptRequest is the request body for reading saved keepers
type DecryptRequest struct {
	Team     string `json:"team"`
	Password string `json:"password"`
}
