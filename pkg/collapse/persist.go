package collapse

import "encoding/json"

// The persisted form of a State is a plain JSON array of path strings,
// e.g. ["", "[0]", "[0].name"]. Order is irrelevant and any array of
// strings is accepted, including paths that refer to no current tree.

// MarshalJSON encodes the state as a sorted JSON array of paths.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Paths())
}

// UnmarshalJSON decodes a JSON array of paths into the state.
func (s *State) UnmarshalJSON(data []byte) error {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return err
	}
	*s = FromPaths(paths)
	return nil
}
