package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseObject cleans an LLM response and unmarshals the embedded JSON object.
// It tolerates surrounding markdown fences and extra prose by slicing from
// the first '{' to the last '}'.
func parseObject(response string) (map[string]json.RawMessage, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return parsed, nil
}

// candidates coerces one attribute value into an ordered candidate list.
// Providers answer with a string most of the time, an array when the source
// text is ambiguous, and occasionally a bare number.
func candidates(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			for _, c := range candidates(item) {
				out = append(out, c)
			}
		}
		return out
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return []string{strconv.FormatFloat(n, 'f', -1, 64)}
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return []string{strconv.FormatBool(b)}
	}

	// null or a nested object: no usable candidate
	return nil
}
