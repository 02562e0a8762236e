package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationResult lists every structural problem found in an import payload.
// Validation is not fail-fast: callers get the complete diagnostic in one
// pass.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

var metadataFields = []string{"version", "createdAt", "totalRecords"}

// ValidateSnapshot structurally validates an untrusted snapshot payload.
// It checks shape only: every collection key must be present and an array,
// and the metadata block must carry its three fields. Referential or
// semantic checks are the restorer's transaction's job.
func ValidateSnapshot(raw []byte) ValidationResult {
	var result ValidationResult

	if len(bytes.TrimSpace(raw)) == 0 {
		result.Errors = append(result.Errors, "payload is empty")
		return result
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("payload is not a JSON object: %v", err))
		return result
	}

	for _, name := range CollectionNames {
		field, ok := payload[name]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("missing collection %q", name))
			continue
		}
		if !isJSONArray(field) {
			result.Errors = append(result.Errors, fmt.Sprintf("collection %q is not an array", name))
		}
	}

	meta, ok := payload["metadata"]
	if !ok {
		result.Errors = append(result.Errors, "missing metadata")
	} else {
		var metaObj map[string]json.RawMessage
		if err := json.Unmarshal(meta, &metaObj); err != nil {
			result.Errors = append(result.Errors, "metadata is not a JSON object")
		} else {
			for _, field := range metadataFields {
				if _, ok := metaObj[field]; !ok {
					result.Errors = append(result.Errors, fmt.Sprintf("metadata is missing %q", field))
				}
			}
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
