// Package envelope unwraps the backend's inconsistent response wrappers.
//
// The API returns the same logical payload under different shapes depending on
// the endpoint: {"data": [...]}, {"data": {"users": [...]}}, a bare array, or
// {"users": [...]}. Resolve probes a fixed priority list and takes the first
// non-null object or array, so every façade sees one canonical payload no
// matter which envelope the endpoint picked.
package envelope

import (
	"bytes"
	"encoding/json"

	dErrors "kampomido/pkg/domain-errors"
)

// Resolve returns the actual payload inside body for the named resource.
// Probe order, by contract: data.data, data.<resource>, data, <resource>,
// then the body itself. The order is a fixed priority list, not reflection;
// changing it changes which payload wins for ambiguous envelopes.
func Resolve(body []byte, resource string) (json.RawMessage, error) {
	root := json.RawMessage(body)
	if !isPayload(root) {
		return nil, dErrors.New(dErrors.CodeDecode, "response body is not an object or array")
	}

	if fields, ok := objectFields(root); ok {
		if data, ok := fields["data"]; ok && isPayload(data) {
			if inner, ok := objectFields(data); ok {
				if nested, ok := inner["data"]; ok && isPayload(nested) {
					return nested, nil
				}
				if named, ok := inner[resource]; ok && isPayload(named) {
					return named, nil
				}
			}
			return data, nil
		}
		if named, ok := fields[resource]; ok && isPayload(named) {
			return named, nil
		}
	}

	return root, nil
}

// List resolves body and decodes the payload as a slice of T. A single object
// payload decodes as a one-element list, matching how detail endpoints are
// sometimes fed into list pages.
func List[T any](body []byte, resource string) ([]T, error) {
	payload, err := Resolve(body, resource)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one T
		if err := json.Unmarshal(payload, &one); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeDecode, "decode "+resource+" record")
		}
		return []T{one}, nil
	}

	var list []T
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecode, "decode "+resource+" list")
	}
	return list, nil
}

// One resolves body and decodes the payload as a single T.
func One[T any](body []byte, resource string) (T, error) {
	var out T
	payload, err := Resolve(body, resource)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, dErrors.Wrap(err, dErrors.CodeDecode, "decode "+resource)
	}
	return out, nil
}

// isPayload reports whether raw is a non-null JSON object or array.
func isPayload(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

// objectFields returns raw's top-level fields when raw is a JSON object.
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}
