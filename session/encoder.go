package session

import (
	"encoding/json"

	"github.com/MrEthical07/goGuard/permission"
)

// encodePermissions serializes a permission set to the JSON array layout the
// permissions slot uses.
func encodePermissions(s permission.Set) (string, error) {
	data, err := json.Marshal(s.Keys())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodePermissions parses the permissions slot. Any malformed payload
// decodes to the empty set: authorization must fail closed, never crash the
// caller.
func decodePermissions(raw string) permission.Set {
	if raw == "" {
		return permission.Set{}
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err == nil {
		return permission.NewSet(keys)
	}

	// Older deployments stored the endpoint payload directly, which may be
	// a list of {key: ...} objects.
	var raws []any
	if err := json.Unmarshal([]byte(raw), &raws); err == nil {
		return permission.NewSet(permission.Normalize(raws))
	}

	return permission.Set{}
}
