package vdxf

import (
	"bytes"
	"encoding/json"

	"github.com/iotaledger/hive.go/ierrors"
)

type jsonMember struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject returns the members of a json object in document
// order, which a map would lose.
func decodeOrderedObject(data []byte) ([]jsonMember, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, ierrors.Wrapf(ErrInvalidJSON, "%v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ierrors.Wrapf(ErrInvalidJSON, "expected an object, got %v", tok)
	}
	var members []jsonMember
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, ierrors.Wrapf(ErrInvalidJSON, "%v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ierrors.Wrapf(ErrInvalidJSON, "expected a member name, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, ierrors.Wrapf(ErrInvalidJSON, "member %q: %v", key, err)
		}
		members = append(members, jsonMember{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, ierrors.Wrapf(ErrInvalidJSON, "%v", err)
	}
	return members, nil
}

// isJSONObject reports whether data, ignoring leading space, opens an object.
func isJSONObject(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == '{'
}
