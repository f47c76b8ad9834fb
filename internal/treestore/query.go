package treestore

import (
	"context"
	"fmt"
	"strings"
)

// Exists reports whether any record in the collection at path holds value in
// field, compared case-insensitively. An absent or empty collection is false.
// A record that lacks the field (or holds a non-string) is a fault, not a
// non-match: callers surface it as a server error.
func Exists(ctx context.Context, st Store, path, field, value string) (bool, error) {
	node, err := st.Get(ctx, path)
	if err != nil {
		return false, err
	}
	for key, child := range node {
		rec, ok := child.(Node)
		if !ok {
			return false, fmt.Errorf("%s/%s: not a record", path, key)
		}
		s, ok := rec[field].(string)
		if !ok {
			return false, fmt.Errorf("%s/%s: missing field %q", path, key, field)
		}
		if strings.EqualFold(s, value) {
			return true, nil
		}
	}
	return false, nil
}

// FindByField scans the collection at path for the first record whose field
// equals value, folding case when fold is set. Which comparison applies is a
// per-field policy owned by the caller: name-like fields fold, username-like
// lookups during deletion compare exact. Returns ("", nil, nil) when the
// collection is absent or nothing matches.
func FindByField(ctx context.Context, st Store, path, field, value string, fold bool) (string, Record, error) {
	node, err := st.Get(ctx, path)
	if err != nil {
		return "", nil, err
	}
	for key, child := range node {
		rec, ok := child.(Node)
		if !ok {
			return "", nil, fmt.Errorf("%s/%s: not a record", path, key)
		}
		s, ok := rec[field].(string)
		if !ok {
			return "", nil, fmt.Errorf("%s/%s: missing field %q", path, key, field)
		}
		if s == value || (fold && strings.EqualFold(s, value)) {
			return key, Record(rec), nil
		}
	}
	return "", nil, nil
}
