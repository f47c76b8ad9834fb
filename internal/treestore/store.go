// Package treestore provides a hierarchical key-value tree addressed by
// slash-delimited paths, the storage model the whole backend is written
// against. Collections are maps from generated keys to schemaless records;
// backends only differ in where the flat (record path, record) pairs live.
package treestore

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Node is a subtree: values are either nested Nodes or record fields.
type Node = map[string]any

// Record is a single schemaless document.
type Record = map[string]any

// Store is the document-store adapter. All methods take a context; none of
// the multi-call workflows built on top are transactional.
type Store interface {
	// Get returns the full subtree at path, nil when absent.
	Get(ctx context.Context, path string) (Node, error)
	// Query returns the direct children of path whose field equals value
	// exactly. Records lacking the field simply do not match.
	Query(ctx context.Context, path, field, value string) (map[string]Record, error)
	// Push appends a record under path with a generated unique key.
	Push(ctx context.Context, path string, rec Record) (string, error)
	// Update merges fields into the record at path, creating it if absent.
	Update(ctx context.Context, path string, fields Record) error
	// Remove deletes the subtree at path.
	Remove(ctx context.Context, path string) error
	// Dump returns the entire tree.
	Dump(ctx context.Context) (Node, error)
	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error
	Close() error
}

// newKey generates a push key. The leading dash keeps generated keys
// distinguishable from user-chosen child names.
func newKey() string {
	return "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// assemble rebuilds the nested subtree at prefix from flat record paths.
// Returns nil when nothing lives under prefix.
func assemble(flat map[string]Record, prefix string) Node {
	if rec, ok := flat[prefix]; ok {
		return copyRecord(rec)
	}
	var root Node
	for p, rec := range flat {
		rel := p
		if prefix != "" {
			if !strings.HasPrefix(p, prefix+"/") {
				continue
			}
			rel = strings.TrimPrefix(p, prefix+"/")
		}
		if root == nil {
			root = Node{}
		}
		segs := strings.Split(rel, "/")
		cur := root
		for _, seg := range segs[:len(segs)-1] {
			next, ok := cur[seg].(Node)
			if !ok {
				next = Node{}
				cur[seg] = next
			}
			cur = next
		}
		cur[segs[len(segs)-1]] = copyRecord(rec)
	}
	return root
}

// children extracts the direct child records under prefix from flat paths.
func children(flat map[string]Record, prefix string) map[string]Record {
	out := map[string]Record{}
	for p, rec := range flat {
		if !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		key := strings.TrimPrefix(p, prefix+"/")
		if strings.Contains(key, "/") {
			continue
		}
		out[key] = copyRecord(rec)
	}
	return out
}

// matchChildren filters direct children by exact field equality.
func matchChildren(flat map[string]Record, prefix, field, value string) map[string]Record {
	out := map[string]Record{}
	for key, rec := range children(flat, prefix) {
		if s, ok := rec[field].(string); ok && s == value {
			out[key] = rec
		}
	}
	return out
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		switch vv := v.(type) {
		case []string:
			out[k] = append([]string(nil), vv...)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}

// mergeRecord overlays fields onto base, returning base.
func mergeRecord(base, fields Record) Record {
	for k, v := range copyRecord(fields) {
		base[k] = v
	}
	return base
}

// Str reads a string field from a record, empty when absent or not a string.
func Str(rec Record, field string) string {
	s, _ := rec[field].(string)
	return s
}

// Strings normalizes a stored list field. Lists come back as []string from
// the memory backend and []any after a JSON round trip.
func Strings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return append([]string(nil), vv...)
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
