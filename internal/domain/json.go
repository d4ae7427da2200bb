package domain

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// MarshalJSON writes interior nodes as objects and leaves as arrays, keeping
// source order so the output has the catalog document shape.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.Kind() {
	case KindInterior:
		buf.WriteByte('{')
		for i, e := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Label)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := e.Node.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindLeaf:
		if len(n.options) == 0 {
			buf.WriteString("[]")
			return nil
		}
		opts, err := json.Marshal(n.options)
		if err != nil {
			return err
		}
		buf.Write(opts)
	default:
		buf.WriteString("null")
	}
	return nil
}

func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSONNode(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// ParseJSONNode decodes a catalog-shaped JSON document into a node.
func ParseJSONNode(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, malformed("", "invalid JSON document")
	}
	return nodeFromJSON(gjson.ParseBytes(data), "")
}

// ParseJSONCatalog decodes a JSON catalog whose top-level keys are customer
// types.
func ParseJSONCatalog(data []byte) (*Catalog, error) {
	root, err := ParseJSONNode(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(root)
}

func nodeFromJSON(value gjson.Result, path string) (*Node, error) {
	switch {
	case value.IsObject():
		var (
			entries []Entry
			walkErr error
		)
		seen := make(map[string]struct{})

		value.ForEach(func(key, child gjson.Result) bool {
			label := key.String()
			childPath := JoinPath(path, label)
			if _, dup := seen[label]; dup {
				walkErr = &MalformedCatalogError{Path: childPath, Reason: "duplicate key", Err: ErrDuplicateLabel}
				return false
			}
			seen[label] = struct{}{}

			node, err := nodeFromJSON(child, childPath)
			if err != nil {
				walkErr = err
				return false
			}
			entries = append(entries, Entry{Label: label, Node: node})
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return newInteriorUnchecked(entries), nil

	case value.IsArray():
		var (
			walkErr error
			i       int
		)
		options := make([]string, 0)

		value.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				walkErr = malformed(IndexPath(path, i), "leaf options must be strings, got %s", describeJSON(item))
				return false
			}
			options = append(options, item.String())
			i++
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return &Node{kind: KindLeaf, options: options}, nil

	default:
		return nil, malformed(path, "expected a mapping or a list of strings, got %s", describeJSON(value))
	}
}

func describeJSON(value gjson.Result) string {
	switch {
	case value.IsObject():
		return "mapping"
	case value.IsArray():
		return "list"
	}

	switch value.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return value.Type.String()
	}
}
