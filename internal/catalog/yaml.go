package catalog

import (
	"customerwizard/wizard/internal/domain"
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*domain.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.MalformedCatalogError{Reason: "invalid YAML document", Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &domain.MalformedCatalogError{Reason: "empty document"}
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, &domain.MalformedCatalogError{Reason: "empty document"}
	}

	w := &yamlWalker{budget: maxYAMLNodes}
	node, err := w.node(root, "")
	if err != nil {
		return nil, err
	}

	return domain.NewCatalog(node)
}

// maxYAMLNodes caps the nodes visited with aliases expanded.
const maxYAMLNodes = 100_000

type yamlWalker struct {
	budget int
}

func (w *yamlWalker) visit(path string, n *yaml.Node) error {
	w.budget--
	if w.budget < 0 {
		return &domain.MalformedCatalogError{
			Path:   path,
			Reason: fmt.Sprintf("document expands to more than %d nodes (line %d)", maxYAMLNodes, n.Line),
		}
	}
	return nil
}

func (w *yamlWalker) node(n *yaml.Node, path string) (*domain.Node, error) {
	n = resolveAlias(n)
	if err := w.visit(path, n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.MappingNode:
		entries := make([]domain.Entry, 0, len(n.Content)/2)
		seen := make(map[string]struct{}, len(n.Content)/2)

		for i := 0; i+1 < len(n.Content); i += 2 {
			key := resolveAlias(n.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, malformedYAML(path, key, "mapping keys must be scalars")
			}
			if key.ShortTag() == "!!merge" {
				return nil, malformedYAML(path, key, "merge keys are not supported")
			}

			label := key.Value
			childPath := domain.JoinPath(path, label)
			if _, dup := seen[label]; dup {
				return nil, &domain.MalformedCatalogError{
					Path:   childPath,
					Reason: "duplicate key",
					Err:    domain.ErrDuplicateLabel,
				}
			}
			seen[label] = struct{}{}

			child, err := w.node(n.Content[i+1], childPath)
			if err != nil {
				return nil, err
			}
			entries = append(entries, domain.Entry{Label: label, Node: child})
		}

		return domain.NewInterior(entries...)

	case yaml.SequenceNode:
		options := make([]string, 0, len(n.Content))
		for i, item := range n.Content {
			item = resolveAlias(item)
			itemPath := domain.IndexPath(path, i)
			if err := w.visit(itemPath, item); err != nil {
				return nil, err
			}
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return nil, malformedYAML(itemPath, item, "leaf options must be strings")
			}
			options = append(options, item.Value)
		}
		return domain.NewLeaf(options...), nil

	default:
		return nil, malformedYAML(path, n, "expected a mapping or a list of strings")
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func malformedYAML(path string, n *yaml.Node, reason string) *domain.MalformedCatalogError {
	got := n.ShortTag()
	if n.Kind == yaml.MappingNode {
		got = "mapping"
	} else if n.Kind == yaml.SequenceNode {
		got = "list"
	}

	return &domain.MalformedCatalogError{
		Path:   path,
		Reason: fmt.Sprintf("%s, got %s (line %d)", reason, got, n.Line),
	}
}
