package suppress

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// suppress adds ignore_diagnostics entries to the YAML content using AST
// editing so comments are kept. It reports whether the content was changed.
func (c *Controller) suppress(content []byte) (string, bool, error) {
	file, err := parser.ParseBytes(content, parser.ParseComments)
	if err != nil {
		return "", false, fmt.Errorf("parse a configuration file as YAML: %w", err)
	}
	changed := false
	for _, doc := range file.Docs {
		f, err := c.suppressDoc(doc)
		if err != nil {
			return "", false, err
		}
		changed = changed || f
	}
	if !changed {
		return "", false, nil
	}
	return file.String(), true, nil
}

func (c *Controller) suppressDoc(doc *ast.DocumentNode) (bool, error) {
	body, ok := doc.Body.(*ast.MappingNode)
	if !ok {
		return false, errors.New("document body must be *ast.MappingNode")
	}
	node := findNodeByKey(body.Values, "ignore_diagnostics")
	if node == nil {
		value, err := yaml.ValueToNode(map[string]any{
			"ignore_diagnostics": c.entriesValue(),
		})
		if err != nil {
			return false, fmt.Errorf("convert ignore_diagnostics to node: %w", err)
		}
		body.Merge(value.(*ast.MappingNode)) //nolint:forcetypeassert
		return true, nil
	}
	switch seq := node.Value.(type) {
	case *ast.NullNode:
		value, err := yaml.ValueToNode(c.entriesValue())
		if err != nil {
			return false, fmt.Errorf("convert ignore_diagnostics to node: %w", err)
		}
		node.Value = value
		return true, nil
	case *ast.SequenceNode:
		changed := false
		for _, ruleID := range c.param.RuleIDs {
			if hasEntry(seq, ruleID, c.param.Path) {
				continue
			}
			value, err := yaml.ValueToNode(c.newEntry(ruleID))
			if err != nil {
				return false, fmt.Errorf("convert an ignore_diagnostics entry to node: %w", err)
			}
			seq.Values = append(seq.Values, value)
			changed = true
		}
		return changed, nil
	default:
		return false, errors.New("ignore_diagnostics must be an array")
	}
}

func (c *Controller) entriesValue() []any {
	entries := make([]any, 0, len(c.param.RuleIDs))
	seen := map[string]struct{}{}
	for _, ruleID := range c.param.RuleIDs {
		if _, ok := seen[ruleID]; ok {
			continue
		}
		seen[ruleID] = struct{}{}
		entries = append(entries, c.newEntry(ruleID))
	}
	return entries
}

func (c *Controller) newEntry(ruleID string) yaml.MapSlice {
	entry := yaml.MapSlice{
		{Key: "rule", Value: ruleID},
		{Key: "rule_format", Value: "fixed_string"},
	}
	if c.param.Path != "" {
		entry = append(entry,
			yaml.MapItem{Key: "path", Value: c.param.Path},
			yaml.MapItem{Key: "path_format", Value: "fixed_string"},
		)
	}
	return entry
}

// hasEntry reports whether the sequence already has an entry with the given
// rule and path so the same suppression isn't added twice.
func hasEntry(seq *ast.SequenceNode, ruleID, filePath string) bool {
	for _, value := range seq.Values {
		values := mappingValues(value)
		if values == nil {
			continue
		}
		if stringValueByKey(values, "rule") == ruleID && stringValueByKey(values, "path") == filePath {
			return true
		}
	}
	return false
}

// mappingValues returns the key-value pairs of a mapping node. A mapping with
// a single pair is represented as *ast.MappingValueNode.
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch m := node.(type) {
	case *ast.MappingNode:
		return m.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{m}
	}
	return nil
}

func stringValueByKey(values []*ast.MappingValueNode, key string) string {
	node := findNodeByKey(values, key)
	if node == nil {
		return ""
	}
	s, ok := node.Value.(*ast.StringNode)
	if !ok {
		return ""
	}
	return s.Value
}

func findNodeByKey(values []*ast.MappingValueNode, key string) *ast.MappingValueNode {
	for _, value := range values {
		k, ok := value.Key.(*ast.StringNode)
		if !ok {
			continue
		}
		if k.Value == key {
			return value
		}
	}
	return nil
}
