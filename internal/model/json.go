package model

import "encoding/json"

// jsonNode is the serialized shape of a model node. Children serialize
// recursively in discovery order.
type jsonNode struct {
	Kind        string      `json:"kind"`
	Name        string      `json:"name"`
	EscapedName string      `json:"escapedName,omitempty"`
	Type        string      `json:"type,omitempty"`
	Flags       []string    `json:"flags,omitempty"`
	Comment     *Comment    `json:"comment,omitempty"`
	Source      string      `json:"source,omitempty"`
	Children    []*jsonNode `json:"children,omitempty"`
}

func toJSONNode(r Reflection) *jsonNode {
	node := &jsonNode{
		Kind:  r.Kind().String(),
		Name:  r.Name(),
		Flags: r.Flags().Names(),
	}
	if c := r.Comment(); !c.IsEmpty() {
		node.Comment = c
	}
	if d, ok := r.(*DeclarationReflection); ok {
		node.EscapedName = d.EscapedName
		node.Type = d.Type
		if d.Position.File != "" {
			node.Source = d.Position.String()
		}
	}
	for _, child := range r.Children() {
		node.Children = append(node.Children, toJSONNode(child))
	}
	return node
}

// MarshalJSON serializes the project tree.
func (p *ProjectReflection) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(p))
}

// MarshalJSON serializes a declaration subtree.
func (d *DeclarationReflection) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(d))
}
