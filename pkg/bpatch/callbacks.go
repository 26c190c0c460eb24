/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import (
	"github.com/dprotaso/go-yit"
	"gopkg.in/yaml.v3"
)

// NodeDescriptor is what a Walk callback receives at an object/array
// boundary (spec.md §4.2): the node's key (empty for array members), its
// depth from the root object (the root object itself is depth 1, matching
// its members' nesting discipline), a reference to its parent, and an
// accessor for its own or an array member's scalar value.
type NodeDescriptor struct {
	Key    string
	Depth  int
	Parent *NodeDescriptor
	node   *yaml.Node
}

// Value returns the node's own scalar value. ok is false if the node is
// not a scalar.
func (n *NodeDescriptor) Value() (value string, ok bool) {
	if n.node.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.node.Value, true
}

// ValueAt returns the scalar value of the i'th array member. ok is false
// if the node is not an array, i is out of range, or the member is not a
// scalar.
func (n *NodeDescriptor) ValueAt(i int) (value string, ok bool) {
	if n.node.Kind != yaml.SequenceNode || i < 0 || i >= len(n.node.Content) {
		return "", false
	}
	member := n.node.Content[i]
	if member.Kind != yaml.ScalarNode {
		return "", false
	}
	return member.Value, true
}

// Len reports the number of array members, or the number of key/value
// pairs for an object. It is 0 for a scalar or uninitialized node.
func (n *NodeDescriptor) Len() int {
	switch n.node.Kind {
	case yaml.SequenceNode:
		return len(n.node.Content)
	case yaml.MappingNode:
		return len(n.node.Content) / 2
	default:
		return 0
	}
}

// Callbacks are fired at the four tree boundaries the parser recognizes.
type Callbacks struct {
	ObjectBegin func(n *NodeDescriptor)
	ObjectEnd   func(n *NodeDescriptor)
	ArrayBegin  func(n *NodeDescriptor)
	ArrayEnd    func(n *NodeDescriptor)
}

// Walk fires cb's callbacks over doc (as returned by Parse) in depth-first,
// declaration order. doc must be a DocumentNode wrapping a single top-level
// MappingNode, as Parse guarantees.
func Walk(doc *yaml.Node, cb Callbacks) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return
	}
	walkNode(&NodeDescriptor{Depth: 1, node: doc.Content[0]}, cb)
}

func walkNode(n *NodeDescriptor, cb Callbacks) {
	switch n.node.Kind {
	case yaml.MappingNode:
		if cb.ObjectBegin != nil {
			cb.ObjectBegin(n)
		}
		walkMapping(n, cb)
		if cb.ObjectEnd != nil {
			cb.ObjectEnd(n)
		}

	case yaml.SequenceNode:
		if cb.ArrayBegin != nil {
			cb.ArrayBegin(n)
		}
		walkSequence(n, cb)
		if cb.ArrayEnd != nil {
			cb.ArrayEnd(n)
		}

	default:
		// scalar leaves fire no boundary callback; they're read via
		// Value()/ValueAt() from the enclosing object or array.
	}
}

// isContainer is the go-yit Predicate (spec.md §4.2's "descend only into
// objects/arrays") used to filter a mapping's or sequence's children down
// to the ones Walk should recurse into.
func isContainer(n *yaml.Node) bool {
	return n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode
}

func walkMapping(n *NodeDescriptor, cb Callbacks) {
	content := n.node.Content
	keyFor := make(map[*yaml.Node]string, len(content)/2)
	values := make([]*yaml.Node, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		keyFor[content[i+1]] = content[i].Value
		values = append(values, content[i+1])
	}
	for _, value := range yit.FromNodes(values...).Filter(isContainer).ToArray() {
		child := &NodeDescriptor{Key: keyFor[value], Depth: n.Depth + 1, Parent: n, node: value}
		walkNode(child, cb)
	}
}

func walkSequence(n *NodeDescriptor, cb Callbacks) {
	for _, member := range yit.FromNodes(n.node.Content...).Filter(isContainer).ToArray() {
		child := &NodeDescriptor{Depth: n.Depth + 1, Parent: n, node: member}
		walkNode(child, cb)
	}
}
