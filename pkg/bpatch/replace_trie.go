/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import "fmt"

// trieNode is one node of the 256-ary dense trie described in spec.md
// §4.4.4 (§9 notes a hash-map-per-node alternative is equally conforming;
// a dense array is chosen here since the byte alphabet is fixed and small).
type trieNode struct {
	children  [256]*trieNode
	terminal  bool
	pairIndex int // declaration order; lower wins ties (spec.md §4.4.4, §9)
	target    []byte
	sourceLen int

	// subtreeMin is the lowest pairIndex of any terminal strictly below
	// this node (i.e. reachable only by consuming more bytes than are
	// already matched here), or -1 if none. Computed once after the trie
	// is fully built.
	subtreeMin int
}

// trieTransformer implements spec.md §4.4.4: sources of differing lengths.
// cache holds bytes fed but not yet committed to the successor; it never
// grows past the longest registered source since every full pass through
// the cache either emits a match (shrinking it) or emits a literal byte
// (shrinking it) before the next Feed call returns.
type trieTransformer struct {
	successor Transformer
	root      *trieNode
	cache     []byte
}

func newTrieTransformer(pairs []ResolvedPair, diag DiagnosticsSink) *trieTransformer {
	t := &trieTransformer{root: &trieNode{subtreeMin: -1}}
	for i, p := range pairs {
		t.insert(p, i, diag)
	}
	computeSubtreeMin(t.root)
	return t
}

func (t *trieTransformer) insert(p ResolvedPair, index int, diag DiagnosticsSink) {
	src := p.Source.Bytes()
	node := t.root
	for i, b := range src {
		if node.terminal && i < len(src) {
			diag.Diagnostic(SeverityWarning, fmt.Sprintf(
				"source pattern %q is a prefix of %q; declaration order decides ties", shortestTerminalName(node), p.Source.Name()))
		}
		child := node.children[b]
		if child == nil {
			child = &trieNode{subtreeMin: -1}
			node.children[b] = child
		}
		node = child
	}
	if hasAnyChild(node) {
		diag.Diagnostic(SeverityWarning, fmt.Sprintf(
			"source pattern %q has a longer registered source as an extension; declaration order decides ties", p.Source.Name()))
	}
	if node.terminal {
		return // exact duplicate source; first declared already occupies this node
	}
	node.terminal = true
	node.pairIndex = index
	node.target = p.Target.Bytes()
	node.sourceLen = len(src)
}

// shortestTerminalName is a best-effort label for diagnostics; the trie
// itself only tracks byte lengths, not names, so this reports the length.
func shortestTerminalName(n *trieNode) string {
	return fmt.Sprintf("<source of length %d>", n.sourceLen)
}

func hasAnyChild(n *trieNode) bool {
	for _, c := range n.children {
		if c != nil {
			return true
		}
	}
	return false
}

func computeSubtreeMin(n *trieNode) int {
	best := -1
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if c.terminal && (best == -1 || c.pairIndex < best) {
			best = c.pairIndex
		}
		if cm := computeSubtreeMin(c); cm != -1 && (best == -1 || cm < best) {
			best = cm
		}
	}
	n.subtreeMin = best
	return best
}

func (t *trieTransformer) SetSuccessor(next Transformer) error {
	t.successor = next
	return nil
}

func (t *trieTransformer) emit(b byte) {
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Feed(b)
}

// walk matches t.cache against the trie from position 0, per spec.md
// §4.4.4 step 2. It returns the highest-priority (earliest-declared)
// terminal encountered along the matched path, and whether a strictly
// longer, higher-priority source could still complete with more bytes
// (aheadPossible) — which is only meaningful when the full cache was
// consumed without a trie mismatch.
func (t *trieTransformer) walk() (found bool, target []byte, length int, aheadPossible bool) {
	node := t.root
	bestPriority := -1
	matchedLen := 0
	mismatch := false
	for matchedLen < len(t.cache) {
		if node.terminal && (bestPriority == -1 || node.pairIndex < bestPriority) {
			bestPriority, target, length = node.pairIndex, node.target, node.sourceLen
		}
		child := node.children[t.cache[matchedLen]]
		if child == nil {
			mismatch = true
			break
		}
		node = child
		matchedLen++
	}
	if !mismatch {
		if node.terminal && (bestPriority == -1 || node.pairIndex < bestPriority) {
			bestPriority, target, length = node.pairIndex, node.target, node.sourceLen
		}
		if node.subtreeMin != -1 && (bestPriority == -1 || node.subtreeMin < bestPriority) {
			aheadPossible = true
		}
	}
	found = bestPriority != -1
	return
}

func (t *trieTransformer) Feed(b byte) {
	t.cache = append(t.cache, b)
	for len(t.cache) > 0 {
		found, target, length, ahead := t.walk()
		if ahead {
			return
		}
		if found {
			for _, o := range target {
				t.emit(o)
			}
			t.cache = t.cache[length:]
			continue
		}
		t.emit(t.cache[0])
		t.cache = t.cache[1:]
	}
}

func (t *trieTransformer) Finish() {
	for len(t.cache) > 0 {
		found, target, length, _ := t.walk()
		if found {
			for _, o := range target {
				t.emit(o)
			}
			t.cache = t.cache[length:]
			continue
		}
		t.emit(t.cache[0])
		t.cache = t.cache[1:]
	}
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Finish()
}
