/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// byteTableTransformer implements spec.md §4.4.2: a stage whose sources are
// all single bytes. A 256-entry table gives constant-time-per-byte
// dispatch with no buffering at all.
type byteTableTransformer struct {
	successor Transformer
	present   [256]bool
	target    [256][]byte
}

func newByteTableTransformer(pairs []ResolvedPair) *byteTableTransformer {
	t := &byteTableTransformer{}
	for _, p := range pairs {
		b := p.Source.Bytes()[0]
		if t.present[b] {
			continue // compiler already warns on duplicate sources; first wins
		}
		t.present[b] = true
		t.target[b] = p.Target.Bytes()
	}
	return t
}

func (t *byteTableTransformer) SetSuccessor(next Transformer) error {
	t.successor = next
	return nil
}

func (t *byteTableTransformer) Feed(b byte) {
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	if t.present[b] {
		for _, o := range t.target[b] {
			t.successor.Feed(o)
		}
		return
	}
	t.successor.Feed(b)
}

func (t *byteTableTransformer) Finish() {
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Finish()
}
