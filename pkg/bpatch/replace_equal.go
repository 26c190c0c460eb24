/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// equalLengthTransformer implements spec.md §4.4.3: every source in the
// stage has the same length L > 1. Each full L-byte window is looked up in
// a hash table; on a miss the head byte is emitted and the window buffer
// shifts left by one byte.
type equalLengthTransformer struct {
	successor Transformer
	length    int
	table     map[string][]byte
	cache     []byte
}

func newEqualLengthTransformer(pairs []ResolvedPair, length int) *equalLengthTransformer {
	t := &equalLengthTransformer{
		length: length,
		table:  make(map[string][]byte, len(pairs)),
		cache:  make([]byte, 0, length),
	}
	for _, p := range pairs {
		key := string(p.Source.Bytes())
		if _, exists := t.table[key]; exists {
			continue // compiler already warns on duplicate sources; first wins
		}
		t.table[key] = p.Target.Bytes()
	}
	return t
}

func (t *equalLengthTransformer) SetSuccessor(next Transformer) error {
	t.successor = next
	return nil
}

func (t *equalLengthTransformer) emit(b byte) {
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Feed(b)
}

func (t *equalLengthTransformer) Feed(b byte) {
	t.cache = append(t.cache, b)
	if len(t.cache) < t.length {
		return
	}
	if target, ok := t.table[string(t.cache)]; ok {
		for _, o := range target {
			t.emit(o)
		}
		t.cache = t.cache[:0]
		return
	}
	t.emit(t.cache[0])
	copy(t.cache, t.cache[1:])
	t.cache = t.cache[:len(t.cache)-1]
}

func (t *equalLengthTransformer) Finish() {
	for _, b := range t.cache {
		t.emit(b)
	}
	t.cache = t.cache[:0]
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Finish()
}
