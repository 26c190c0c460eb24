/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// singlePatternTransformer implements spec.md §4.4.1: one (src, trg) pair,
// self-overlap handled by the standard KMP prefix-function so that a
// mismatch never discards a buffered byte that might still begin a new
// match. cursor always equals the length of the currently-buffered prefix
// of src that the input tail matches; the buffered bytes themselves are
// exactly src[0:cursor] and never need separate storage.
type singlePatternTransformer struct {
	successor Transformer
	src       []byte
	trg       []byte
	cursor    int
	failure   []int
}

func newSinglePatternTransformer(pair ResolvedPair) *singlePatternTransformer {
	src := pair.Source.Bytes()
	return &singlePatternTransformer{
		src:     src,
		trg:     pair.Target.Bytes(),
		failure: kmpFailure(src),
	}
}

// kmpFailure computes the standard prefix-function: failure[i] is the
// length of the longest proper prefix of src[0:i+1] that is also a suffix
// of src[0:i+1].
func kmpFailure(src []byte) []int {
	failure := make([]int, len(src))
	k := 0
	for i := 1; i < len(src); i++ {
		for k > 0 && src[k] != src[i] {
			k = failure[k-1]
		}
		if src[k] == src[i] {
			k++
		}
		failure[i] = k
	}
	return failure
}

func (t *singlePatternTransformer) SetSuccessor(next Transformer) error {
	t.successor = next
	return nil
}

func (t *singlePatternTransformer) emit(b byte) {
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Feed(b)
}

func (t *singlePatternTransformer) Feed(b byte) {
	for {
		if t.cursor < len(t.src) && t.src[t.cursor] == b {
			t.cursor++
			if t.cursor == len(t.src) {
				for _, o := range t.trg {
					t.emit(o)
				}
				t.cursor = 0
			}
			return
		}
		if t.cursor == 0 {
			t.emit(b)
			return
		}
		newCursor := t.failure[t.cursor-1]
		for i := 0; i < t.cursor-newCursor; i++ {
			t.emit(t.src[i])
		}
		t.cursor = newCursor
	}
}

func (t *singlePatternTransformer) Finish() {
	for i := 0; i < t.cursor; i++ {
		t.emit(t.src[i])
	}
	t.cursor = 0
	if t.successor == nil {
		panic(&BrokenChain{})
	}
	t.successor.Finish()
}
