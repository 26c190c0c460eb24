/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// Transformer is one node of the chain: it accepts bytes and forwards zero
// or more output bytes to its successor (spec.md §4.4). SetSuccessor may be
// called at most once per Transformer, before any Feed/Finish call.
type Transformer interface {
	Feed(b byte)
	Finish()
	SetSuccessor(next Transformer) error
}

// NewStageTransformer builds the primitive appropriate for stage's pair
// shape, per spec.md §4.4.6:
//
//	1 pair                         -> single-pattern primitive
//	>=2 pairs, all sources len 1    -> single-byte-sources primitive
//	>=2 pairs, all sources len L>1  -> equal-length primitive
//	otherwise                      -> mixed-length (trie) primitive
//
// diag receives the declaration-order trie-priority warning (spec.md §9,
// open question 1) when stage is mixed-length and one source is a strict
// prefix of another.
func NewStageTransformer(stage Stage, diag DiagnosticsSink) Transformer {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	switch {
	case len(stage.Pairs) == 1:
		return newSinglePatternTransformer(stage.Pairs[0])
	case stage.allSourcesLen1():
		return newByteTableTransformer(stage.Pairs)
	default:
		if _, uniform := stage.commonSourceLen(); uniform {
			length, _ := stage.commonSourceLen()
			return newEqualLengthTransformer(stage.Pairs, length)
		}
		return newTrieTransformer(stage.Pairs, diag)
	}
}

// sinkAdapter wraps a ByteSink as the chain's terminal Transformer. It
// refuses a successor and forwards Finish's end-of-data signal exactly
// once.
type sinkAdapter struct {
	sink    ByteSink
	flushed bool
}

func newSinkAdapter(sink ByteSink) *sinkAdapter {
	return &sinkAdapter{sink: sink}
}

func (s *sinkAdapter) Feed(b byte) {
	s.sink.WriteByte(b, false)
}

func (s *sinkAdapter) Finish() {
	if s.flushed {
		return
	}
	s.flushed = true
	s.sink.WriteByte(0, true)
}

func (s *sinkAdapter) SetSuccessor(Transformer) error {
	return &ImmutableSink{}
}
