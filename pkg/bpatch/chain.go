/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// Chain is the assembled linear sequence of stage transformers terminated
// by a sink adapter (spec.md §4.5). Its public surface is FeedByte and
// Finish; between the first FeedByte and Finish the chain must not be
// reconfigured.
type Chain struct {
	head Transformer
}

// BuildChain assembles one Transformer per stage, in declaration order,
// terminating with a sink adapter wrapping sink. Successors are threaded
// back-to-front: the sink adapter is built first, then each stage's
// primitive is composed onto the front of what has been built so far, so
// that stage[0] is the head the caller feeds.
func BuildChain(stages []Stage, sink ByteSink, diag DiagnosticsSink) (*Chain, error) {
	if len(stages) == 0 {
		return nil, &EmptyTodo{}
	}

	var successor Transformer = newSinkAdapter(sink)
	for i := len(stages) - 1; i >= 0; i-- {
		node := NewStageTransformer(stages[i], diag)
		if err := node.SetSuccessor(successor); err != nil {
			return nil, err
		}
		successor = node
	}

	return &Chain{head: successor}, nil
}

// FeedByte pushes one input byte through the head of the chain.
func (c *Chain) FeedByte(b byte) {
	c.head.Feed(b)
}

// Finish pushes the end-of-data signal through the chain. It must be
// called exactly once, after all input bytes have been fed.
func (c *Chain) Finish() {
	c.head.Finish()
}
