/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// ResolvedPair is a (source, target) lexeme pair, fully resolved against a
// Dictionary, ready to be handed to a replacer primitive.
type ResolvedPair struct {
	Source Lexeme
	Target Lexeme
}

// Stage is one ordered replacement step: a non-empty set of resolved
// source/target pairs, applied in a single pass before the next stage
// runs. Pairs preserves declaration order, which breaks ties when more
// than one source could match the same position (spec.md §4.4.4).
type Stage struct {
	Pairs []ResolvedPair
}

// allSourcesLen1 and commonSourceLen classify the stage's source lengths
// (all 1, all equal L>1, or mixed); transformer.go's NewStageTransformer
// uses that class to select the primitive that executes this stage.
func (s Stage) allSourcesLen1() bool {
	for _, p := range s.Pairs {
		if p.Source.Len() != 1 {
			return false
		}
	}
	return true
}

func (s Stage) commonSourceLen() (length int, uniform bool) {
	if len(s.Pairs) == 0 {
		return 0, false
	}
	length = s.Pairs[0].Source.Len()
	for _, p := range s.Pairs[1:] {
		if p.Source.Len() != length {
			return 0, false
		}
	}
	return length, true
}
