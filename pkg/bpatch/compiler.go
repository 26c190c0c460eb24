/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Compile parses config and builds a Dictionary plus an ordered list of
// replacement Stages, per spec.md §4.3's three-pass policy:
//
//  1. drain parser callbacks, inserting non-composite lexemes directly and
//     accumulating composite/stage specs into side lists;
//  2. resolve composites in declaration order, inserting each result;
//  3. resolve each stage's pairs against the now-complete dictionary.
//
// loader resolves `file` dictionary entries; fallbackDir is passed through
// to it unchanged for entries not found in the working directory. diag
// receives non-fatal warnings (empty stage, duplicate source pattern). Trie
// prefix-priority conflicts are not reported here: replace_trie.go reports
// them to the diag passed to BuildChain. A nil diag is replaced with
// NopDiagnostics.
func Compile(config []byte, loader FileLoader, fallbackDir string, diag DiagnosticsSink) (*Dictionary, []Stage, error) {
	if diag == nil {
		diag = NopDiagnostics{}
	}

	doc, err := Parse(config)
	if err != nil {
		return nil, nil, err
	}

	c := &compilation{
		dict:        NewDictionary(),
		loader:      loader,
		fallbackDir: fallbackDir,
		diag:        diag,
	}

	Walk(doc, Callbacks{
		ObjectBegin: c.objectBegin,
		ArrayBegin:  c.arrayBegin,
	})
	if c.err != nil {
		return nil, nil, c.err
	}

	if err := c.resolveComposites(); err != nil {
		return nil, nil, err
	}

	stages, err := c.resolveStages()
	if err != nil {
		return nil, nil, err
	}
	if len(stages) == 0 {
		return nil, nil, &EmptyTodo{}
	}

	return c.dict, stages, nil
}

type compositeSpec struct {
	name string
	refs []string
}

type stagePairSpec struct {
	src string
	trg string
}

type stageSpec struct {
	pairs []stagePairSpec
}

type compilation struct {
	dict        *Dictionary
	loader      FileLoader
	fallbackDir string
	diag        DiagnosticsSink

	composites []compositeSpec
	stageSpecs []stageSpec

	err error
}

func (c *compilation) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *compilation) objectBegin(n *NodeDescriptor) {
	if c.err != nil {
		return
	}
	if n.Key == keyDictionary && n.Depth == 2 {
		c.compileDictionary(n.node)
	}
}

func (c *compilation) arrayBegin(n *NodeDescriptor) {
	if c.err != nil {
		return
	}
	if n.Key == keyTodo && n.Depth == 2 {
		c.compileTodo(n.node)
	}
}

func (c *compilation) compileDictionary(dictNode *yaml.Node) {
	for i := 0; i+1 < len(dictNode.Content) && c.err == nil; i += 2 {
		key := dictNode.Content[i].Value
		value := dictNode.Content[i+1]
		switch key {
		case keyDecimal:
			c.compileByteArraySection(value, 10)
		case keyHexadecimal:
			c.compileByteArraySection(value, 16)
		case keyText:
			c.compileTextSection(value)
		case keyFile:
			c.compileFileSection(value)
		case keyComposite:
			c.compileCompositeSection(value)
		default:
			c.fail(&SchemaError{Path: "dictionary." + key, Reason: "unrecognized key"})
		}
	}
}

func (c *compilation) compileByteArraySection(section *yaml.Node, base int) {
	if section.Kind != yaml.MappingNode {
		c.fail(&SchemaError{Path: "dictionary", Reason: "expected an object of name to byte array"})
		return
	}
	for i := 0; i+1 < len(section.Content) && c.err == nil; i += 2 {
		name := section.Content[i].Value
		arr := section.Content[i+1]
		if arr.Kind != yaml.SequenceNode {
			c.fail(&SchemaError{Path: name, Reason: "expected an array"})
			return
		}
		buf := make([]byte, 0, len(arr.Content))
		for _, elem := range arr.Content {
			if elem.Kind != yaml.ScalarNode {
				c.fail(&SchemaError{Path: name, Reason: "array element must be a scalar"})
				return
			}
			b, err := parseByteElement(elem, base)
			if err != nil {
				c.fail(err)
				return
			}
			buf = append(buf, b)
		}
		if err := c.dict.Insert(NewLexemeFromBytes(name, buf)); err != nil {
			c.fail(err)
			return
		}
	}
}

func parseByteElement(elem *yaml.Node, base int) (byte, error) {
	var (
		n   int64
		err error
	)
	if base == 16 {
		s := elem.Value
		if len(s) != 2 {
			return 0, &RangeError{Reason: fmt.Sprintf("hex element %q must be exactly 2 digits", s)}
		}
		n, err = strconv.ParseInt(s, 16, 32)
	} else {
		n, err = strconv.ParseInt(elem.Value, 10, 32)
	}
	if err != nil || n < 0 || n > 255 {
		return 0, &RangeError{Reason: fmt.Sprintf("element %q does not fit in one octet", elem.Value)}
	}
	return byte(n), nil
}

func (c *compilation) compileTextSection(section *yaml.Node) {
	if section.Kind != yaml.MappingNode {
		c.fail(&SchemaError{Path: keyText, Reason: "expected an object of name to string"})
		return
	}
	for i := 0; i+1 < len(section.Content) && c.err == nil; i += 2 {
		name := section.Content[i].Value
		value := section.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
			c.fail(&SchemaError{Path: name, Reason: "expected a string"})
			return
		}
		if err := c.dict.Insert(NewLexemeFromView(name, []byte(value.Value))); err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *compilation) compileFileSection(section *yaml.Node) {
	if section.Kind != yaml.MappingNode {
		c.fail(&SchemaError{Path: keyFile, Reason: "expected an object of name to filename string"})
		return
	}
	for i := 0; i+1 < len(section.Content) && c.err == nil; i += 2 {
		name := section.Content[i].Value
		value := section.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
			c.fail(&SchemaError{Path: name, Reason: "expected a filename string"})
			return
		}
		if c.loader == nil {
			c.fail(&FileNotFound{Name: value.Value})
			return
		}
		content, err := c.loader.Load(value.Value, c.fallbackDir)
		if err != nil {
			c.fail(&FileNotFound{Name: value.Value})
			return
		}
		if err := c.dict.Insert(NewLexemeFromBytes(name, content)); err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *compilation) compileCompositeSection(section *yaml.Node) {
	if section.Kind != yaml.SequenceNode {
		c.fail(&SchemaError{Path: keyComposite, Reason: "expected an array of single-key objects"})
		return
	}
	for _, member := range section.Content {
		if c.err != nil {
			return
		}
		if member.Kind != yaml.MappingNode || len(member.Content) != 2 {
			c.fail(&SchemaError{Path: keyComposite, Reason: "each entry must be a single-key object"})
			return
		}
		name := member.Content[0].Value
		refsNode := member.Content[1]
		if refsNode.Kind != yaml.SequenceNode {
			c.fail(&SchemaError{Path: name, Reason: "composite value must be an array of names"})
			return
		}
		refs := make([]string, 0, len(refsNode.Content))
		for _, r := range refsNode.Content {
			if r.Kind != yaml.ScalarNode || r.Tag != "!!str" {
				c.fail(&SchemaError{Path: name, Reason: "composite reference must be a string"})
				return
			}
			refs = append(refs, r.Value)
		}
		c.composites = append(c.composites, compositeSpec{name: name, refs: refs})
	}
}

func (c *compilation) compileTodo(todoNode *yaml.Node) {
	for _, member := range todoNode.Content {
		if c.err != nil {
			return
		}
		if member.Kind != yaml.MappingNode || len(member.Content) != 2 {
			c.fail(&SchemaError{Path: keyTodo, Reason: "each entry must be a single-key object named \"replace\""})
			return
		}
		if member.Content[0].Value != keyReplace {
			c.fail(&SchemaError{Path: keyTodo, Reason: "todo entry key must be \"replace\""})
			return
		}
		replaceNode := member.Content[1]
		if replaceNode.Kind != yaml.MappingNode {
			c.fail(&SchemaError{Path: keyReplace, Reason: "expected an object of source name to target name"})
			return
		}
		if len(replaceNode.Content) == 0 {
			c.diag.Diagnostic(SeverityWarning, "empty replace stage skipped")
			continue
		}
		spec := stageSpec{}
		for i := 0; i+1 < len(replaceNode.Content); i += 2 {
			src := replaceNode.Content[i]
			trg := replaceNode.Content[i+1]
			if src.Kind != yaml.ScalarNode || trg.Kind != yaml.ScalarNode {
				c.fail(&SchemaError{Path: keyReplace, Reason: "replace pairs must be string to string"})
				return
			}
			spec.pairs = append(spec.pairs, stagePairSpec{src: src.Value, trg: trg.Value})
		}
		c.stageSpecs = append(c.stageSpecs, spec)
	}
}

func (c *compilation) resolveComposites() error {
	for _, spec := range c.composites {
		parts := make([]Lexeme, 0, len(spec.refs))
		for _, ref := range spec.refs {
			l, ok := c.dict.Get(ref)
			if !ok {
				return &UnknownName{Name: ref}
			}
			parts = append(parts, l)
		}
		composite, err := Concat(spec.name, parts...)
		if err != nil {
			return err
		}
		if err := c.dict.Insert(composite); err != nil {
			return err
		}
	}
	return nil
}

func (c *compilation) resolveStages() ([]Stage, error) {
	stages := make([]Stage, 0, len(c.stageSpecs))
	for _, spec := range c.stageSpecs {
		stage := Stage{}
		seenSources := make(map[string]bool)
		for _, pair := range spec.pairs {
			src, ok := c.dict.Get(pair.src)
			if !ok {
				return nil, &UnknownName{Name: pair.src}
			}
			trg, ok := c.dict.Get(pair.trg)
			if !ok {
				return nil, &UnknownName{Name: pair.trg}
			}
			if src.Len() == 0 {
				return nil, &RangeError{Reason: fmt.Sprintf("source pattern %q is empty", pair.src)}
			}
			key := string(src.Bytes())
			if seenSources[key] {
				c.diag.Diagnostic(SeverityWarning, fmt.Sprintf("duplicate source pattern %q in stage, first declaration wins", pair.src))
				continue
			}
			seenSources[key] = true
			stage.Pairs = append(stage.Pairs, ResolvedPair{Source: src, Target: trg})
		}
		if len(stage.Pairs) == 0 {
			c.diag.Diagnostic(SeverityWarning, "stage has no surviving pairs, skipped")
			continue
		}
		stages = append(stages, stage)
	}
	return stages, nil
}
