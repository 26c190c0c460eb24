/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse turns a configuration document (spec.md §4.2 grammar) into a
// *yaml.Node tree rooted at a DocumentNode, reusing yaml.v3's node shape
// (Kind/Tag/Value/Content/Line/Column) rather than inventing a parallel
// type. The top level must be an object; any non-whitespace left over
// after it is a ParseError.
//
// Parse mutates input in place while decoding string escapes (see
// decodeStringInPlace in configlex.go); callers that need the original
// bytes must pass a copy. Every scalar *yaml.Node it returns holds a Value
// copied out of input, so the returned tree does not alias input.
func Parse(input []byte) (*yaml.Node, error) {
	p := &configParser{lex: lexConfig(input), buf: input}
	first := p.peek()
	if first.kind != tokObjectOpen {
		return nil, p.parseErrorAt(first.offset, "top level must be an object")
	}
	root, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	trailing := p.peek()
	if trailing.kind != tokEOF {
		return nil, p.parseErrorAt(trailing.offset, "trailing data after top-level object")
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

// configParser is a one-token-lookahead recursive-descent parser over the
// configLexer's token stream, in the push/pop-free style of the teacher's
// filter_parser.go parser (peek/nextLexeme), simplified because JSON
// nesting is handled by recursion rather than a lexer-side stack.
type configParser struct {
	lex    *configLexer
	buf    []byte
	peeked *token
}

func (p *configParser) next() token {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t
	}
	return p.lex.nextToken()
}

func (p *configParser) peek() token {
	if p.peeked == nil {
		t := p.lex.nextToken()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *configParser) parseErrorAt(offset int, format string, args ...interface{}) error {
	line, col := lineColumn(p.buf, offset)
	return &ParseError{Line: line, Column: col, Reason: fmt.Sprintf(format, args...)}
}

func (p *configParser) parseValue() (*yaml.Node, error) {
	t := p.peek()
	switch t.kind {
	case tokObjectOpen:
		return p.parseObject()
	case tokArrayOpen:
		return p.parseArray()
	case tokString:
		p.next()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.val}, nil
	case tokNumber:
		p.next()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!number", Value: t.val}, nil
	case tokTrue:
		p.next()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}, nil
	case tokFalse:
		p.next()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"}, nil
	case tokNull:
		p.next()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case tokError:
		return nil, p.parseErrorAt(t.offset, "%s", t.val)
	default:
		return nil, p.parseErrorAt(t.offset, "expected a value")
	}
}

func (p *configParser) parseObject() (*yaml.Node, error) {
	p.next() // consume '{'
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	if p.peek().kind == tokObjectClose {
		p.next()
		return node, nil
	}

	for {
		keyTok := p.peek()
		if keyTok.kind == tokError {
			return nil, p.parseErrorAt(keyTok.offset, "%s", keyTok.val)
		}
		if keyTok.kind != tokString {
			return nil, p.parseErrorAt(keyTok.offset, "expected an object key (string)")
		}
		p.next()
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: keyTok.val}

		colon := p.next()
		if colon.kind != tokColon {
			return nil, p.parseErrorAt(colon.offset, "expected ':' after object key")
		}

		valueNode, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)

		sep := p.next()
		switch sep.kind {
		case tokComma:
			continue
		case tokObjectClose:
			return node, nil
		default:
			return nil, p.parseErrorAt(sep.offset, "expected ',' or '}' in object")
		}
	}
}

func (p *configParser) parseArray() (*yaml.Node, error) {
	p.next() // consume '['
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

	if p.peek().kind == tokArrayClose {
		p.next()
		return node, nil
	}

	for {
		valueNode, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, valueNode)

		sep := p.next()
		switch sep.kind {
		case tokComma:
			continue
		case tokArrayClose:
			return node, nil
		default:
			return nil, p.parseErrorAt(sep.offset, "expected ',' or ']' in array")
		}
	}
}
