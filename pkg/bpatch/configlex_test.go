/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexConfigTokens(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kinds []tokenKind
		focus bool
	}{
		{
			name:  "punctuation",
			input: `{}[]:,`,
			kinds: []tokenKind{tokObjectOpen, tokObjectClose, tokArrayOpen, tokArrayClose, tokColon, tokComma, tokEOF},
		},
		{
			name:  "literals",
			input: `true false null`,
			kinds: []tokenKind{tokTrue, tokFalse, tokNull, tokEOF},
		},
		{
			name:  "numbers",
			input: `42 -7 3.14 1e10 -2.5e-3`,
			kinds: []tokenKind{tokNumber, tokNumber, tokNumber, tokNumber, tokNumber, tokEOF},
		},
		{
			name:  "string",
			input: `"hello"`,
			kinds: []tokenKind{tokString, tokEOF},
		},
	}

	focussed := false
	for _, tc := range cases {
		if tc.focus {
			focussed = true
			break
		}
	}

	for _, tc := range cases {
		if focussed && !tc.focus {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			l := lexConfig([]byte(tc.input))
			var got []tokenKind
			for {
				tok := l.nextToken()
				got = append(got, tok.kind)
				if tok.kind == tokEOF || tok.kind == tokError {
					break
				}
			}
			require.Equal(t, tc.kinds, got)
		})
	}

	if focussed {
		t.Fatalf("testcase(s) still focussed")
	}
}

func TestLexStringEscapes(t *testing.T) {
	l := lexConfig([]byte(`"a\nb\tc\"d"`))
	tok := l.nextToken()
	require.Equal(t, tokString, tok.kind)
	require.Equal(t, "a\nb\tc\"d", tok.val)
}

func TestLexStringRejectsUnicodeEscape(t *testing.T) {
	l := lexConfig([]byte("\"\\uABCD\""))
	tok := l.nextToken()
	require.Equal(t, tokError, tok.kind)
}

func TestLexStringRejectsUnterminated(t *testing.T) {
	l := lexConfig([]byte(`"abc`))
	tok := l.nextToken()
	require.Equal(t, tokError, tok.kind)
}

func TestLexNumberRejectsMalformed(t *testing.T) {
	cases := []string{"-", "1.", "1e"}
	for _, in := range cases {
		l := lexConfig([]byte(in))
		tok := l.nextToken()
		require.Equal(t, tokError, tok.kind, "input %q", in)
	}
}

func TestDecodeStringInPlacePadsSlack(t *testing.T) {
	buf := []byte(`a\nb`)
	decodedLen, err := decodeStringInPlace(buf, 0, len(buf))
	require.NoError(t, err)
	require.Equal(t, 3, decodedLen)
	require.Equal(t, byte(' '), buf[3])
}

func TestLineColumn(t *testing.T) {
	cases := []struct {
		name       string
		buf        string
		offset     int
		line, col  int
	}{
		{name: "start", buf: "abc", offset: 0, line: 1, col: 1},
		{name: "lf-only", buf: "ab\ncd", offset: 4, line: 2, col: 2},
		{name: "cr-only", buf: "ab\rcd", offset: 4, line: 2, col: 2},
		{name: "crlf", buf: "ab\r\ncd", offset: 5, line: 2, col: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, col := lineColumn([]byte(tc.buf), tc.offset)
			require.Equal(t, tc.line, line)
			require.Equal(t, tc.col, col)
		})
	}
}
