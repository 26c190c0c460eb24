/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// Reserved config keys (spec.md §4.3). Named as constants rather than
// scattered string literals, following original_source/srcbpatch's
// dictionarykeywords.h.
const (
	keyDictionary  = "dictionary"
	keyDecimal     = "decimal"
	keyHexadecimal = "hexadecimal"
	keyText        = "text"
	keyFile        = "file"
	keyComposite   = "composite"
	keyTodo        = "todo"
	keyReplace     = "replace"
)
