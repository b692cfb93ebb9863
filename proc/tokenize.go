// Copyright 2018 Yannick Couzinié
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package proc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fusedWords are written as one word but count as two tokens in the
// Penn treebank tokenization an expansion phrase must line up with.
var fusedWords = map[string][]string{
	"cannot": {"can", "not"},
	"gonna":  {"gon", "na"},
	"gotta":  {"got", "ta"},
	"lemme":  {"lem", "me"},
	"wanna":  {"wan", "na"},
}

// splitPhrase tokenizes a candidate expansion phrase into the words
// that replace the span tokens one by one.
func splitPhrase(phrase string) []string {
	fields := strings.Fields(phrase)
	ans := make([]string, 0, len(fields))
	for _, f := range fields {
		parts, ok := fusedWords[strings.ToLower(f)]
		if !ok {
			ans = append(ans, f)
			continue
		}
		if startsUpper(f) {
			ans = append(ans, capitalize(parts[0]))
			ans = append(ans, parts[1:]...)

		} else {
			ans = append(ans, parts...)
		}
	}
	return ans
}

// JoinWords renders a token sequence back into a plain sentence string.
// The one tokenization artifact repaired here is the space left in
// front of an apostrophe when a span stayed unexpanded ("It 's cat"
// becomes "It's cat" again).
func JoinWords(words []string) string {
	return strings.ReplaceAll(strings.Join(words, " "), " '", "'")
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
