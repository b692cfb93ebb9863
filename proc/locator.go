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

	"github.com/yannick-c/expander/tagging"
)

// negClitic is the only contraction marker not introduced by an
// apostrophe ("do" + "n't").
const negClitic = "n't"

// locateMarkers scans a tagged sentence left to right and returns the
// indices of tokens starting a contraction marker: apostrophe-led
// tokens and the negation clitic. Tokens tagged as possessive are
// excluded — "Peter 's house" denotes possession, not contraction, and
// this tag is the only signal separating the two cases.
func locateMarkers(sent tagging.Sentence, possessiveTag string) []int {
	var ans []int
	for i, tok := range sent {
		if strings.HasPrefix(tok.Word, "'") {
			if tok.Tag != possessiveTag {
				ans = append(ans, i)
			}
		} else if tok.Word == negClitic {
			ans = append(ans, i)
		}
	}
	return ans
}
