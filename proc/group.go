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
	"github.com/rs/zerolog/log"
)

// groupSpans merges ordered marker indices into maximal runs of
// consecutive positions ("Who 'd 've" yields one run, not two) and
// prepends the index of the word hosting the contraction to each run.
// A run starting at position 0 has no host word; such a sentence cannot
// come from well-formed tagging, so the span is dropped with a warning
// rather than indexed out of bounds.
func groupSpans(markers []int) [][]int {
	var ans [][]int
	var run []int
	flush := func() {
		if run == nil {
			return
		}
		if run[0] == 0 {
			log.Warn().
				Ints("markers", run).
				Msg("contraction marker at sentence start has no host word, skipping span")

		} else {
			span := make([]int, 0, len(run)+1)
			span = append(span, run[0]-1)
			ans = append(ans, append(span, run...))
		}
		run = nil
	}
	for _, idx := range markers {
		if run != nil && idx == run[len(run)-1]+1 {
			run = append(run, idx)
			continue
		}
		flush()
		run = []int{idx}
	}
	flush()
	return ans
}
