/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import "strings"

// normalize lowercases and collapses interior whitespace so formatting
// differences do not count against similarity.
func normalize(value string) string {

	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// textSimilarity returns a similarity in [0, 1] between two normalized
// strings: 1 minus the Levenshtein distance over the longer length.
func textSimilarity(a, b string) float64 {

	a = normalize(a)
	b = normalize(b)
	if a == b {
		return 1
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longer)
}

// exactSimilarity returns 1 when the normalized strings are identical and
// 0 otherwise. Used for fields where near-misses mean different values.
func exactSimilarity(a, b string) float64 {

	if normalize(a) == normalize(b) {
		return 1
	}
	return 0
}

// levenshtein computes the edit distance with a two-row table.
func levenshtein(a, b string) int {

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {

	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
