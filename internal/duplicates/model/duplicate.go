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

package model

// DuplicateCandidatePair is a pair of records whose similarity score met
// the scan threshold. RecordIdA always sorts before RecordIdB so a pair is
// reported the same way regardless of comparison order.
type DuplicateCandidatePair struct {
	RecordIdA     string   `json:"record_id_a"`
	RecordIdB     string   `json:"record_id_b"`
	Score         int      `json:"score"`
	MatchedFields []string `json:"matched_fields"`
}

// ScanRequest asks for a duplicate scan over one entity type.
type ScanRequest struct {
	EntityType string `json:"entity_type"`
	Threshold  int    `json:"threshold"`
}

// ScanResponse carries the candidate pairs found by a scan.
type ScanResponse struct {
	EntityType string                   `json:"entity_type"`
	Threshold  int                      `json:"threshold"`
	Pairs      []DuplicateCandidatePair `json:"pairs"`
}

// MergeDecision describes how a set of duplicates collapses into one
// surviving record. FieldSelections maps a field name to the record id
// whose value wins; unselected fields keep the primary's value.
type MergeDecision struct {
	EntityType      string            `json:"entity_type"`
	PrimaryId       string            `json:"primary_id"`
	DuplicateIds    []string          `json:"duplicate_ids"`
	FieldSelections map[string]string `json:"field_selections"`
}

// MergeResult reports the outcome of a completed merge.
type MergeResult struct {
	PrimaryId  string   `json:"primary_id"`
	RetiredIds []string `json:"retired_ids"`
}
