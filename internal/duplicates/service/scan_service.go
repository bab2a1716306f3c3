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

import (
	"fmt"
	"math"
	"net/http"
	"sort"

	"github.com/wso2/crm-automation-service/internal/duplicates/model"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// scoredField describes one field the scorer compares, with the record
// fields it reads (first present wins) and how similarity is measured.
type scoredField struct {
	name    string
	sources []string
	weight  float64
	exact   bool
}

// Field weights reflect how strongly a match on that field suggests the
// records describe the same real-world entity. Email is compared exactly;
// a one-character email difference is a different mailbox, not a typo.
var scoredFields = []scoredField{
	{name: "name", sources: []string{"name", "title"}, weight: 40},
	{name: "email", sources: []string{"email"}, weight: 35, exact: true},
	{name: "company", sources: []string{"company", "account_name"}, weight: 25},
}

// matchedFieldThreshold is the per-field similarity at which a field is
// reported as matched on a candidate pair.
const matchedFieldThreshold = 0.9

// ScanServiceInterface finds likely duplicate records within an entity type.
type ScanServiceInterface interface {
	Scan(entityType string, threshold int) (model.ScanResponse, error)
}

// ScanService scores every record pair of an entity type and reports the
// pairs at or above the requested threshold.
type ScanService struct {
	recordStore recordStore.RecordStoreInterface
}

// NewScanService creates a scan service over a record store.
func NewScanService(records recordStore.RecordStoreInterface) *ScanService {

	return &ScanService{recordStore: records}
}

// Scan compares all non-retired records of the entity type pairwise. The
// threshold must fall within [50, 100]; scores are integers in [0, 100].
// Scanning never mutates records.
func (ss *ScanService) Scan(entityType string, threshold int) (model.ScanResponse, error) {

	if threshold < constants.MinScanThreshold || threshold > constants.MaxScanThreshold {
		return model.ScanResponse{}, errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.INVALID_SCAN_THRESHOLD.Code,
			Message: errors2.INVALID_SCAN_THRESHOLD.Message,
			Description: fmt.Sprintf("Threshold must be between %d and %d, got %d.",
				constants.MinScanThreshold, constants.MaxScanThreshold, threshold),
		}, http.StatusBadRequest)
	}

	records, err := ss.recordStore.Find(entityType)
	if err != nil {
		return model.ScanResponse{}, errors2.NewServerError(errors2.SCAN_DUPLICATES, err)
	}

	var pairs []model.DuplicateCandidatePair
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			score, matchedFields := ScorePair(records[i], records[j])
			if score < threshold {
				continue
			}
			idA, idB := records[i].RecordId, records[j].RecordId
			if idB < idA {
				idA, idB = idB, idA
			}
			pairs = append(pairs, model.DuplicateCandidatePair{
				RecordIdA:     idA,
				RecordIdB:     idB,
				Score:         score,
				MatchedFields: matchedFields,
			})
		}
	}

	// Highest scores first; id order breaks ties so repeated scans over
	// the same data always report pairs identically.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].RecordIdA != pairs[j].RecordIdA {
			return pairs[i].RecordIdA < pairs[j].RecordIdA
		}
		return pairs[i].RecordIdB < pairs[j].RecordIdB
	})

	log.GetLogger().Info(fmt.Sprintf("Duplicate scan over %s found %d candidate pairs.",
		entityType, len(pairs)), log.Int("records", len(records)), log.Int("threshold", threshold))

	return model.ScanResponse{
		EntityType: entityType,
		Threshold:  threshold,
		Pairs:      pairs,
	}, nil
}

// ScorePair computes the similarity score for two records as a weighted
// average over the scored fields present on both, scaled to [0, 100].
// Fields missing from either record are left out of the average rather
// than counted as mismatches; when no scored field is present on both
// sides the pair scores zero. A pair only scores 100 when every compared
// field is an exact match, so long near-identical values cannot round up
// to a perfect score.
func ScorePair(a, b recordModel.Record) (int, []string) {

	var weightedSum, weightTotal float64
	var matchedFields []string
	allExact := true

	for _, field := range scoredFields {
		valueA, okA := firstPresent(a, field.sources)
		valueB, okB := firstPresent(b, field.sources)
		if !okA || !okB {
			continue
		}

		var similarity float64
		if field.exact {
			similarity = exactSimilarity(valueA, valueB)
		} else {
			similarity = textSimilarity(valueA, valueB)
		}

		weightedSum += field.weight * similarity
		weightTotal += field.weight
		if similarity < 1 {
			allExact = false
		}
		if similarity >= matchedFieldThreshold {
			matchedFields = append(matchedFields, field.name)
		}
	}

	if weightTotal == 0 {
		return 0, nil
	}

	score := int(math.Round(100 * weightedSum / weightTotal))
	if score == 100 && !allExact {
		score = 99
	}
	return score, matchedFields
}

func firstPresent(record recordModel.Record, sources []string) (string, bool) {

	for _, source := range sources {
		if value, ok := record.FieldString(source); ok && value != "" {
			return value, true
		}
	}
	return "", false
}
