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
	"errors"
	"fmt"
	"net/http"

	"github.com/wso2/crm-automation-service/internal/duplicates/model"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// MergeServiceInterface collapses duplicate records into one survivor.
type MergeServiceInterface interface {
	Merge(decision model.MergeDecision) (model.MergeResult, error)
}

// MergeService applies merge decisions. Every precondition is checked
// before the first write so a rejected merge leaves all records untouched.
type MergeService struct {
	recordStore recordStore.RecordStoreInterface
}

// NewMergeService creates a merge service over a record store.
func NewMergeService(records recordStore.RecordStoreInterface) *MergeService {

	return &MergeService{recordStore: records}
}

// Merge validates the decision, folds the selected field values into the
// primary record, repoints references from each duplicate to the primary
// and retires the duplicates. Retired records stay in storage and are
// excluded from future scans.
func (ms *MergeService) Merge(decision model.MergeDecision) (model.MergeResult, error) {

	primary, duplicates, err := ms.validateDecision(decision)
	if err != nil {
		return model.MergeResult{}, err
	}

	mergedFields := buildMergedFields(decision, primary, duplicates)

	if _, err := ms.recordStore.Update(decision.EntityType, decision.PrimaryId, mergedFields); err != nil {
		return model.MergeResult{}, errors2.NewServerError(errors2.MERGE_RECORDS, err)
	}

	retiredIds := make([]string, 0, len(decision.DuplicateIds))
	for _, duplicateId := range decision.DuplicateIds {
		if err := ms.recordStore.RepointReferences(duplicateId, decision.PrimaryId); err != nil {
			return model.MergeResult{}, errors2.NewServerError(errors2.MERGE_RECORDS, err)
		}
		if err := ms.recordStore.Retire(decision.EntityType, duplicateId); err != nil {
			return model.MergeResult{}, errors2.NewServerError(errors2.MERGE_RECORDS, err)
		}
		retiredIds = append(retiredIds, duplicateId)
	}

	log.GetLogger().Info(fmt.Sprintf("Merged %d duplicates into record: %s",
		len(retiredIds), decision.PrimaryId), log.String("entityType", decision.EntityType))

	return model.MergeResult{
		PrimaryId:  decision.PrimaryId,
		RetiredIds: retiredIds,
	}, nil
}

// validateDecision checks the whole decision up front and loads the
// records it touches.
func (ms *MergeService) validateDecision(decision model.MergeDecision) (
	recordModel.Record, map[string]recordModel.Record, error) {

	var zero recordModel.Record

	if decision.EntityType == "" || decision.PrimaryId == "" || len(decision.DuplicateIds) == 0 {
		return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_MERGE_TARGET.Code,
			Message:     errors2.INVALID_MERGE_TARGET.Message,
			Description: "'entity_type', 'primary_id' and at least one duplicate id must be provided.",
		}, http.StatusBadRequest)
	}

	seen := map[string]bool{}
	for _, duplicateId := range decision.DuplicateIds {
		if duplicateId == decision.PrimaryId {
			return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_MERGE_TARGET.Code,
				Message:     errors2.INVALID_MERGE_TARGET.Message,
				Description: "The primary record cannot appear among the duplicates.",
			}, http.StatusBadRequest)
		}
		if seen[duplicateId] {
			return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_MERGE_TARGET.Code,
				Message:     errors2.INVALID_MERGE_TARGET.Message,
				Description: fmt.Sprintf("Duplicate id listed twice: %s", duplicateId),
			}, http.StatusBadRequest)
		}
		seen[duplicateId] = true
	}

	primary, err := ms.recordStore.Get(decision.EntityType, decision.PrimaryId)
	if err != nil {
		if !errors.Is(err, recordStore.ErrRecordNotFound) {
			return zero, nil, err
		}
		return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.RECORD_NOT_FOUND.Code,
			Message:     errors2.RECORD_NOT_FOUND.Message,
			Description: fmt.Sprintf("Primary record not found: %s", decision.PrimaryId),
		}, http.StatusNotFound)
	}
	if primary.IsRetired {
		return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.RECORD_NOT_FOUND.Code,
			Message:     errors2.RECORD_NOT_FOUND.Message,
			Description: fmt.Sprintf("Primary record not found: %s", decision.PrimaryId),
		}, http.StatusNotFound)
	}

	duplicates := make(map[string]recordModel.Record, len(decision.DuplicateIds))
	for _, duplicateId := range decision.DuplicateIds {
		duplicate, err := ms.recordStore.Get(decision.EntityType, duplicateId)
		if err != nil && !errors.Is(err, recordStore.ErrRecordNotFound) {
			return zero, nil, err
		}
		if err != nil || duplicate.IsRetired {
			return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.STALE_DUPLICATE_REFERENCE.Code,
				Message:     errors2.STALE_DUPLICATE_REFERENCE.Message,
				Description: fmt.Sprintf("Duplicate record missing or already retired: %s", duplicateId),
			}, http.StatusConflict)
		}
		duplicates[duplicateId] = duplicate
	}

	for field, sourceId := range decision.FieldSelections {
		if sourceId != decision.PrimaryId && !seen[sourceId] {
			return zero, nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:    errors2.INVALID_FIELD_SELECTION.Code,
				Message: errors2.INVALID_FIELD_SELECTION.Message,
				Description: fmt.Sprintf(
					"Field '%s' selects record %s, which is not part of the merge.", field, sourceId),
			}, http.StatusBadRequest)
		}
	}

	return primary, duplicates, nil
}

// buildMergedFields assembles the surviving field set. The primary's values
// win by default; a field selection pulls that field's value from the named
// record instead. Fields the primary lacks are adopted from the first
// duplicate, in decision order, that carries them.
func buildMergedFields(decision model.MergeDecision, primary recordModel.Record,
	duplicates map[string]recordModel.Record) map[string]interface{} {

	merged := make(map[string]interface{}, len(primary.Fields))
	for field, value := range primary.Fields {
		merged[field] = value
	}

	for _, duplicateId := range decision.DuplicateIds {
		for field, value := range duplicates[duplicateId].Fields {
			if _, present := merged[field]; !present {
				merged[field] = value
			}
		}
	}

	for field, sourceId := range decision.FieldSelections {
		if sourceId == decision.PrimaryId {
			continue
		}
		if value, present := duplicates[sourceId].Fields[field]; present {
			merged[field] = value
		}
	}

	return merged
}
