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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wso2/crm-automation-service/internal/duplicates/model"
	"github.com/wso2/crm-automation-service/internal/duplicates/provider"
	"github.com/wso2/crm-automation-service/internal/system/authn"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	cascontext "github.com/wso2/crm-automation-service/internal/system/context"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/system/security"
	"github.com/wso2/crm-automation-service/internal/system/utils"
)

type DuplicatesHandler struct{}

func NewDuplicatesHandler() *DuplicatesHandler {

	return &DuplicatesHandler{}
}

// ScanDuplicates handles a duplicate scan request
func (dh *DuplicatesHandler) ScanDuplicates(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "duplicates:scan")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var scanRequest model.ScanRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scanRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "scan request"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	scanService := provider.NewDuplicateProvider().GetScanService()
	response, err := scanService.Scan(strings.ToLower(scanRequest.EntityType), scanRequest.Threshold)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      response.EntityType,
		TargetType:    log.TargetTypeRecord,
		ActionID:      log.ActionScanDuplicates,
		TraceID:       cascontext.GetTraceID(r.Context()),
	})

	utils.RespondJSON(w, http.StatusOK, response, constants.DuplicateScanResource)
}

// MergeRecords handles a merge decision
func (dh *DuplicatesHandler) MergeRecords(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "duplicates:merge")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var decision model.MergeDecision
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&decision); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "merge decision"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}
	decision.EntityType = strings.ToLower(decision.EntityType)

	mergeService := provider.NewDuplicateProvider().GetMergeService()
	result, err := mergeService.Merge(decision)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      result.PrimaryId,
		TargetType:    log.TargetTypeMerge,
		ActionID:      log.ActionMergeRecords,
		TraceID:       cascontext.GetTraceID(r.Context()),
		Data: map[string]string{
			"entity_type": decision.EntityType,
			"retired":     strings.Join(result.RetiredIds, ","),
		},
	})

	utils.RespondJSON(w, http.StatusOK, result, constants.MergeResource)
}
