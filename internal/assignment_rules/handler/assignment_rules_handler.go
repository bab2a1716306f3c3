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

	"github.com/google/uuid"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/provider"
	"github.com/wso2/crm-automation-service/internal/system/authn"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	cascontext "github.com/wso2/crm-automation-service/internal/system/context"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/system/security"
	"github.com/wso2/crm-automation-service/internal/system/utils"
)

type AssignmentRulesHandler struct{}

func NewAssignmentRulesHandler() *AssignmentRulesHandler {

	return &AssignmentRulesHandler{}
}

// AddAssignmentRule handles adding a new rule
func (arh *AssignmentRulesHandler) AddAssignmentRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "assignment_rules:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var ruleInRequest model.AssignmentRuleAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&ruleInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "assignment rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	rule := model.AssignmentRule{
		RuleId:     uuid.New().String(),
		RuleName:   ruleInRequest.RuleName,
		EntityType: strings.ToLower(ruleInRequest.EntityType),
		Priority:   ruleInRequest.Priority,
		Criterion:  ruleInRequest.Criterion,
		AssignedTo: ruleInRequest.AssignedTo,
		IsActive:   ruleInRequest.IsActive,
	}

	ruleProvider := provider.NewAssignmentRuleProvider()
	ruleService := ruleProvider.GetAssignmentRuleService()
	if err := ruleService.AddAssignmentRule(rule); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := cascontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeAssignmentRule,
		ActionID:      log.ActionAddAssignmentRule,
		TraceID:       traceID,
		Data: map[string]string{
			"rule_name":   rule.RuleName,
			"entity_type": rule.EntityType,
			"assigned_to": rule.AssignedTo,
		},
	})

	utils.RespondJSON(w, http.StatusCreated, toAPIResponse(rule), constants.AssignmentRuleResource)
}

// GetAssignmentRules handles fetching all rules for an entity type
func (arh *AssignmentRulesHandler) GetAssignmentRules(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "assignment_rules:read")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	entityType := strings.ToLower(r.URL.Query().Get("entity_type"))
	ruleService := provider.NewAssignmentRuleProvider().GetAssignmentRuleService()
	rules, err := ruleService.GetAssignmentRules(entityType)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	response := make([]model.AssignmentRuleAPIResponse, 0, len(rules))
	for _, rule := range rules {
		response = append(response, toAPIResponse(rule))
	}
	utils.RespondJSON(w, http.StatusOK, response, constants.AssignmentRuleResource)
}

// GetAssignmentRule handles fetching a single rule
func (arh *AssignmentRulesHandler) GetAssignmentRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "assignment_rules:read")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractRuleId(r.URL.Path)
	ruleService := provider.NewAssignmentRuleProvider().GetAssignmentRuleService()
	rule, err := ruleService.GetAssignmentRule(ruleId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if rule.RuleId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ASSIGNMENT_RULE_NOT_FOUND.Code,
			Message:     errors2.ASSIGNMENT_RULE_NOT_FOUND.Message,
			Description: errors2.ASSIGNMENT_RULE_NOT_FOUND.Description,
		}, http.StatusNotFound)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, toAPIResponse(rule), constants.AssignmentRuleResource)
}

// UpdateAssignmentRule handles replacing a rule definition
func (arh *AssignmentRulesHandler) UpdateAssignmentRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "assignment_rules:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var ruleInRequest model.AssignmentRuleAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&ruleInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "assignment rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	rule := model.AssignmentRule{
		RuleId:     extractRuleId(r.URL.Path),
		RuleName:   ruleInRequest.RuleName,
		EntityType: strings.ToLower(ruleInRequest.EntityType),
		Priority:   ruleInRequest.Priority,
		Criterion:  ruleInRequest.Criterion,
		AssignedTo: ruleInRequest.AssignedTo,
		IsActive:   ruleInRequest.IsActive,
	}

	ruleService := provider.NewAssignmentRuleProvider().GetAssignmentRuleService()
	if err := ruleService.UpdateAssignmentRule(rule); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeAssignmentRule,
		ActionID:      log.ActionUpdateAssignmentRule,
		TraceID:       cascontext.GetTraceID(r.Context()),
	})

	utils.RespondJSON(w, http.StatusOK, toAPIResponse(rule), constants.AssignmentRuleResource)
}

// DeleteAssignmentRule handles removing a rule
func (arh *AssignmentRulesHandler) DeleteAssignmentRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "assignment_rules:delete")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractRuleId(r.URL.Path)
	ruleService := provider.NewAssignmentRuleProvider().GetAssignmentRuleService()
	if err := ruleService.DeleteAssignmentRule(ruleId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeAssignmentRule,
		ActionID:      log.ActionDeleteAssignmentRule,
		TraceID:       cascontext.GetTraceID(r.Context()),
	})

	utils.RespondJSON(w, http.StatusNoContent, nil, constants.AssignmentRuleResource)
}

func toAPIResponse(rule model.AssignmentRule) model.AssignmentRuleAPIResponse {
	return model.AssignmentRuleAPIResponse{
		RuleId:     rule.RuleId,
		RuleName:   rule.RuleName,
		EntityType: rule.EntityType,
		Priority:   rule.Priority,
		Criterion:  rule.Criterion,
		AssignedTo: rule.AssignedTo,
		IsActive:   rule.IsActive,
	}
}

func extractRuleId(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	return parts[len(parts)-1]
}
