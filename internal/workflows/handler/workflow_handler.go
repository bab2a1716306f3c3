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
	"github.com/wso2/crm-automation-service/internal/system/authn"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	cascontext "github.com/wso2/crm-automation-service/internal/system/context"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/system/security"
	"github.com/wso2/crm-automation-service/internal/system/utils"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
	"github.com/wso2/crm-automation-service/internal/workflows/provider"
)

type WorkflowHandler struct{}

func NewWorkflowHandler() *WorkflowHandler {

	return &WorkflowHandler{}
}

// AddWorkflow handles adding a new workflow
func (wh *WorkflowHandler) AddWorkflow(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "workflows:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	workflowInRequest, ok := decodeWorkflowRequest(w, r)
	if !ok {
		return
	}

	workflow := model.Workflow{
		WorkflowId:        uuid.New().String(),
		WorkflowName:      workflowInRequest.WorkflowName,
		EntityType:        strings.ToLower(workflowInRequest.EntityType),
		TriggerType:       workflowInRequest.TriggerType,
		TriggerConditions: workflowInRequest.TriggerConditions,
		Actions:           workflowInRequest.Actions,
		IsActive:          workflowInRequest.IsActive,
	}

	workflowService := provider.NewWorkflowProvider().GetWorkflowService()
	if err := workflowService.AddWorkflow(workflow); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      workflow.WorkflowId,
		TargetType:    log.TargetTypeWorkflow,
		ActionID:      log.ActionAddWorkflow,
		TraceID:       cascontext.GetTraceID(r.Context()),
		Data: map[string]string{
			"workflow_name": workflow.WorkflowName,
			"entity_type":   workflow.EntityType,
			"trigger_type":  workflow.TriggerType,
		},
	})

	utils.RespondJSON(w, http.StatusCreated, toAPIResponse(workflow), constants.WorkflowResource)
}

// GetWorkflows handles fetching all workflows for an entity type
func (wh *WorkflowHandler) GetWorkflows(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "workflows:read")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	entityType := strings.ToLower(r.URL.Query().Get("entity_type"))
	workflowService := provider.NewWorkflowProvider().GetWorkflowService()
	workflows, err := workflowService.GetWorkflows(entityType)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	response := make([]model.WorkflowAPIResponse, 0, len(workflows))
	for _, workflow := range workflows {
		response = append(response, toAPIResponse(workflow))
	}
	utils.RespondJSON(w, http.StatusOK, response, constants.WorkflowResource)
}

// GetWorkflow handles fetching a single workflow, execution count included
func (wh *WorkflowHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "workflows:read")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	workflowId := extractWorkflowId(r.URL.Path)
	workflowService := provider.NewWorkflowProvider().GetWorkflowService()
	workflow, err := workflowService.GetWorkflow(workflowId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if workflow.WorkflowId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.WORKFLOW_NOT_FOUND.Code,
			Message:     errors2.WORKFLOW_NOT_FOUND.Message,
			Description: errors2.WORKFLOW_NOT_FOUND.Description,
		}, http.StatusNotFound)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, toAPIResponse(workflow), constants.WorkflowResource)
}

// UpdateWorkflow handles replacing a workflow definition
func (wh *WorkflowHandler) UpdateWorkflow(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "workflows:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	workflowInRequest, ok := decodeWorkflowRequest(w, r)
	if !ok {
		return
	}

	workflow := model.Workflow{
		WorkflowId:        extractWorkflowId(r.URL.Path),
		WorkflowName:      workflowInRequest.WorkflowName,
		EntityType:        strings.ToLower(workflowInRequest.EntityType),
		TriggerType:       workflowInRequest.TriggerType,
		TriggerConditions: workflowInRequest.TriggerConditions,
		Actions:           workflowInRequest.Actions,
		IsActive:          workflowInRequest.IsActive,
	}

	workflowService := provider.NewWorkflowProvider().GetWorkflowService()
	if err := workflowService.UpdateWorkflow(workflow); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      workflow.WorkflowId,
		TargetType:    log.TargetTypeWorkflow,
		ActionID:      log.ActionUpdateWorkflow,
		TraceID:       cascontext.GetTraceID(r.Context()),
	})

	utils.RespondJSON(w, http.StatusOK, toAPIResponse(workflow), constants.WorkflowResource)
}

// DeleteWorkflow handles removing a workflow
func (wh *WorkflowHandler) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "workflows:delete")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	workflowId := extractWorkflowId(r.URL.Path)
	workflowService := provider.NewWorkflowProvider().GetWorkflowService()
	if err := workflowService.DeleteWorkflow(workflowId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      workflowId,
		TargetType:    log.TargetTypeWorkflow,
		ActionID:      log.ActionDeleteWorkflow,
		TraceID:       cascontext.GetTraceID(r.Context()),
	})

	utils.RespondJSON(w, http.StatusNoContent, nil, constants.WorkflowResource)
}

func decodeWorkflowRequest(w http.ResponseWriter, r *http.Request) (model.WorkflowAPIRequest, bool) {

	var workflowInRequest model.WorkflowAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&workflowInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "workflow"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return model.WorkflowAPIRequest{}, false
	}
	return workflowInRequest, true
}

func toAPIResponse(workflow model.Workflow) model.WorkflowAPIResponse {
	return model.WorkflowAPIResponse{
		WorkflowId:        workflow.WorkflowId,
		WorkflowName:      workflow.WorkflowName,
		EntityType:        workflow.EntityType,
		TriggerType:       workflow.TriggerType,
		TriggerConditions: workflow.TriggerConditions,
		Actions:           workflow.Actions,
		IsActive:          workflow.IsActive,
		ExecutionCount:    workflow.ExecutionCount,
	}
}

func extractWorkflowId(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	return parts[len(parts)-1]
}
