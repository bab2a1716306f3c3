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
	"net/http"
	"sync"
	"time"

	"github.com/wso2/crm-automation-service/internal/conditions"
	"github.com/wso2/crm-automation-service/internal/database"
	"github.com/wso2/crm-automation-service/internal/system/cache"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
	"github.com/wso2/crm-automation-service/internal/workflows/store"
)

type WorkflowServiceInterface interface {
	AddWorkflow(workflow model.Workflow) error
	GetWorkflows(entityType string) ([]model.Workflow, error)
	GetWorkflow(workflowId string) (model.Workflow, error)
	UpdateWorkflow(workflow model.Workflow) error
	DeleteWorkflow(workflowId string) error
}

// WorkflowService is the default implementation of the WorkflowServiceInterface.
type WorkflowService struct {
	workflowStore store.WorkflowStoreInterface
	workflowCache *cache.Cache
}

var (
	defaultService *WorkflowService
	serviceOnce    sync.Once
)

// GetWorkflowService returns the singleton service backed by the shared
// postgres instance. The engine shares this instance so admin mutations
// invalidate the workflow cache it reads from.
func GetWorkflowService() WorkflowServiceInterface {

	serviceOnce.Do(func() {
		postgresDB := database.GetPostgresInstance()
		defaultService = NewWorkflowService(store.NewWorkflowStore(postgresDB.DB))
	})
	return defaultService
}

// NewWorkflowService creates a service over an explicit workflow store.
func NewWorkflowService(workflowStore store.WorkflowStoreInterface) *WorkflowService {

	return &WorkflowService{
		workflowStore: workflowStore,
		workflowCache: cache.NewCache(constants.RuleCacheTTL),
	}
}

// AddWorkflow adds a new workflow.
func (ws *WorkflowService) AddWorkflow(workflow model.Workflow) error {

	if err := validateWorkflow(workflow); err != nil {
		return err
	}

	now := time.Now().UTC().Unix()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now
	workflow.ExecutionCount = 0

	if err := ws.workflowStore.AddWorkflow(workflow); err != nil {
		return err
	}
	ws.workflowCache.Delete(workflow.EntityType)
	return nil
}

// GetWorkflows fetches all workflows for an entity type.
func (ws *WorkflowService) GetWorkflows(entityType string) ([]model.Workflow, error) {

	return ws.workflowStore.GetWorkflows(entityType)
}

// GetWorkflow fetches a specific workflow.
func (ws *WorkflowService) GetWorkflow(workflowId string) (model.Workflow, error) {

	return ws.workflowStore.GetWorkflow(workflowId)
}

// UpdateWorkflow replaces a workflow definition. Activation state rides on
// the same path; toggling IsActive preserves the accumulated execution
// count because the store never writes that column on update.
func (ws *WorkflowService) UpdateWorkflow(workflow model.Workflow) error {

	if err := validateWorkflow(workflow); err != nil {
		return err
	}

	existing, err := ws.workflowStore.GetWorkflow(workflow.WorkflowId)
	if err != nil {
		return err
	}
	if existing.WorkflowId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.WORKFLOW_NOT_FOUND.Code,
			Message:     errors2.WORKFLOW_NOT_FOUND.Message,
			Description: errors2.WORKFLOW_NOT_FOUND.Description,
		}, http.StatusNotFound)
	}

	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC().Unix()

	if err := ws.workflowStore.UpdateWorkflow(workflow); err != nil {
		return err
	}
	ws.workflowCache.Delete(existing.EntityType)
	ws.workflowCache.Delete(workflow.EntityType)
	return nil
}

// DeleteWorkflow removes a workflow.
func (ws *WorkflowService) DeleteWorkflow(workflowId string) error {

	existing, err := ws.workflowStore.GetWorkflow(workflowId)
	if err != nil {
		return err
	}
	if existing.WorkflowId == "" {
		return nil
	}
	if err := ws.workflowStore.DeleteWorkflow(workflowId); err != nil {
		return err
	}
	ws.workflowCache.Delete(existing.EntityType)
	return nil
}

// loadActiveWorkflows returns the active workflows for an entity type in
// workflow id order, via the short-TTL cache.
func (ws *WorkflowService) loadActiveWorkflows(entityType string) ([]model.Workflow, error) {

	if cached, found := ws.workflowCache.Get(entityType); found {
		if workflows, ok := cached.([]model.Workflow); ok {
			return workflows, nil
		}
	}

	workflows, err := ws.workflowStore.GetWorkflows(entityType)
	if err != nil {
		return nil, err
	}

	active := make([]model.Workflow, 0, len(workflows))
	for _, workflow := range workflows {
		if workflow.IsActive {
			active = append(active, workflow)
		}
	}

	ws.workflowCache.Set(entityType, active)
	return active, nil
}

// validateWorkflow validates a workflow definition.
func validateWorkflow(workflow model.Workflow) error {

	if workflow.WorkflowName == "" || workflow.EntityType == "" {
		return workflowValidationError("Both 'workflow_name' and 'entity_type' must be provided.")
	}

	if !constants.AllowedTriggerTypes[workflow.TriggerType] {
		return workflowValidationError(
			fmt.Sprintf("Unsupported trigger type: %s", workflow.TriggerType))
	}

	if workflow.TriggerType == constants.TriggerOnFieldChange && len(workflow.TriggerConditions) == 0 {
		return workflowValidationError(
			"onFieldChange workflows require at least one trigger condition naming the watched field.")
	}

	for _, criterion := range workflow.TriggerConditions {
		if err := conditions.Validate(criterion); err != nil {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.CONDITION_OP_VALIDATION.Code,
				Message:     errors2.CONDITION_OP_VALIDATION.Message,
				Description: err.Error(),
			}, http.StatusBadRequest)
		}
	}

	if len(workflow.Actions) == 0 {
		return workflowValidationError("A workflow must define at least one action.")
	}
	for _, action := range workflow.Actions {
		if _, err := model.ParseAction(action); err != nil {
			return workflowValidationError(err.Error())
		}
	}

	return nil
}

func workflowValidationError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.WORKFLOW_VALIDATION.Code,
		Message:     errors2.WORKFLOW_VALIDATION.Message,
		Description: description,
	}, http.StatusBadRequest)
}
