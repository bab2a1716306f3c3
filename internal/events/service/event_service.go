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

	assignmentProvider "github.com/wso2/crm-automation-service/internal/assignment_rules/provider"
	assignmentService "github.com/wso2/crm-automation-service/internal/assignment_rules/service"
	"github.com/wso2/crm-automation-service/internal/database"
	"github.com/wso2/crm-automation-service/internal/events/model"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
	workflowProvider "github.com/wso2/crm-automation-service/internal/workflows/provider"
	workflowService "github.com/wso2/crm-automation-service/internal/workflows/service"
)

// EventServiceInterface runs the automation pass for record lifecycle
// events posted by the CRUD layer.
type EventServiceInterface interface {
	OnRecordCreated(record recordModel.Record) (model.RecordCreatedResponse, error)
	OnRecordUpdated(previous, current recordModel.Record) (model.RecordUpdatedResponse, error)
}

// EventService wires record events into the assignment rule engine and the
// workflow engine. Event payloads are validated strictly, but once an event
// is accepted the automation itself is best effort: an engine failure is
// logged and never surfaces to the CRUD layer.
type EventService struct {
	assignmentRules assignmentService.AssignmentRuleServiceInterface
	workflowEngine  workflowService.WorkflowEngineInterface
	recordStore     recordStore.RecordStoreInterface
}

var (
	defaultService *EventService
	serviceOnce    sync.Once
)

// GetEventService returns the singleton service over the shared engines.
func GetEventService() EventServiceInterface {

	serviceOnce.Do(func() {
		mongoDB := database.GetMongoInstance()
		defaultService = NewEventService(
			assignmentProvider.NewAssignmentRuleProvider().GetAssignmentRuleService(),
			workflowProvider.NewWorkflowProvider().GetWorkflowEngine(),
			recordStore.NewMongoRecordStore(mongoDB.Database),
		)
	})
	return defaultService
}

// NewEventService creates a service over explicit collaborators.
func NewEventService(assignmentRules assignmentService.AssignmentRuleServiceInterface,
	workflowEngine workflowService.WorkflowEngineInterface,
	records recordStore.RecordStoreInterface) *EventService {

	return &EventService{
		assignmentRules: assignmentRules,
		workflowEngine:  workflowEngine,
		recordStore:     records,
	}
}

// OnRecordCreated assigns an owner through the assignment rules and then
// runs the onCreate workflows. When no rule matches the record stays
// unowned; assignment never blocks the creation flow.
func (es *EventService) OnRecordCreated(record recordModel.Record) (model.RecordCreatedResponse, error) {

	if err := validateEventRecord(record); err != nil {
		return model.RecordCreatedResponse{}, err
	}

	logger := log.GetLogger()
	response := model.RecordCreatedResponse{
		EntityType: record.EntityType,
		RecordId:   record.RecordId,
	}

	if ownerId, matched := es.assignmentRules.Assign(record); matched {
		if err := es.recordStore.SetOwner(record.EntityType, record.RecordId, ownerId); err != nil {
			logger.Error(fmt.Sprintf("Failed to persist owner for record: %s", record.RecordId),
				log.Error(err))
		} else {
			record.OwnerId = ownerId
			response.OwnerId = ownerId
			response.Assigned = true
			logger.Audit(log.AuditEvent{
				InitiatorType: log.InitiatorTypeSystem,
				TargetID:      record.RecordId,
				TargetType:    log.TargetTypeRecord,
				ActionID:      log.ActionAssignOwner,
				Data: map[string]string{
					"entity_type": record.EntityType,
					"owner_id":    ownerId,
				},
			})
		}
	}

	es.workflowEngine.HandleRecordCreated(record)
	return response, nil
}

// OnRecordUpdated runs the update-triggered workflows against the new
// snapshot.
func (es *EventService) OnRecordUpdated(previous, current recordModel.Record) (model.RecordUpdatedResponse, error) {

	if err := validateEventRecord(current); err != nil {
		return model.RecordUpdatedResponse{}, err
	}
	if previous.RecordId != current.RecordId || previous.EntityType != current.EntityType {
		return model.RecordUpdatedResponse{}, invalidEventError(
			"The previous and current snapshots must describe the same record.")
	}

	es.workflowEngine.HandleRecordUpdated(previous, current)
	return model.RecordUpdatedResponse{
		EntityType: current.EntityType,
		RecordId:   current.RecordId,
	}, nil
}

func validateEventRecord(record recordModel.Record) error {

	if record.EntityType == "" || record.RecordId == "" {
		return invalidEventError("The event record must carry 'entity_type' and 'record_id'.")
	}
	return nil
}

func invalidEventError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_EVENT.Code,
		Message:     errors2.INVALID_EVENT.Message,
		Description: description,
	}, http.StatusBadRequest)
}
