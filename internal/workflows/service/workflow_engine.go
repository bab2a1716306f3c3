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
	"context"
	"fmt"
	"sync"

	"github.com/wso2/crm-automation-service/internal/capabilities"
	"github.com/wso2/crm-automation-service/internal/conditions"
	"github.com/wso2/crm-automation-service/internal/database"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
)

// WorkflowEngineInterface reacts to record lifecycle events by executing
// matching workflows.
type WorkflowEngineInterface interface {
	HandleRecordCreated(record recordModel.Record)
	HandleRecordUpdated(previous, current recordModel.Record)
}

// WorkflowEngine matches record events against active workflows and runs
// their actions. Execution is best effort end to end: a failed action never
// stops the remaining actions of its workflow, and a failed workflow never
// stops the remaining matched workflows.
type WorkflowEngine struct {
	workflowService *WorkflowService
	recordStore     recordStore.RecordStoreInterface
	tasks           capabilities.TaskCapability
	email           capabilities.EmailCapability
	notifications   capabilities.NotificationCapability
}

var (
	defaultEngine *WorkflowEngine
	engineOnce    sync.Once
)

// GetWorkflowEngine returns the singleton engine wired to the shared
// workflow service, the mongo record store and the logging capabilities.
func GetWorkflowEngine() WorkflowEngineInterface {

	engineOnce.Do(func() {
		workflowService, _ := GetWorkflowService().(*WorkflowService)
		mongoDB := database.GetMongoInstance()
		defaultEngine = NewWorkflowEngine(
			workflowService,
			recordStore.NewMongoRecordStore(mongoDB.Database),
			capabilities.NewLoggingTaskCapability(),
			capabilities.NewLoggingEmailCapability(),
			capabilities.NewLoggingNotificationCapability(),
		)
	})
	return defaultEngine
}

// NewWorkflowEngine creates an engine over explicit collaborators.
func NewWorkflowEngine(workflowService *WorkflowService, records recordStore.RecordStoreInterface,
	tasks capabilities.TaskCapability, email capabilities.EmailCapability,
	notifications capabilities.NotificationCapability) *WorkflowEngine {

	return &WorkflowEngine{
		workflowService: workflowService,
		recordStore:     records,
		tasks:           tasks,
		email:           email,
		notifications:   notifications,
	}
}

// HandleRecordCreated runs every active onCreate workflow whose trigger
// conditions all hold on the new record.
func (we *WorkflowEngine) HandleRecordCreated(record recordModel.Record) {

	we.dispatch(constants.TriggerOnCreate, nil, record, make(map[string]bool))
}

// HandleRecordUpdated runs the active onUpdate workflows, plus the
// onStatusChange workflows when the status field changed and the
// onFieldChange workflows when a watched field changed.
func (we *WorkflowEngine) HandleRecordUpdated(previous, current recordModel.Record) {

	we.dispatch(constants.TriggerOnUpdate, &previous, current, make(map[string]bool))
}

// dispatch matches and executes workflows for one event. The inProgress set
// carries the workflow ids already executing in this event chain: when an
// updateField action re-dispatches, workflows in the set are skipped so a
// workflow whose own write re-satisfies its trigger cannot run twice.
func (we *WorkflowEngine) dispatch(triggerType string, previous *recordModel.Record,
	current recordModel.Record, inProgress map[string]bool) {

	logger := log.GetLogger()
	workflows, err := we.workflowService.loadActiveWorkflows(current.EntityType)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load workflows for entity type: %s",
			current.EntityType), log.Error(err))
		return
	}

	// loadActiveWorkflows returns workflows in id order, which fixes the
	// execution order when several workflows match the same event.
	for _, workflow := range workflows {
		if inProgress[workflow.WorkflowId] {
			logger.Debug(fmt.Sprintf("Skipping workflow already in progress: %s", workflow.WorkflowId))
			continue
		}
		if !we.matches(workflow, triggerType, previous, current) {
			continue
		}

		inProgress[workflow.WorkflowId] = true
		we.execute(workflow, current, inProgress)
	}
}

// matches reports whether a workflow fires for the given event.
func (we *WorkflowEngine) matches(workflow model.Workflow, triggerType string,
	previous *recordModel.Record, current recordModel.Record) bool {

	switch workflow.TriggerType {
	case constants.TriggerOnCreate:
		if triggerType != constants.TriggerOnCreate {
			return false
		}
	case constants.TriggerOnUpdate:
		if triggerType != constants.TriggerOnUpdate {
			return false
		}
	case constants.TriggerOnStatusChange:
		if triggerType != constants.TriggerOnUpdate || previous == nil {
			return false
		}
		if !fieldChanged(*previous, current, constants.StatusField) {
			return false
		}
	case constants.TriggerOnFieldChange:
		if triggerType != constants.TriggerOnUpdate || previous == nil {
			return false
		}
		if !we.watchedFieldChanged(workflow, *previous, current) {
			return false
		}
	default:
		return false
	}

	return conditions.EvaluateAll(workflow.TriggerConditions, current)
}

// watchedFieldChanged reports whether any field named by the workflow's
// trigger conditions differs between the previous and current snapshots.
func (we *WorkflowEngine) watchedFieldChanged(workflow model.Workflow,
	previous, current recordModel.Record) bool {

	for _, criterion := range workflow.TriggerConditions {
		if fieldChanged(previous, current, criterion.Field) {
			return true
		}
	}
	return false
}

// execute counts the match and runs the workflow's actions in order.
func (we *WorkflowEngine) execute(workflow model.Workflow, record recordModel.Record,
	inProgress map[string]bool) {

	logger := log.GetLogger()
	logger.Info(fmt.Sprintf("Executing workflow: %s", workflow.WorkflowName),
		log.String("workflowId", workflow.WorkflowId),
		log.String("recordId", record.RecordId))

	// The match is counted exactly once, before any action runs, so a
	// failing action still shows up in the execution count.
	if err := we.workflowService.workflowStore.IncrementExecutionCount(workflow.WorkflowId); err != nil {
		logger.Error(fmt.Sprintf("Failed to increment execution count for workflow: %s",
			workflow.WorkflowId), log.Error(err))
	}

	current := record
	for _, action := range workflow.Actions {
		updated, err := we.executeAction(workflow, action, current, inProgress)
		if err != nil {
			logger.Error(fmt.Sprintf("Workflow action failed: %s", action.Type),
				log.String("workflowId", workflow.WorkflowId),
				log.String("recordId", current.RecordId), log.Error(err))
			continue
		}
		if updated != nil {
			current = *updated
		}
	}
}

// executeAction dispatches one action. A non-nil record return means the
// action rewrote the record and later actions should see the new snapshot.
func (we *WorkflowEngine) executeAction(workflow model.Workflow, action model.Action,
	record recordModel.Record, inProgress map[string]bool) (*recordModel.Record, error) {

	typed, err := model.ParseAction(action)
	if err != nil {
		return nil, err
	}

	switch a := typed.(type) {
	case model.CreateTaskAction:
		ctx, cancel := context.WithTimeout(context.Background(), constants.CapabilityDispatchTimeout)
		defer cancel()
		_, err := we.tasks.CreateTask(ctx, record.EntityType, record.RecordId, a.Title)
		return nil, err

	case model.UpdateFieldAction:
		updated, err := we.recordStore.Update(record.EntityType, record.RecordId,
			map[string]interface{}{a.Field: a.Value})
		if err != nil {
			return nil, err
		}
		// The write is a record update in its own right, so other
		// workflows get a chance to react to it. The shared inProgress
		// set keeps the chain from looping back into this workflow.
		we.dispatch(constants.TriggerOnUpdate, &record, updated, inProgress)
		return &updated, nil

	case model.SendEmailAction:
		recipient := a.Recipient
		if recipient == "" {
			recipient, _ = record.FieldString("email")
		}
		ctx, cancel := context.WithTimeout(context.Background(), constants.CapabilityDispatchTimeout)
		defer cancel()
		return nil, we.email.SendEmail(ctx, record.EntityType, record.RecordId, a.Template, recipient)

	case model.AssignToAction:
		if err := we.recordStore.SetOwner(record.EntityType, record.RecordId, a.UserId); err != nil {
			return nil, err
		}
		updated := record.Clone()
		updated.OwnerId = a.UserId
		return &updated, nil

	case model.SendNotificationAction:
		ctx, cancel := context.WithTimeout(context.Background(), constants.CapabilityDispatchTimeout)
		defer cancel()
		return nil, we.notifications.SendNotification(ctx, a.TargetUserId, a.Message)

	default:
		return nil, fmt.Errorf("unknown action type: %s", action.Type)
	}
}

// fieldChanged compares a field's string form between two snapshots. A
// field present on one side and absent on the other counts as a change.
func fieldChanged(previous, current recordModel.Record, field string) bool {

	prevValue, prevOk := previous.FieldString(field)
	currValue, currOk := current.FieldString(field)
	if prevOk != currOk {
		return true
	}
	return prevValue != currValue
}
