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
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/crm-automation-service/internal/conditions"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
	"github.com/wso2/crm-automation-service/internal/workflows/store"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// recordingCapabilities captures every capability dispatch in order.
type recordingCapabilities struct {
	calls     []string
	failEmail bool
}

func (rc *recordingCapabilities) CreateTask(_ context.Context, _, recordId, title string) (string, error) {
	rc.calls = append(rc.calls, "task:"+title+":"+recordId)
	return "T-1", nil
}

func (rc *recordingCapabilities) SendEmail(_ context.Context, _, recordId, template, _ string) error {
	if rc.failEmail {
		return errors.New("smtp unreachable")
	}
	rc.calls = append(rc.calls, "email:"+template+":"+recordId)
	return nil
}

func (rc *recordingCapabilities) SendNotification(_ context.Context, targetUserId, message string) error {
	rc.calls = append(rc.calls, "notify:"+targetUserId+":"+message)
	return nil
}

type engineFixture struct {
	engine       *WorkflowEngine
	workflows    *store.InMemoryWorkflowStore
	records      *recordStore.InMemoryRecordStore
	capabilities *recordingCapabilities
}

func newEngineFixture() *engineFixture {

	workflowStore := store.NewInMemoryWorkflowStore()
	records := recordStore.NewInMemoryRecordStore()
	caps := &recordingCapabilities{}
	engine := NewWorkflowEngine(NewWorkflowService(workflowStore), records, caps, caps, caps)

	return &engineFixture{
		engine:       engine,
		workflows:    workflowStore,
		records:      records,
		capabilities: caps,
	}
}

func (f *engineFixture) addWorkflow(t *testing.T, workflow model.Workflow) {
	t.Helper()
	workflow.IsActive = true
	require.NoError(t, f.workflows.AddWorkflow(workflow))
}

func (f *engineFixture) executionCount(t *testing.T, workflowId string) int64 {
	t.Helper()
	workflow, err := f.workflows.GetWorkflow(workflowId)
	require.NoError(t, err)
	return workflow.ExecutionCount
}

func opportunity(fields map[string]interface{}) recordModel.Record {
	return recordModel.Record{
		EntityType: "opportunity",
		RecordId:   "O-1",
		Fields:     fields,
	}
}

// ---- Trigger matching ----

func Test_OnCreate_FiresWhenConditionsHold(t *testing.T) {

	f := newEngineFixture()
	f.addWorkflow(t, model.Workflow{
		WorkflowId:   "wf-1",
		WorkflowName: "Welcome big deals",
		EntityType:   "opportunity",
		TriggerType:  "onCreate",
		TriggerConditions: []conditions.Criterion{
			{Field: "tier", Operator: "equals", Value: "enterprise"},
		},
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "new deal", "target_user_id": "U1"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{"tier": "enterprise"}))

	assert.Equal(t, []string{"notify:U1:new deal"}, f.capabilities.calls)
	assert.EqualValues(t, 1, f.executionCount(t, "wf-1"))
}

func Test_OnCreate_ConditionFails_NoExecution(t *testing.T) {

	f := newEngineFixture()
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		TriggerConditions: []conditions.Criterion{
			{Field: "tier", Operator: "equals", Value: "enterprise"},
		},
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "new deal"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{"tier": "smb"}))

	assert.Empty(t, f.capabilities.calls)
	assert.EqualValues(t, 0, f.executionCount(t, "wf-1"))
}

func Test_OnStatusChange_RequiresStatusTransition(t *testing.T) {

	f := newEngineFixture()
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onStatusChange",
		Actions: []model.Action{
			{Type: "createTask", Config: map[string]string{"title": "Review status"}},
		},
	})

	previous := opportunity(map[string]interface{}{"status": "open", "amount": "100"})

	t.Run("Status_unchanged_does_not_fire", func(t *testing.T) {
		current := opportunity(map[string]interface{}{"status": "open", "amount": "500"})
		f.engine.HandleRecordUpdated(previous, current)
		assert.Empty(t, f.capabilities.calls)
	})

	t.Run("Status_changed_fires", func(t *testing.T) {
		current := opportunity(map[string]interface{}{"status": "won", "amount": "100"})
		f.engine.HandleRecordUpdated(previous, current)
		assert.Equal(t, []string{"task:Review status:O-1"}, f.capabilities.calls)
	})
}

func Test_OnFieldChange_WatchedFieldMustChange(t *testing.T) {

	f := newEngineFixture()
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onFieldChange",
		TriggerConditions: []conditions.Criterion{
			{Field: "stage", Operator: "equals", Value: "negotiation"},
		},
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "stage moved", "target_user_id": "U1"}},
		},
	})

	t.Run("Unrelated_field_change_does_not_fire", func(t *testing.T) {
		previous := opportunity(map[string]interface{}{"stage": "negotiation", "amount": "100"})
		current := opportunity(map[string]interface{}{"stage": "negotiation", "amount": "900"})
		f.engine.HandleRecordUpdated(previous, current)
		assert.Empty(t, f.capabilities.calls)
		assert.EqualValues(t, 0, f.executionCount(t, "wf-1"))
	})

	t.Run("Watched_field_change_fires_when_condition_holds", func(t *testing.T) {
		previous := opportunity(map[string]interface{}{"stage": "qualification"})
		current := opportunity(map[string]interface{}{"stage": "negotiation"})
		f.engine.HandleRecordUpdated(previous, current)
		assert.Equal(t, []string{"notify:U1:stage moved"}, f.capabilities.calls)
		assert.EqualValues(t, 1, f.executionCount(t, "wf-1"))
	})
}

func Test_InactiveWorkflow_NeverFires(t *testing.T) {

	f := newEngineFixture()
	workflow := model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "createTask", Config: map[string]string{"title": "Follow up"}},
		},
	}
	require.NoError(t, f.workflows.AddWorkflow(workflow)) // IsActive left false

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{}))
	assert.Empty(t, f.capabilities.calls)
}

// ---- Action execution ----

func Test_FailingAction_DoesNotStopSiblings(t *testing.T) {

	f := newEngineFixture()
	f.capabilities.failEmail = true
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "createTask", Config: map[string]string{"title": "First"}},
			{Type: "sendEmail", Config: map[string]string{"template": "welcome"}},
			{Type: "sendNotification", Config: map[string]string{"message": "Third", "target_user_id": "U1"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{}))

	// The failing email is skipped; the surrounding actions still run and
	// the execution still counts.
	assert.Equal(t, []string{"task:First:O-1", "notify:U1:Third"}, f.capabilities.calls)
	assert.EqualValues(t, 1, f.executionCount(t, "wf-1"))
}

func Test_UpdateFieldAction_WritesThroughRecordStore(t *testing.T) {

	f := newEngineFixture()
	f.records.Put(opportunity(map[string]interface{}{"stage": "new"}))
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "updateField", Config: map[string]string{"field": "stage", "value": "qualified"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{"stage": "new"}))

	stored, err := f.records.Get("opportunity", "O-1")
	require.NoError(t, err)
	stage, _ := stored.FieldString("stage")
	assert.Equal(t, "qualified", stage)
}

func Test_AssignToAction_SetsOwner(t *testing.T) {

	f := newEngineFixture()
	f.records.Put(opportunity(map[string]interface{}{}))
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "assignTo", Config: map[string]string{"user_id": "U7"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{}))

	stored, err := f.records.Get("opportunity", "O-1")
	require.NoError(t, err)
	assert.Equal(t, "U7", stored.OwnerId)
}

// ---- Ordering and recursion ----

func Test_MatchedWorkflows_RunInWorkflowIdOrder(t *testing.T) {

	f := newEngineFixture()
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-2",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "second", "target_user_id": "U1"}},
		},
	})
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "first", "target_user_id": "U1"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{}))

	assert.Equal(t, []string{"notify:U1:first", "notify:U1:second"}, f.capabilities.calls)
}

func Test_UpdateField_CascadesToOtherWorkflows(t *testing.T) {

	f := newEngineFixture()
	f.records.Put(opportunity(map[string]interface{}{"stage": "new"}))
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onCreate",
		Actions: []model.Action{
			{Type: "updateField", Config: map[string]string{"field": "stage", "value": "qualified"}},
		},
	})
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-2",
		EntityType:  "opportunity",
		TriggerType: "onFieldChange",
		TriggerConditions: []conditions.Criterion{
			{Field: "stage", Operator: "equals", Value: "qualified"},
		},
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "qualified", "target_user_id": "U2"}},
		},
	})

	f.engine.HandleRecordCreated(opportunity(map[string]interface{}{"stage": "new"}))

	assert.Equal(t, []string{"notify:U2:qualified"}, f.capabilities.calls)
	assert.EqualValues(t, 1, f.executionCount(t, "wf-1"))
	assert.EqualValues(t, 1, f.executionCount(t, "wf-2"))
}

func Test_RecursionGuard_WorkflowRunsOncePerEvent(t *testing.T) {

	f := newEngineFixture()
	f.records.Put(opportunity(map[string]interface{}{"priority": "low"}))
	// The workflow's own write re-satisfies its trigger condition; without
	// the guard it would fire again on its own update.
	f.addWorkflow(t, model.Workflow{
		WorkflowId:  "wf-1",
		EntityType:  "opportunity",
		TriggerType: "onFieldChange",
		TriggerConditions: []conditions.Criterion{
			{Field: "priority", Operator: "equals", Value: "high"},
		},
		Actions: []model.Action{
			{Type: "updateField", Config: map[string]string{"field": "priority", "value": "high"}},
		},
	})

	previous := opportunity(map[string]interface{}{"priority": "low"})
	current := opportunity(map[string]interface{}{"priority": "high"})
	f.engine.HandleRecordUpdated(previous, current)

	assert.EqualValues(t, 1, f.executionCount(t, "wf-1"))
}

// ---- Validation ----

func Test_ValidateWorkflow(t *testing.T) {

	svc := NewWorkflowService(store.NewInMemoryWorkflowStore())

	base := model.Workflow{
		WorkflowId:   "wf-1",
		WorkflowName: "Review deals",
		EntityType:   "opportunity",
		TriggerType:  "onCreate",
		Actions: []model.Action{
			{Type: "createTask", Config: map[string]string{"title": "Review"}},
		},
	}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, svc.AddWorkflow(base))
	})

	t.Run("Unknown_trigger", func(t *testing.T) {
		bad := base
		bad.WorkflowId = "wf-2"
		bad.TriggerType = "onDelete"
		require.Error(t, svc.AddWorkflow(bad))
	})

	t.Run("No_actions", func(t *testing.T) {
		bad := base
		bad.WorkflowId = "wf-3"
		bad.Actions = nil
		require.Error(t, svc.AddWorkflow(bad))
	})

	t.Run("Malformed_action", func(t *testing.T) {
		bad := base
		bad.WorkflowId = "wf-4"
		bad.Actions = []model.Action{{Type: "createTask", Config: map[string]string{}}}
		require.Error(t, svc.AddWorkflow(bad))
	})

	t.Run("OnFieldChange_requires_conditions", func(t *testing.T) {
		bad := base
		bad.WorkflowId = "wf-5"
		bad.TriggerType = "onFieldChange"
		bad.TriggerConditions = nil
		require.Error(t, svc.AddWorkflow(bad))
	})
}

func Test_UpdateWorkflow_PreservesExecutionCount(t *testing.T) {

	workflowStore := store.NewInMemoryWorkflowStore()
	svc := NewWorkflowService(workflowStore)

	workflow := model.Workflow{
		WorkflowId:   "wf-1",
		WorkflowName: "Review deals",
		EntityType:   "opportunity",
		TriggerType:  "onCreate",
		IsActive:     true,
		Actions: []model.Action{
			{Type: "createTask", Config: map[string]string{"title": "Review"}},
		},
	}
	require.NoError(t, svc.AddWorkflow(workflow))
	require.NoError(t, workflowStore.IncrementExecutionCount("wf-1"))
	require.NoError(t, workflowStore.IncrementExecutionCount("wf-1"))

	workflow.IsActive = false
	require.NoError(t, svc.UpdateWorkflow(workflow))

	stored, err := svc.GetWorkflow("wf-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.EqualValues(t, 2, stored.ExecutionCount)
}
