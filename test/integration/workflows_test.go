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

package integration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wso2/crm-automation-service/internal/conditions"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
	"github.com/wso2/crm-automation-service/internal/workflows/store"
)

func Test_WorkflowStore(t *testing.T) {

	workflowStore := store.NewWorkflowStore(testPostgres.DB)

	workflow := model.Workflow{
		WorkflowId:   uuid.New().String(),
		WorkflowName: "Notify on won deals",
		EntityType:   "opportunity",
		TriggerType:  "onStatusChange",
		TriggerConditions: []conditions.Criterion{
			{Field: "status", Operator: "equals", Value: "won"},
		},
		Actions: []model.Action{
			{Type: "sendNotification", Config: map[string]string{"message": "Deal won", "target_user_id": "U1"}},
			{Type: "createTask", Config: map[string]string{"title": "Kick off onboarding"}},
		},
		IsActive:  true,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	t.Run("Add_workflow", func(t *testing.T) {
		require.NoError(t, workflowStore.AddWorkflow(workflow))
	})

	t.Run("Get_workflow_round_trips_conditions_and_actions", func(t *testing.T) {
		fetched, err := workflowStore.GetWorkflow(workflow.WorkflowId)
		require.NoError(t, err)
		require.Equal(t, workflow.TriggerConditions, fetched.TriggerConditions)
		require.Equal(t, workflow.Actions, fetched.Actions)
	})

	t.Run("Increment_execution_count", func(t *testing.T) {
		require.NoError(t, workflowStore.IncrementExecutionCount(workflow.WorkflowId))
		require.NoError(t, workflowStore.IncrementExecutionCount(workflow.WorkflowId))

		fetched, err := workflowStore.GetWorkflow(workflow.WorkflowId)
		require.NoError(t, err)
		require.EqualValues(t, 2, fetched.ExecutionCount)
	})

	t.Run("Update_preserves_execution_count", func(t *testing.T) {
		workflow.IsActive = false
		workflow.UpdatedAt = time.Now().Unix()
		require.NoError(t, workflowStore.UpdateWorkflow(workflow))

		fetched, err := workflowStore.GetWorkflow(workflow.WorkflowId)
		require.NoError(t, err)
		require.False(t, fetched.IsActive)
		require.EqualValues(t, 2, fetched.ExecutionCount)
	})

	t.Run("Workflows_ordered_by_id", func(t *testing.T) {
		second := workflow
		second.WorkflowId = uuid.New().String()
		require.NoError(t, workflowStore.AddWorkflow(second))

		workflows, err := workflowStore.GetWorkflows("opportunity")
		require.NoError(t, err)
		require.Len(t, workflows, 2)
		require.Less(t, workflows[0].WorkflowId, workflows[1].WorkflowId)
	})

	t.Run("Delete_workflow", func(t *testing.T) {
		require.NoError(t, workflowStore.DeleteWorkflow(workflow.WorkflowId))
		fetched, err := workflowStore.GetWorkflow(workflow.WorkflowId)
		require.NoError(t, err)
		require.Empty(t, fetched.WorkflowId)
	})

	t.Cleanup(func() {
		workflows, _ := workflowStore.GetWorkflows("opportunity")
		for _, wf := range workflows {
			_ = workflowStore.DeleteWorkflow(wf.WorkflowId)
		}
	})
}
