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

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/wso2/crm-automation-service/internal/conditions"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/workflows/model"
)

// WorkflowStoreInterface abstracts workflow persistence so the engine can
// run against postgres in production and a fake in unit tests.
type WorkflowStoreInterface interface {
	AddWorkflow(workflow model.Workflow) error
	GetWorkflows(entityType string) ([]model.Workflow, error)
	GetWorkflow(workflowId string) (model.Workflow, error)
	UpdateWorkflow(workflow model.Workflow) error
	DeleteWorkflow(workflowId string) error
	IncrementExecutionCount(workflowId string) error
}

// WorkflowStore handles DB operations for workflows.
type WorkflowStore struct {
	DB *sql.DB
}

// NewWorkflowStore initializes a store over the shared DB handle.
func NewWorkflowStore(db *sql.DB) *WorkflowStore {
	return &WorkflowStore{DB: db}
}

// AddWorkflow inserts a new workflow.
func (s *WorkflowStore) AddWorkflow(workflow model.Workflow) error {

	conditionsJson, actionsJson, err := marshalWorkflowParts(workflow)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO workflows
            (workflow_id, workflow_name, entity_type, trigger_type, trigger_conditions, actions,
             is_active, execution_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.DB.Exec(query, workflow.WorkflowId, workflow.WorkflowName, workflow.EntityType,
		workflow.TriggerType, conditionsJson, actionsJson, workflow.IsActive,
		workflow.ExecutionCount, workflow.CreatedAt, workflow.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to add workflow with id: %s", workflow.WorkflowId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_WORKFLOW, err)
	}

	log.GetLogger().Info(fmt.Sprintf("Workflow persisted successfully: %s", workflow.WorkflowName))
	return nil
}

// GetWorkflows fetches all workflows for an entity type, ordered by
// workflow id so matched workflows always execute in the same order.
func (s *WorkflowStore) GetWorkflows(entityType string) ([]model.Workflow, error) {

	query := `
        SELECT workflow_id, workflow_name, entity_type, trigger_type, trigger_conditions, actions,
               is_active, execution_count, created_at, updated_at
        FROM workflows
        WHERE entity_type = $1
        ORDER BY workflow_id ASC`

	rows, err := s.DB.Query(query, entityType)
	if err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_WORKFLOWS, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.GetLogger().Debug("Error occurred while closing rows.", log.Error(err))
		}
	}()

	var workflows []model.Workflow
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, workflow)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_WORKFLOWS, err)
	}
	return workflows, nil
}

// GetWorkflow fetches a specific workflow. A missing workflow returns a
// zero value with no error.
func (s *WorkflowStore) GetWorkflow(workflowId string) (model.Workflow, error) {

	query := `
        SELECT workflow_id, workflow_name, entity_type, trigger_type, trigger_conditions, actions,
               is_active, execution_count, created_at, updated_at
        FROM workflows
        WHERE workflow_id = $1`

	row := s.DB.QueryRow(query, workflowId)
	workflow, err := scanWorkflow(row)
	if err == sql.ErrNoRows {
		return model.Workflow{}, nil
	}
	if err != nil {
		return model.Workflow{}, err
	}
	return workflow, nil
}

// UpdateWorkflow replaces a workflow definition in place. The execution
// count is deliberately not part of the update; it only moves through
// IncrementExecutionCount.
func (s *WorkflowStore) UpdateWorkflow(workflow model.Workflow) error {

	conditionsJson, actionsJson, err := marshalWorkflowParts(workflow)
	if err != nil {
		return err
	}

	query := `
        UPDATE workflows
        SET workflow_name = $2, entity_type = $3, trigger_type = $4, trigger_conditions = $5,
            actions = $6, is_active = $7, updated_at = $8
        WHERE workflow_id = $1`

	_, err = s.DB.Exec(query, workflow.WorkflowId, workflow.WorkflowName, workflow.EntityType,
		workflow.TriggerType, conditionsJson, actionsJson, workflow.IsActive, workflow.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.UPDATE_WORKFLOW, err)
	}
	return nil
}

// DeleteWorkflow removes a workflow.
func (s *WorkflowStore) DeleteWorkflow(workflowId string) error {

	_, err := s.DB.Exec(`DELETE FROM workflows WHERE workflow_id = $1`, workflowId)
	if err != nil {
		return errors2.NewServerError(errors2.DELETE_WORKFLOW, err)
	}
	return nil
}

// IncrementExecutionCount bumps a workflow's execution count by one.
func (s *WorkflowStore) IncrementExecutionCount(workflowId string) error {

	_, err := s.DB.Exec(
		`UPDATE workflows SET execution_count = execution_count + 1 WHERE workflow_id = $1`,
		workflowId)
	if err != nil {
		return errors2.NewServerError(errors2.INCREMENT_EXECUTION_COUNT, err)
	}
	return nil
}

func marshalWorkflowParts(workflow model.Workflow) (string, string, error) {

	conditionsJson, err := json.Marshal(workflow.TriggerConditions)
	if err != nil {
		return "", "", errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	actionsJson, err := json.Marshal(workflow.Actions)
	if err != nil {
		return "", "", errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	return string(conditionsJson), string(actionsJson), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkflow(row rowScanner) (model.Workflow, error) {

	var workflow model.Workflow
	var conditionsJson, actionsJson string

	err := row.Scan(&workflow.WorkflowId, &workflow.WorkflowName, &workflow.EntityType,
		&workflow.TriggerType, &conditionsJson, &actionsJson, &workflow.IsActive,
		&workflow.ExecutionCount, &workflow.CreatedAt, &workflow.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Workflow{}, err
	}
	if err != nil {
		return model.Workflow{}, errors2.NewServerError(errors2.FETCH_WORKFLOWS, err)
	}

	var triggerConditions []conditions.Criterion
	if err := json.Unmarshal([]byte(conditionsJson), &triggerConditions); err != nil {
		return model.Workflow{}, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
	}
	var actions []model.Action
	if err := json.Unmarshal([]byte(actionsJson), &actions); err != nil {
		return model.Workflow{}, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
	}
	workflow.TriggerConditions = triggerConditions
	workflow.Actions = actions
	return workflow, nil
}
