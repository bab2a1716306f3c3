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
	"sort"
	"sync"

	"github.com/wso2/crm-automation-service/internal/workflows/model"
)

// InMemoryWorkflowStore is a map backed WorkflowStoreInterface used in
// unit tests and local development.
type InMemoryWorkflowStore struct {
	mu        sync.RWMutex
	workflows map[string]model.Workflow
}

func NewInMemoryWorkflowStore() *InMemoryWorkflowStore {

	return &InMemoryWorkflowStore{
		workflows: make(map[string]model.Workflow),
	}
}

func (s *InMemoryWorkflowStore) AddWorkflow(workflow model.Workflow) error {

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[workflow.WorkflowId] = workflow
	return nil
}

func (s *InMemoryWorkflowStore) GetWorkflows(entityType string) ([]model.Workflow, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var workflows []model.Workflow
	for _, workflow := range s.workflows {
		if workflow.EntityType == entityType {
			workflows = append(workflows, workflow)
		}
	}
	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].WorkflowId < workflows[j].WorkflowId
	})
	return workflows, nil
}

func (s *InMemoryWorkflowStore) GetWorkflow(workflowId string) (model.Workflow, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workflows[workflowId], nil
}

func (s *InMemoryWorkflowStore) UpdateWorkflow(workflow model.Workflow) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.workflows[workflow.WorkflowId]
	if ok {
		// Execution count only moves through IncrementExecutionCount.
		workflow.ExecutionCount = existing.ExecutionCount
	}
	s.workflows[workflow.WorkflowId] = workflow
	return nil
}

func (s *InMemoryWorkflowStore) DeleteWorkflow(workflowId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, workflowId)
	return nil
}

func (s *InMemoryWorkflowStore) IncrementExecutionCount(workflowId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	workflow, ok := s.workflows[workflowId]
	if !ok {
		return nil
	}
	workflow.ExecutionCount++
	s.workflows[workflowId] = workflow
	return nil
}
