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

package provider

import (
	"github.com/wso2/crm-automation-service/internal/workflows/service"
)

// WorkflowProviderInterface defines the interface for the workflow provider.
type WorkflowProviderInterface interface {
	GetWorkflowService() service.WorkflowServiceInterface
	GetWorkflowEngine() service.WorkflowEngineInterface
}

// WorkflowProvider is the default implementation of the workflow provider.
type WorkflowProvider struct{}

// NewWorkflowProvider creates a new instance of WorkflowProvider.
func NewWorkflowProvider() WorkflowProviderInterface {

	return &WorkflowProvider{}
}

// GetWorkflowService returns the workflow service instance.
func (wp *WorkflowProvider) GetWorkflowService() service.WorkflowServiceInterface {

	return service.GetWorkflowService()
}

// GetWorkflowEngine returns the workflow engine instance.
func (wp *WorkflowProvider) GetWorkflowEngine() service.WorkflowEngineInterface {

	return service.GetWorkflowEngine()
}
