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

package services

import (
	"net/http"
	"strings"

	"github.com/wso2/crm-automation-service/internal/workflows/handler"
)

type WorkflowsService struct {
	workflowHandler *handler.WorkflowHandler
}

func NewWorkflowsService() *WorkflowsService {
	return &WorkflowsService{
		workflowHandler: handler.NewWorkflowHandler(),
	}
}

// Route dispatches workflow endpoints.
func (s *WorkflowsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/workflows":
		s.workflowHandler.AddWorkflow(w, r)

	case method == http.MethodGet && path == "/workflows":
		s.workflowHandler.GetWorkflows(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/workflows/"):
		s.workflowHandler.GetWorkflow(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/workflows/"):
		s.workflowHandler.UpdateWorkflow(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/workflows/"):
		s.workflowHandler.DeleteWorkflow(w, r)

	default:
		http.NotFound(w, r)
	}
}
