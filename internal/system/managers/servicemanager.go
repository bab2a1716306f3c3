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

package managers

import (
	"net/http"
	"strings"

	cascontext "github.com/wso2/crm-automation-service/internal/system/context"
	"github.com/wso2/crm-automation-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	assignmentRulesService := services.NewAssignmentRulesService()
	workflowsService := services.NewWorkflowsService()
	duplicatesService := services.NewDuplicatesService()
	eventsService := services.NewEventsService()
	healthService := services.NewHealthService()

	// Single dispatcher for all services
	sm.mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		traceID := cascontext.GetOrGenerateTraceID(r.Context())
		r = r.WithContext(cascontext.WithTraceID(r.Context(), traceID))

		// Internal path after base path stripping
		path := strings.TrimPrefix(r.URL.Path, apiBasePath)
		r.URL.Path = path
		path = strings.TrimSuffix(path, "/")

		// Dispatch to correct service based on path
		switch {
		case strings.HasPrefix(path, "/assignment-rules"):
			assignmentRulesService.Route(w, r)
		case strings.HasPrefix(path, "/workflows"):
			workflowsService.Route(w, r)
		case strings.HasPrefix(path, "/duplicates"):
			duplicatesService.Route(w, r)
		case strings.HasPrefix(path, "/events"):
			eventsService.Route(w, r)
		case strings.HasPrefix(path, "/health"), strings.HasPrefix(path, "/ready"):
			healthService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
