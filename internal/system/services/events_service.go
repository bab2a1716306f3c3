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

	"github.com/wso2/crm-automation-service/internal/events/handler"
)

type EventsService struct {
	eventHandler *handler.EventHandler
}

func NewEventsService() *EventsService {
	return &EventsService{
		eventHandler: handler.NewEventHandler(),
	}
}

// Route dispatches record lifecycle event endpoints.
func (s *EventsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/events/record-created":
		s.eventHandler.RecordCreated(w, r)

	case method == http.MethodPost && path == "/events/record-updated":
		s.eventHandler.RecordUpdated(w, r)

	default:
		http.NotFound(w, r)
	}
}
