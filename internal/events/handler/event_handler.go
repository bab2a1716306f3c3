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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wso2/crm-automation-service/internal/events/model"
	"github.com/wso2/crm-automation-service/internal/events/service"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/security"
	"github.com/wso2/crm-automation-service/internal/system/utils"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler {

	return &EventHandler{}
}

// RecordCreated handles a record-created event from the CRUD layer
func (eh *EventHandler) RecordCreated(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "events:publish")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var event model.RecordCreatedEvent
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "record-created event"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	response, err := service.GetEventService().OnRecordCreated(event.Record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, response, constants.EventResource)
}

// RecordUpdated handles a record-updated event from the CRUD layer
func (eh *EventHandler) RecordUpdated(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "events:publish")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var event model.RecordUpdatedEvent
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "record-updated event"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	response, err := service.GetEventService().OnRecordUpdated(event.PreviousRecord, event.Record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, response, constants.EventResource)
}
