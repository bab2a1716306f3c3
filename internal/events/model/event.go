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

package model

import (
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
)

// RecordCreatedEvent is posted by the CRUD layer after a record is created.
type RecordCreatedEvent struct {
	Record recordModel.Record `json:"record"`
}

// RecordUpdatedEvent is posted by the CRUD layer after a record is updated.
// PreviousRecord is the snapshot before the write.
type RecordUpdatedEvent struct {
	PreviousRecord recordModel.Record `json:"previous_record"`
	Record         recordModel.Record `json:"record"`
}

// RecordCreatedResponse reports what the automation pass did with a new
// record. OwnerId is empty when no assignment rule matched.
type RecordCreatedResponse struct {
	EntityType string `json:"entity_type"`
	RecordId   string `json:"record_id"`
	OwnerId    string `json:"owner_id,omitempty"`
	Assigned   bool   `json:"assigned"`
}

// RecordUpdatedResponse acknowledges an update event.
type RecordUpdatedResponse struct {
	EntityType string `json:"entity_type"`
	RecordId   string `json:"record_id"`
}
