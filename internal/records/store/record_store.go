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
	"errors"

	"github.com/wso2/crm-automation-service/internal/records/model"
)

// ErrRecordNotFound is returned by Get when no record matches.
var ErrRecordNotFound = errors.New("record not found")

// RecordStoreInterface is the narrow boundary through which the automation
// engines read and write entity records. The CRUD layer owns the actual
// persistence of entities; implementations here only need to honor this
// contract.
type RecordStoreInterface interface {
	// Get returns a single record. ErrRecordNotFound when absent.
	Get(entityType, recordId string) (model.Record, error)

	// Find returns all non-retired records of the given entity type.
	Find(entityType string) ([]model.Record, error)

	// Update applies the given field values to an existing record and
	// returns the updated snapshot.
	Update(entityType, recordId string, fields map[string]interface{}) (model.Record, error)

	// Retire soft-deletes a record; it remains in storage but is excluded
	// from Find results.
	Retire(entityType, recordId string) error

	// RepointReferences rewrites every reference field that points at
	// fromId so that it points at toId instead.
	RepointReferences(fromId, toId string) error

	// SetOwner assigns ownership of a record.
	SetOwner(entityType, recordId, ownerId string) error
}
