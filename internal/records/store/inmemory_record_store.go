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
	"strings"
	"sync"
	"time"

	"github.com/wso2/crm-automation-service/internal/records/model"
)

// InMemoryRecordStore is a map-backed record store. It backs unit tests and
// single-node deployments that run without a document database.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]map[string]model.Record // entityType -> recordId -> record
}

// NewInMemoryRecordStore creates an empty in-memory record store.
func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		records: make(map[string]map[string]model.Record),
	}
}

// Put inserts or replaces a record. Used by the CRUD layer boundary and by tests.
func (s *InMemoryRecordStore) Put(record model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byId, found := s.records[record.EntityType]
	if !found {
		byId = make(map[string]model.Record)
		s.records[record.EntityType] = byId
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.UpdatedAt = time.Now().UTC()
	byId[record.RecordId] = record.Clone()
}

// Get returns a single record. ErrRecordNotFound when absent.
func (s *InMemoryRecordStore) Get(entityType, recordId string) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, found := s.records[entityType][recordId]
	if !found {
		return model.Record{}, ErrRecordNotFound
	}
	return record.Clone(), nil
}

// Find returns all non-retired records of the given entity type, ordered by
// record id for determinism.
func (s *InMemoryRecordStore) Find(entityType string) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Record
	for _, record := range s.records[entityType] {
		if record.IsRetired {
			continue
		}
		result = append(result, record.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordId < result[j].RecordId
	})
	return result, nil
}

// Update applies the given field values to an existing record.
func (s *InMemoryRecordStore) Update(entityType, recordId string, fields map[string]interface{}) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.records[entityType][recordId]
	if !found {
		return model.Record{}, ErrRecordNotFound
	}
	if record.Fields == nil {
		record.Fields = make(map[string]interface{})
	} else {
		record = record.Clone()
	}
	for k, v := range fields {
		record.Fields[k] = v
	}
	record.UpdatedAt = time.Now().UTC()
	s.records[entityType][recordId] = record
	return record.Clone(), nil
}

// Retire soft-deletes a record.
func (s *InMemoryRecordStore) Retire(entityType, recordId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.records[entityType][recordId]
	if !found {
		return ErrRecordNotFound
	}
	record.IsRetired = true
	record.UpdatedAt = time.Now().UTC()
	s.records[entityType][recordId] = record
	return nil
}

// SetOwner assigns ownership of a record.
func (s *InMemoryRecordStore) SetOwner(entityType, recordId, ownerId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.records[entityType][recordId]
	if !found {
		return ErrRecordNotFound
	}
	record.OwnerId = ownerId
	record.UpdatedAt = time.Now().UTC()
	s.records[entityType][recordId] = record
	return nil
}

// RepointReferences rewrites every reference field pointing at fromId so
// that it points at toId, across all entity types.
func (s *InMemoryRecordStore) RepointReferences(fromId, toId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for entityType, byId := range s.records {
		for recordId, record := range byId {
			if repointRecordFields(&record, fromId, toId) {
				record.UpdatedAt = time.Now().UTC()
				s.records[entityType][recordId] = record
			}
		}
	}
	return nil
}

// repointRecordFields rewrites reference fields in place and reports whether
// anything changed. A reference field is either a *_id string field or an
// EntityRef-shaped value.
func repointRecordFields(record *model.Record, fromId, toId string) bool {
	changed := false
	for name, value := range record.Fields {
		switch v := value.(type) {
		case string:
			if strings.HasSuffix(name, "_id") && v == fromId {
				record.Fields[name] = toId
				changed = true
			}
		case model.EntityRef:
			if v.Id == fromId {
				v.Id = toId
				record.Fields[name] = v
				changed = true
			}
		case map[string]interface{}:
			// EntityRef decoded from JSON/BSON keeps its map shape.
			if id, ok := v["id"].(string); ok && id == fromId {
				if _, hasType := v["entity_type"]; hasType {
					v["id"] = toId
					changed = true
				}
			}
		}
	}
	return changed
}
