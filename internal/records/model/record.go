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
	"fmt"
	"time"
)

// Record is a loosely-typed snapshot of a CRM entity. The CRUD layer owns
// the entity schemas; the automation engines only inspect fields by name.
type Record struct {
	EntityType string                 `json:"entity_type" bson:"entity_type"`
	RecordId   string                 `json:"record_id" bson:"record_id"`
	OwnerId    string                 `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Fields     map[string]interface{} `json:"fields" bson:"fields"`
	IsRetired  bool                   `json:"is_retired" bson:"is_retired"`
	CreatedAt  time.Time              `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt  time.Time              `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// EntityRef is a typed reference to a record of an arbitrary entity type.
// Notes, activities and workflow actions link to records through this
// instead of an untyped foreign key.
type EntityRef struct {
	EntityType string `json:"entity_type" bson:"entity_type"`
	Id         string `json:"id" bson:"id"`
}

// FieldString returns the named field coerced to a string. Missing fields
// and nil values yield ("", false).
func (r Record) FieldString(field string) (string, bool) {
	if r.Fields == nil {
		return "", false
	}
	value, found := r.Fields[field]
	if !found || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// Clone returns a deep copy of the record's field map so that engine
// evaluation never aliases caller-owned state. Nested maps and slices,
// such as references decoded from JSON or BSON, are copied too.
func (r Record) Clone() Record {
	cloned := r
	if r.Fields != nil {
		cloned.Fields = make(map[string]interface{}, len(r.Fields))
		for k, v := range r.Fields {
			cloned.Fields[k] = cloneFieldValue(v)
		}
	}
	return cloned
}

func cloneFieldValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		copied := make(map[string]interface{}, len(v))
		for k, nested := range v {
			copied[k] = cloneFieldValue(nested)
		}
		return copied
	case []interface{}:
		copied := make([]interface{}, len(v))
		for i, nested := range v {
			copied[i] = cloneFieldValue(nested)
		}
		return copied
	default:
		return v
	}
}
