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
	"github.com/wso2/crm-automation-service/internal/conditions"
)

// AssignmentRule routes ownership of newly created records. Rules are
// evaluated ascending by priority; insertion order breaks ties.
type AssignmentRule struct {
	RuleId     string               `json:"rule_id" bson:"rule_id"`
	RuleName   string               `json:"rule_name" bson:"rule_name"`
	EntityType string               `json:"entity_type" bson:"entity_type"`
	Priority   int                  `json:"priority" bson:"priority"`
	Criterion  conditions.Criterion `json:"criteria" bson:"criteria"`
	AssignedTo string               `json:"assigned_to" bson:"assigned_to"`
	IsActive   bool                 `json:"is_active" bson:"is_active"`
	CreatedAt  int64                `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt  int64                `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// AssignmentRuleAPIRequest is the wire shape accepted by the admin surface.
type AssignmentRuleAPIRequest struct {
	RuleName   string               `json:"rule_name"`
	EntityType string               `json:"entity_type"`
	Priority   int                  `json:"priority"`
	Criterion  conditions.Criterion `json:"criteria"`
	AssignedTo string               `json:"assigned_to"`
	IsActive   bool                 `json:"is_active"`
}

// AssignmentRuleAPIResponse is the wire shape returned by the admin surface.
type AssignmentRuleAPIResponse struct {
	RuleId     string               `json:"rule_id"`
	RuleName   string               `json:"rule_name"`
	EntityType string               `json:"entity_type"`
	Priority   int                  `json:"priority"`
	Criterion  conditions.Criterion `json:"criteria"`
	AssignedTo string               `json:"assigned_to"`
	IsActive   bool                 `json:"is_active"`
}
