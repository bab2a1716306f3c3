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

package constants

import "time"

type ContextKey string

const (
	TraceIDContextKey ContextKey = "traceId"
	UserIDContextKey  ContextKey = "userId"
)

const ApiBasePath = "/api/v1"

// Condition operators supported by the condition evaluator.
const (
	OperatorEquals     = "equals"
	OperatorContains   = "contains"
	OperatorStartsWith = "starts_with"
)

var AllowedConditionOperators = map[string]bool{
	OperatorEquals:     true,
	OperatorContains:   true,
	OperatorStartsWith: true,
}

// Workflow trigger types.
const (
	TriggerOnCreate       = "onCreate"
	TriggerOnUpdate       = "onUpdate"
	TriggerOnStatusChange = "onStatusChange"
	TriggerOnFieldChange  = "onFieldChange"
)

var AllowedTriggerTypes = map[string]bool{
	TriggerOnCreate:       true,
	TriggerOnUpdate:       true,
	TriggerOnStatusChange: true,
	TriggerOnFieldChange:  true,
}

// Workflow action types.
const (
	ActionCreateTask       = "createTask"
	ActionUpdateField      = "updateField"
	ActionSendEmail        = "sendEmail"
	ActionAssignTo         = "assignTo"
	ActionSendNotification = "sendNotification"
)

var AllowedActionTypes = map[string]bool{
	ActionCreateTask:       true,
	ActionUpdateField:      true,
	ActionSendEmail:        true,
	ActionAssignTo:         true,
	ActionSendNotification: true,
}

// Entity types that carry ownership and participate in automation. The
// engines accept any entity type string; this set is only used for
// request validation on the admin surface.
var KnownEntityTypes = map[string]bool{
	"lead":        true,
	"account":     true,
	"opportunity": true,
	"contact":     true,
	"task":        true,
	"quote":       true,
	"case":        true,
	"article":     true,
}

// StatusField is the record field inspected by onStatusChange triggers.
const StatusField = "status"

// Duplicate scan threshold bounds.
const (
	MinScanThreshold = 50
	MaxScanThreshold = 100
)

// CapabilityDispatchTimeout bounds a single workflow action dispatch to an
// external capability so one slow action cannot block its siblings.
const CapabilityDispatchTimeout = 5 * time.Second

// RecordStoreTimeout bounds a single record store call.
const RecordStoreTimeout = 5 * time.Second

// RuleCacheTTL is how long per-entity rule and workflow sets are cached.
const RuleCacheTTL = 30 * time.Second

// Mongo collection names
const (
	RecordCollection = "records"
)

// API resource names used in response envelopes.
const (
	AssignmentRuleResource = "assignment_rule"
	WorkflowResource       = "workflow"
	DuplicateScanResource  = "duplicate_scan"
	MergeResource          = "merge"
	EventResource          = "event"
)
