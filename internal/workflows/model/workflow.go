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

	"github.com/wso2/crm-automation-service/internal/conditions"
	"github.com/wso2/crm-automation-service/internal/system/constants"
)

// Workflow is a trigger/condition/action automation attached to an entity type.
type Workflow struct {
	WorkflowId        string                 `json:"workflow_id"`
	WorkflowName      string                 `json:"workflow_name"`
	EntityType        string                 `json:"entity_type"`
	TriggerType       string                 `json:"trigger_type"`
	TriggerConditions []conditions.Criterion `json:"trigger_conditions"`
	Actions           []Action               `json:"actions"`
	IsActive          bool                   `json:"is_active"`
	ExecutionCount    int64                  `json:"execution_count"`
	CreatedAt         int64                  `json:"created_at,omitempty"`
	UpdatedAt         int64                  `json:"updated_at,omitempty"`
}

// Action is the wire shape of a workflow action. Config keys depend on Type.
type Action struct {
	Type   string            `json:"type"`
	Config map[string]string `json:"config"`
}

// Typed action variants. ParseAction converts the wire shape into one of
// these so the engine never reaches into raw config maps.

type CreateTaskAction struct {
	Title string
}

type UpdateFieldAction struct {
	Field string
	Value string
}

type SendEmailAction struct {
	Template  string
	Recipient string
}

type AssignToAction struct {
	UserId string
}

type SendNotificationAction struct {
	Message      string
	TargetUserId string
}

// ParseAction validates an action's wire shape and returns its typed variant.
func ParseAction(action Action) (interface{}, error) {

	switch action.Type {
	case constants.ActionCreateTask:
		title := action.Config["title"]
		if title == "" {
			return nil, fmt.Errorf("createTask action requires a title")
		}
		return CreateTaskAction{Title: title}, nil
	case constants.ActionUpdateField:
		field := action.Config["field"]
		if field == "" {
			return nil, fmt.Errorf("updateField action requires a field")
		}
		return UpdateFieldAction{Field: field, Value: action.Config["value"]}, nil
	case constants.ActionSendEmail:
		template := action.Config["template"]
		if template == "" {
			return nil, fmt.Errorf("sendEmail action requires a template")
		}
		return SendEmailAction{Template: template, Recipient: action.Config["recipient"]}, nil
	case constants.ActionAssignTo:
		userId := action.Config["user_id"]
		if userId == "" {
			return nil, fmt.Errorf("assignTo action requires a user_id")
		}
		return AssignToAction{UserId: userId}, nil
	case constants.ActionSendNotification:
		message := action.Config["message"]
		if message == "" {
			return nil, fmt.Errorf("sendNotification action requires a message")
		}
		return SendNotificationAction{Message: message, TargetUserId: action.Config["target_user_id"]}, nil
	default:
		return nil, fmt.Errorf("unknown action type: %s", action.Type)
	}
}

// WorkflowAPIRequest is the create/update request payload.
type WorkflowAPIRequest struct {
	WorkflowName      string                 `json:"workflow_name"`
	EntityType        string                 `json:"entity_type"`
	TriggerType       string                 `json:"trigger_type"`
	TriggerConditions []conditions.Criterion `json:"trigger_conditions"`
	Actions           []Action               `json:"actions"`
	IsActive          bool                   `json:"is_active"`
}

// WorkflowAPIResponse is the workflow representation returned over HTTP.
type WorkflowAPIResponse struct {
	WorkflowId        string                 `json:"workflow_id"`
	WorkflowName      string                 `json:"workflow_name"`
	EntityType        string                 `json:"entity_type"`
	TriggerType       string                 `json:"trigger_type"`
	TriggerConditions []conditions.Criterion `json:"trigger_conditions"`
	Actions           []Action               `json:"actions"`
	IsActive          bool                   `json:"is_active"`
	ExecutionCount    int64                  `json:"execution_count"`
}
