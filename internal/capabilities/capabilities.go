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

// Package capabilities defines the side effect surfaces workflow actions
// dispatch to. The workflow engine treats these as external systems: every
// call carries a deadline and failures never propagate past the action
// that caused them.
package capabilities

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// TaskCapability creates follow up tasks for records.
type TaskCapability interface {
	CreateTask(ctx context.Context, entityType, recordId, title string) (string, error)
}

// EmailCapability sends templated email about a record.
type EmailCapability interface {
	SendEmail(ctx context.Context, entityType, recordId, template, recipient string) error
}

// NotificationCapability pushes an in-app notification to a user.
type NotificationCapability interface {
	SendNotification(ctx context.Context, targetUserId, message string) error
}

// LoggingTaskCapability records task creation through the audit log. It
// stands in until a real task service is wired up.
type LoggingTaskCapability struct{}

func NewLoggingTaskCapability() *LoggingTaskCapability {

	return &LoggingTaskCapability{}
}

func (c *LoggingTaskCapability) CreateTask(ctx context.Context, entityType, recordId,
	title string) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	taskId := uuid.New().String()
	log.GetLogger().Info(fmt.Sprintf("Task created for %s record: %s", entityType, recordId),
		log.String("taskId", taskId), log.String("title", title))
	return taskId, nil
}

// LoggingEmailCapability records outbound email through the log.
type LoggingEmailCapability struct{}

func NewLoggingEmailCapability() *LoggingEmailCapability {

	return &LoggingEmailCapability{}
}

func (c *LoggingEmailCapability) SendEmail(ctx context.Context, entityType, recordId,
	template, recipient string) error {

	if err := ctx.Err(); err != nil {
		return err
	}
	log.GetLogger().Info(fmt.Sprintf("Email dispatched for %s record: %s", entityType, recordId),
		log.String("template", template), log.String("recipient", recipient))
	return nil
}

// LoggingNotificationCapability records notifications through the log.
type LoggingNotificationCapability struct{}

func NewLoggingNotificationCapability() *LoggingNotificationCapability {

	return &LoggingNotificationCapability{}
}

func (c *LoggingNotificationCapability) SendNotification(ctx context.Context, targetUserId,
	message string) error {

	if err := ctx.Err(); err != nil {
		return err
	}
	log.GetLogger().Info("Notification dispatched.",
		log.String("targetUserId", targetUserId), log.String("message", message))
	return nil
}
