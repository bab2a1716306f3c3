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

package provider

import (
	"github.com/wso2/crm-automation-service/internal/assignment_rules/service"
)

// AssignmentRuleProviderInterface defines the interface for the assignment rule provider.
type AssignmentRuleProviderInterface interface {
	GetAssignmentRuleService() service.AssignmentRuleServiceInterface
}

// AssignmentRuleProvider is the default implementation of the AssignmentRuleProviderInterface.
type AssignmentRuleProvider struct{}

// NewAssignmentRuleProvider creates a new instance of AssignmentRuleProvider.
func NewAssignmentRuleProvider() AssignmentRuleProviderInterface {

	return &AssignmentRuleProvider{}
}

// GetAssignmentRuleService returns the assignment rule service instance.
func (ap *AssignmentRuleProvider) GetAssignmentRuleService() service.AssignmentRuleServiceInterface {

	return service.GetAssignmentRuleService()
}
