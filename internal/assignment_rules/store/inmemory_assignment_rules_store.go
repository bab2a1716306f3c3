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
	"sync"

	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
)

// InMemoryAssignmentRuleStore keeps rules in insertion order, matching the
// seq ordering the postgres store provides. Used by unit tests and
// database-less deployments.
type InMemoryAssignmentRuleStore struct {
	mu    sync.RWMutex
	rules []model.AssignmentRule
}

// NewInMemoryAssignmentRuleStore creates an empty in-memory rule store.
func NewInMemoryAssignmentRuleStore() *InMemoryAssignmentRuleStore {
	return &InMemoryAssignmentRuleStore{}
}

func (s *InMemoryAssignmentRuleStore) AddAssignmentRule(rule model.AssignmentRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = append(s.rules, rule)
	return nil
}

func (s *InMemoryAssignmentRuleStore) GetAssignmentRules(entityType string) ([]model.AssignmentRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.AssignmentRule
	for _, rule := range s.rules {
		if rule.EntityType == entityType {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (s *InMemoryAssignmentRuleStore) GetAssignmentRule(ruleId string) (model.AssignmentRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rule := range s.rules {
		if rule.RuleId == ruleId {
			return rule, nil
		}
	}
	return model.AssignmentRule{}, nil
}

func (s *InMemoryAssignmentRuleStore) UpdateAssignmentRule(updated model.AssignmentRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rule := range s.rules {
		if rule.RuleId == updated.RuleId {
			// Keep the original slot so priority ties keep insertion order.
			s.rules[i] = updated
			return nil
		}
	}
	return nil
}

func (s *InMemoryAssignmentRuleStore) DeleteAssignmentRule(ruleId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rule := range s.rules {
		if rule.RuleId == ruleId {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return nil
}
