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

package service

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/store"
	"github.com/wso2/crm-automation-service/internal/conditions"
	"github.com/wso2/crm-automation-service/internal/database"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	"github.com/wso2/crm-automation-service/internal/system/cache"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

type AssignmentRuleServiceInterface interface {
	AddAssignmentRule(rule model.AssignmentRule) error
	GetAssignmentRules(entityType string) ([]model.AssignmentRule, error)
	GetAssignmentRule(ruleId string) (model.AssignmentRule, error)
	UpdateAssignmentRule(rule model.AssignmentRule) error
	DeleteAssignmentRule(ruleId string) error
	Assign(record recordModel.Record) (string, bool)
}

// AssignmentRuleService is the default implementation of the AssignmentRuleServiceInterface.
type AssignmentRuleService struct {
	ruleStore store.AssignmentRuleStoreInterface
	ruleCache *cache.Cache
}

var (
	defaultService *AssignmentRuleService
	serviceOnce    sync.Once
)

// GetAssignmentRuleService returns the singleton service backed by the
// shared postgres instance. A singleton keeps the rule cache warm across
// record-creation events.
func GetAssignmentRuleService() AssignmentRuleServiceInterface {

	serviceOnce.Do(func() {
		postgresDB := database.GetPostgresInstance()
		defaultService = NewAssignmentRuleService(store.NewAssignmentRuleStore(postgresDB.DB))
	})
	return defaultService
}

// NewAssignmentRuleService creates a service over an explicit rule store.
func NewAssignmentRuleService(ruleStore store.AssignmentRuleStoreInterface) *AssignmentRuleService {

	return &AssignmentRuleService{
		ruleStore: ruleStore,
		ruleCache: cache.NewCache(constants.RuleCacheTTL),
	}
}

// AddAssignmentRule adds a new assignment rule.
func (ars *AssignmentRuleService) AddAssignmentRule(rule model.AssignmentRule) error {

	if err := validateAssignmentRule(rule); err != nil {
		return err
	}

	now := time.Now().UTC().Unix()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if err := ars.ruleStore.AddAssignmentRule(rule); err != nil {
		return err
	}
	ars.ruleCache.Delete(rule.EntityType)
	return nil
}

// GetAssignmentRules fetches all rules for an entity type.
func (ars *AssignmentRuleService) GetAssignmentRules(entityType string) ([]model.AssignmentRule, error) {

	return ars.ruleStore.GetAssignmentRules(entityType)
}

// GetAssignmentRule fetches a specific rule.
func (ars *AssignmentRuleService) GetAssignmentRule(ruleId string) (model.AssignmentRule, error) {

	return ars.ruleStore.GetAssignmentRule(ruleId)
}

// UpdateAssignmentRule replaces a rule definition.
func (ars *AssignmentRuleService) UpdateAssignmentRule(rule model.AssignmentRule) error {

	if err := validateAssignmentRule(rule); err != nil {
		return err
	}

	existing, err := ars.ruleStore.GetAssignmentRule(rule.RuleId)
	if err != nil {
		return err
	}
	if existing.RuleId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ASSIGNMENT_RULE_NOT_FOUND.Code,
			Message:     errors2.ASSIGNMENT_RULE_NOT_FOUND.Message,
			Description: errors2.ASSIGNMENT_RULE_NOT_FOUND.Description,
		}, http.StatusNotFound)
	}

	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().UTC().Unix()

	if err := ars.ruleStore.UpdateAssignmentRule(rule); err != nil {
		return err
	}
	ars.ruleCache.Delete(existing.EntityType)
	ars.ruleCache.Delete(rule.EntityType)
	return nil
}

// DeleteAssignmentRule removes a rule.
func (ars *AssignmentRuleService) DeleteAssignmentRule(ruleId string) error {

	existing, err := ars.ruleStore.GetAssignmentRule(ruleId)
	if err != nil {
		return err
	}
	if existing.RuleId == "" {
		return nil
	}
	if err := ars.ruleStore.DeleteAssignmentRule(ruleId); err != nil {
		return err
	}
	ars.ruleCache.Delete(existing.EntityType)
	return nil
}

// Assign evaluates the rule set for the record's entity type and returns
// the assignee of the first matching rule. Rules are evaluated ascending by
// priority with insertion order breaking ties; remaining rules are not
// evaluated once one matches. The second return value is false when no rule
// matched — the caller leaves the record unowned, no default owner is
// fabricated here.
//
// Assignment must never block record creation: any store failure is logged
// and reported as no-match, and a malformed criterion simply never matches.
func (ars *AssignmentRuleService) Assign(record recordModel.Record) (string, bool) {

	logger := log.GetLogger()
	rules, err := ars.loadActiveRules(record.EntityType)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load assignment rules for entity type: %s",
			record.EntityType), log.Error(err))
		return "", false
	}

	for _, rule := range rules {
		if conditions.Evaluate(rule.Criterion, record) {
			logger.Info(fmt.Sprintf("Record %s matched assignment rule: %s", record.RecordId, rule.RuleName))
			return rule.AssignedTo, true
		}
	}
	return "", false
}

// loadActiveRules returns the active rules for an entity type sorted by
// priority, using the short-TTL cache to keep the hot create path off the
// database.
func (ars *AssignmentRuleService) loadActiveRules(entityType string) ([]model.AssignmentRule, error) {

	if cached, found := ars.ruleCache.Get(entityType); found {
		if rules, ok := cached.([]model.AssignmentRule); ok {
			return rules, nil
		}
	}

	rules, err := ars.ruleStore.GetAssignmentRules(entityType)
	if err != nil {
		return nil, err
	}

	active := make([]model.AssignmentRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	// The store already orders by priority and insertion; the stable sort
	// preserves insertion order for ties even if a store implementation
	// returns rules unsorted.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	ars.ruleCache.Set(entityType, active)
	return active, nil
}

// validateAssignmentRule validates an assignment rule definition.
func validateAssignmentRule(rule model.AssignmentRule) error {

	if rule.RuleName == "" || rule.EntityType == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ASSIGNMENT_RULE_VALIDATION.Code,
			Message:     errors2.ASSIGNMENT_RULE_VALIDATION.Message,
			Description: "Both 'rule_name' and 'entity_type' must be provided.",
		}, http.StatusBadRequest)
	}

	if rule.AssignedTo == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ASSIGNMENT_RULE_VALIDATION.Code,
			Message:     errors2.ASSIGNMENT_RULE_VALIDATION.Message,
			Description: "'assigned_to' must reference a user.",
		}, http.StatusBadRequest)
	}

	if err := conditions.Validate(rule.Criterion); err != nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONDITION_OP_VALIDATION.Code,
			Message:     errors2.CONDITION_OP_VALIDATION.Message,
			Description: err.Error(),
		}, http.StatusBadRequest)
	}

	return nil
}
