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
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
	"github.com/wso2/crm-automation-service/internal/conditions"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// AssignmentRuleStoreInterface abstracts rule persistence so the service
// can run against postgres in production and a fake in unit tests.
type AssignmentRuleStoreInterface interface {
	AddAssignmentRule(rule model.AssignmentRule) error
	GetAssignmentRules(entityType string) ([]model.AssignmentRule, error)
	GetAssignmentRule(ruleId string) (model.AssignmentRule, error)
	UpdateAssignmentRule(rule model.AssignmentRule) error
	DeleteAssignmentRule(ruleId string) error
}

// AssignmentRuleStore handles DB operations for assignment rules.
type AssignmentRuleStore struct {
	DB *sql.DB
}

// NewAssignmentRuleStore initializes a store over the shared DB handle.
func NewAssignmentRuleStore(db *sql.DB) *AssignmentRuleStore {
	return &AssignmentRuleStore{DB: db}
}

// AddAssignmentRule inserts a new assignment rule. The seq column captures
// insertion order, which breaks priority ties during evaluation.
func (s *AssignmentRuleStore) AddAssignmentRule(rule model.AssignmentRule) error {

	criteriaJson, err := json.Marshal(rule.Criterion)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	query := `
        INSERT INTO assignment_rules
            (rule_id, rule_name, entity_type, priority, criteria, assigned_to, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.DB.Exec(query, rule.RuleId, rule.RuleName, rule.EntityType, rule.Priority,
		string(criteriaJson), rule.AssignedTo, rule.IsActive, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to add assignment rule with id: %s", rule.RuleId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_ASSIGNMENT_RULE, err)
	}

	log.GetLogger().Info(fmt.Sprintf("Assignment rule persisted successfully: %s", rule.RuleName))
	return nil
}

// GetAssignmentRules fetches all rules for an entity type, ordered by
// priority and then insertion order.
func (s *AssignmentRuleStore) GetAssignmentRules(entityType string) ([]model.AssignmentRule, error) {

	query := `
        SELECT rule_id, rule_name, entity_type, priority, criteria, assigned_to, is_active, created_at, updated_at
        FROM assignment_rules
        WHERE entity_type = $1
        ORDER BY priority ASC, seq ASC`

	rows, err := s.DB.Query(query, entityType)
	if err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_ASSIGNMENT_RULES, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.GetLogger().Debug("Error occurred while closing rows.", log.Error(err))
		}
	}()

	var rules []model.AssignmentRule
	for rows.Next() {
		rule, err := scanAssignmentRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_ASSIGNMENT_RULES, err)
	}
	return rules, nil
}

// GetAssignmentRule fetches a specific rule. A missing rule returns a zero
// value with no error, mirroring the read-mostly admin surface.
func (s *AssignmentRuleStore) GetAssignmentRule(ruleId string) (model.AssignmentRule, error) {

	query := `
        SELECT rule_id, rule_name, entity_type, priority, criteria, assigned_to, is_active, created_at, updated_at
        FROM assignment_rules
        WHERE rule_id = $1`

	row := s.DB.QueryRow(query, ruleId)
	rule, err := scanAssignmentRule(row)
	if err == sql.ErrNoRows {
		return model.AssignmentRule{}, nil
	}
	if err != nil {
		return model.AssignmentRule{}, err
	}
	return rule, nil
}

// UpdateAssignmentRule replaces a rule definition in place. The seq column
// is untouched so the rule keeps its original position among priority ties.
func (s *AssignmentRuleStore) UpdateAssignmentRule(rule model.AssignmentRule) error {

	criteriaJson, err := json.Marshal(rule.Criterion)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	query := `
        UPDATE assignment_rules
        SET rule_name = $2, entity_type = $3, priority = $4, criteria = $5,
            assigned_to = $6, is_active = $7, updated_at = $8
        WHERE rule_id = $1`

	_, err = s.DB.Exec(query, rule.RuleId, rule.RuleName, rule.EntityType, rule.Priority,
		string(criteriaJson), rule.AssignedTo, rule.IsActive, rule.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.UPDATE_ASSIGNMENT_RULE, err)
	}
	return nil
}

// DeleteAssignmentRule removes a rule.
func (s *AssignmentRuleStore) DeleteAssignmentRule(ruleId string) error {

	_, err := s.DB.Exec(`DELETE FROM assignment_rules WHERE rule_id = $1`, ruleId)
	if err != nil {
		return errors2.NewServerError(errors2.DELETE_ASSIGNMENT_RULE, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignmentRule(row rowScanner) (model.AssignmentRule, error) {

	var rule model.AssignmentRule
	var criteriaJson string

	err := row.Scan(&rule.RuleId, &rule.RuleName, &rule.EntityType, &rule.Priority,
		&criteriaJson, &rule.AssignedTo, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.AssignmentRule{}, err
	}
	if err != nil {
		return model.AssignmentRule{}, errors2.NewServerError(errors2.FETCH_ASSIGNMENT_RULES, err)
	}

	var criterion conditions.Criterion
	if err := json.Unmarshal([]byte(criteriaJson), &criterion); err != nil {
		return model.AssignmentRule{}, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
	}
	rule.Criterion = criterion
	return rule, nil
}
