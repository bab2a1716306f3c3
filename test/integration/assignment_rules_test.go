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

package integration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/store"
	"github.com/wso2/crm-automation-service/internal/conditions"
)

func Test_AssignmentRuleStore(t *testing.T) {

	ruleStore := store.NewAssignmentRuleStore(testPostgres.DB)

	rule := model.AssignmentRule{
		RuleId:     uuid.New().String(),
		RuleName:   "Enterprise leads",
		EntityType: "lead",
		Priority:   1,
		Criterion:  conditions.Criterion{Field: "segment", Operator: "equals", Value: "enterprise"},
		AssignedTo: "U1",
		IsActive:   true,
		CreatedAt:  time.Now().Unix(),
		UpdatedAt:  time.Now().Unix(),
	}

	t.Run("Add_assignment_rule", func(t *testing.T) {
		require.NoError(t, ruleStore.AddAssignmentRule(rule))
	})

	t.Run("Get_assignment_rule", func(t *testing.T) {
		fetched, err := ruleStore.GetAssignmentRule(rule.RuleId)
		require.NoError(t, err)
		require.Equal(t, rule.RuleName, fetched.RuleName)
		require.Equal(t, rule.Criterion, fetched.Criterion)
	})

	t.Run("Get_missing_rule_returns_zero_value", func(t *testing.T) {
		fetched, err := ruleStore.GetAssignmentRule(uuid.New().String())
		require.NoError(t, err)
		require.Empty(t, fetched.RuleId)
	})

	t.Run("Rules_ordered_by_priority_then_insertion", func(t *testing.T) {
		second := rule
		second.RuleId = uuid.New().String()
		second.RuleName = "Catch all"
		second.Priority = 1
		require.NoError(t, ruleStore.AddAssignmentRule(second))

		urgent := rule
		urgent.RuleId = uuid.New().String()
		urgent.RuleName = "Urgent"
		urgent.Priority = 0
		require.NoError(t, ruleStore.AddAssignmentRule(urgent))

		rules, err := ruleStore.GetAssignmentRules("lead")
		require.NoError(t, err)
		require.Len(t, rules, 3)
		require.Equal(t, "Urgent", rules[0].RuleName)
		require.Equal(t, "Enterprise leads", rules[1].RuleName)
		require.Equal(t, "Catch all", rules[2].RuleName)
	})

	t.Run("Update_assignment_rule", func(t *testing.T) {
		rule.AssignedTo = "U2"
		rule.UpdatedAt = time.Now().Unix()
		require.NoError(t, ruleStore.UpdateAssignmentRule(rule))

		fetched, err := ruleStore.GetAssignmentRule(rule.RuleId)
		require.NoError(t, err)
		require.Equal(t, "U2", fetched.AssignedTo)
	})

	t.Run("Delete_assignment_rule", func(t *testing.T) {
		require.NoError(t, ruleStore.DeleteAssignmentRule(rule.RuleId))
		fetched, err := ruleStore.GetAssignmentRule(rule.RuleId)
		require.NoError(t, err)
		require.Empty(t, fetched.RuleId)
	})

	t.Cleanup(func() {
		rules, _ := ruleStore.GetAssignmentRules("lead")
		for _, r := range rules {
			_ = ruleStore.DeleteAssignmentRule(r.RuleId)
		}
	})
}
