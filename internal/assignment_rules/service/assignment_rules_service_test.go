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
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/model"
	"github.com/wso2/crm-automation-service/internal/assignment_rules/store"
	"github.com/wso2/crm-automation-service/internal/conditions"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func newService() *AssignmentRuleService {
	return NewAssignmentRuleService(store.NewInMemoryAssignmentRuleStore())
}

func lead(fields map[string]interface{}) recordModel.Record {
	return recordModel.Record{
		EntityType: "lead",
		RecordId:   "L-1",
		Fields:     fields,
	}
}

func rule(id, name string, priority int, criterion conditions.Criterion, assignedTo string) model.AssignmentRule {
	return model.AssignmentRule{
		RuleId:     id,
		RuleName:   name,
		EntityType: "lead",
		Priority:   priority,
		Criterion:  criterion,
		AssignedTo: assignedTo,
		IsActive:   true,
	}
}

// ---- CRUD ----

func Test_AddAssignmentRule_Validation(t *testing.T) {

	svc := newService()

	t.Run("Missing_name", func(t *testing.T) {
		bad := rule("r1", "", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U1")
		require.Error(t, svc.AddAssignmentRule(bad))
	})

	t.Run("Missing_assignee", func(t *testing.T) {
		bad := rule("r1", "Web leads", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "")
		require.Error(t, svc.AddAssignmentRule(bad))
	})

	t.Run("Unsupported_operator", func(t *testing.T) {
		bad := rule("r1", "Web leads", 1, conditions.Criterion{Field: "source", Operator: "regex", Value: ".*"}, "U1")
		require.Error(t, svc.AddAssignmentRule(bad))
	})

	t.Run("Valid_rule", func(t *testing.T) {
		good := rule("r1", "Web leads", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U1")
		require.NoError(t, svc.AddAssignmentRule(good))

		fetched, err := svc.GetAssignmentRule("r1")
		require.NoError(t, err)
		assert.Equal(t, "Web leads", fetched.RuleName)
		assert.NotZero(t, fetched.CreatedAt)
	})
}

func Test_UpdateAssignmentRule_NotFound(t *testing.T) {

	svc := newService()
	missing := rule("nope", "Ghost", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U1")
	require.Error(t, svc.UpdateAssignmentRule(missing))
}

// ---- Assign ----

func Test_Assign_FirstMatchByPriorityWins(t *testing.T) {

	svc := newService()
	require.NoError(t, svc.AddAssignmentRule(
		rule("r2", "Anything else", 2, conditions.Criterion{Field: "source", Operator: "contains", Value: ""}, "U2")))
	require.NoError(t, svc.AddAssignmentRule(
		rule("r1", "Referrals first", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Referral"}, "U1")))

	owner, matched := svc.Assign(lead(map[string]interface{}{"source": "Referral"}))
	require.True(t, matched)
	assert.Equal(t, "U1", owner)
}

func Test_Assign_PriorityTie_InsertionOrderWins(t *testing.T) {

	svc := newService()
	catchAll := conditions.Criterion{Field: "source", Operator: "contains", Value: ""}
	require.NoError(t, svc.AddAssignmentRule(rule("rA", "First added", 5, catchAll, "UA")))
	require.NoError(t, svc.AddAssignmentRule(rule("rB", "Second added", 5, catchAll, "UB")))

	owner, matched := svc.Assign(lead(map[string]interface{}{"source": "Web"}))
	require.True(t, matched)
	assert.Equal(t, "UA", owner)
}

func Test_Assign_NoMatch_LeavesUnowned(t *testing.T) {

	svc := newService()
	require.NoError(t, svc.AddAssignmentRule(
		rule("r1", "Referrals only", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Referral"}, "U1")))

	_, matched := svc.Assign(lead(map[string]interface{}{"source": "Cold call"}))
	assert.False(t, matched)
}

func Test_Assign_InactiveRulesSkipped(t *testing.T) {

	svc := newService()
	inactive := rule("r1", "Disabled", 1,
		conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U1")
	inactive.IsActive = false
	require.NoError(t, svc.AddAssignmentRule(inactive))
	require.NoError(t, svc.AddAssignmentRule(
		rule("r2", "Fallback", 2, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U2")))

	owner, matched := svc.Assign(lead(map[string]interface{}{"source": "Web"}))
	require.True(t, matched)
	assert.Equal(t, "U2", owner)
}

func Test_Assign_StoreFailure_ReportsNoMatch(t *testing.T) {

	svc := NewAssignmentRuleService(failingRuleStore{})

	_, matched := svc.Assign(lead(map[string]interface{}{"source": "Web"}))
	assert.False(t, matched)
}

func Test_Assign_CacheInvalidatedOnMutation(t *testing.T) {

	svc := newService()
	require.NoError(t, svc.AddAssignmentRule(
		rule("r1", "Web leads", 1, conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U1")))

	owner, matched := svc.Assign(lead(map[string]interface{}{"source": "Web"}))
	require.True(t, matched)
	require.Equal(t, "U1", owner)

	updated := rule("r1", "Web leads", 1,
		conditions.Criterion{Field: "source", Operator: "equals", Value: "Web"}, "U9")
	require.NoError(t, svc.UpdateAssignmentRule(updated))

	owner, matched = svc.Assign(lead(map[string]interface{}{"source": "Web"}))
	require.True(t, matched)
	assert.Equal(t, "U9", owner)
}

// failingRuleStore simulates an unreachable rule store.
type failingRuleStore struct{}

func (failingRuleStore) AddAssignmentRule(model.AssignmentRule) error { return errors.New("down") }
func (failingRuleStore) GetAssignmentRules(string) ([]model.AssignmentRule, error) {
	return nil, errors.New("down")
}
func (failingRuleStore) GetAssignmentRule(string) (model.AssignmentRule, error) {
	return model.AssignmentRule{}, errors.New("down")
}
func (failingRuleStore) UpdateAssignmentRule(model.AssignmentRule) error { return errors.New("down") }
func (failingRuleStore) DeleteAssignmentRule(string) error               { return errors.New("down") }
