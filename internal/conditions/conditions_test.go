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

package conditions

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/crm-automation-service/internal/records/model"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func record(fields map[string]interface{}) model.Record {
	return model.Record{
		EntityType: "lead",
		RecordId:   "L-1",
		Fields:     fields,
	}
}

// ---- Evaluate ----

func Test_Evaluate_Equals(t *testing.T) {

	rec := record(map[string]interface{}{"source": "Referral"})

	assert.True(t, Evaluate(Criterion{Field: "source", Operator: "equals", Value: "Referral"}, rec))
	// Equals is case sensitive.
	assert.False(t, Evaluate(Criterion{Field: "source", Operator: "equals", Value: "referral"}, rec))
	assert.False(t, Evaluate(Criterion{Field: "source", Operator: "equals", Value: "Web"}, rec))
}

func Test_Evaluate_Contains_CaseInsensitive(t *testing.T) {

	rec := record(map[string]interface{}{"company": "Acme Corporation"})

	assert.True(t, Evaluate(Criterion{Field: "company", Operator: "contains", Value: "acme"}, rec))
	assert.True(t, Evaluate(Criterion{Field: "company", Operator: "contains", Value: "CORP"}, rec))
	assert.False(t, Evaluate(Criterion{Field: "company", Operator: "contains", Value: "globex"}, rec))
}

func Test_Evaluate_StartsWith_CaseInsensitive(t *testing.T) {

	rec := record(map[string]interface{}{"name": "Jane Doe"})

	assert.True(t, Evaluate(Criterion{Field: "name", Operator: "starts_with", Value: "jane"}, rec))
	assert.False(t, Evaluate(Criterion{Field: "name", Operator: "starts_with", Value: "doe"}, rec))
}

func Test_Evaluate_MissingField_NeverMatches(t *testing.T) {

	rec := record(map[string]interface{}{"name": "Jane Doe"})

	assert.False(t, Evaluate(Criterion{Field: "industry", Operator: "equals", Value: ""}, rec))
	assert.False(t, Evaluate(Criterion{Field: "industry", Operator: "contains", Value: "tech"}, rec))
}

func Test_Evaluate_UnknownOperator_NeverMatches(t *testing.T) {

	rec := record(map[string]interface{}{"name": "Jane Doe"})

	assert.False(t, Evaluate(Criterion{Field: "name", Operator: "greater_than", Value: "A"}, rec))
}

func Test_Evaluate_NonStringField_UsesStringForm(t *testing.T) {

	rec := record(map[string]interface{}{"employee_count": 250})

	assert.True(t, Evaluate(Criterion{Field: "employee_count", Operator: "equals", Value: "250"}, rec))
}

// ---- EvaluateAll ----

func Test_EvaluateAll_EmptyCriteria_Matches(t *testing.T) {

	rec := record(map[string]interface{}{})
	assert.True(t, EvaluateAll(nil, rec))
	assert.True(t, EvaluateAll([]Criterion{}, rec))
}

func Test_EvaluateAll_AllMustHold(t *testing.T) {

	rec := record(map[string]interface{}{"source": "Web", "status": "new"})

	both := []Criterion{
		{Field: "source", Operator: "equals", Value: "Web"},
		{Field: "status", Operator: "equals", Value: "new"},
	}
	assert.True(t, EvaluateAll(both, rec))

	oneFails := []Criterion{
		{Field: "source", Operator: "equals", Value: "Web"},
		{Field: "status", Operator: "equals", Value: "closed"},
	}
	assert.False(t, EvaluateAll(oneFails, rec))
}

// ---- Validate ----

func Test_Validate(t *testing.T) {

	require.NoError(t, Validate(Criterion{Field: "source", Operator: "equals", Value: "Web"}))
	require.Error(t, Validate(Criterion{Field: "", Operator: "equals", Value: "Web"}))
	require.Error(t, Validate(Criterion{Field: "source", Operator: "matches", Value: "Web"}))
}
