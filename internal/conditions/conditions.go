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
	"fmt"
	"strings"

	"github.com/wso2/crm-automation-service/internal/records/model"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// Criterion is a single field/operator/value condition evaluated against
// one record snapshot. Criteria are stateless and immutable.
type Criterion struct {
	Field    string `json:"field" bson:"field"`
	Operator string `json:"operator" bson:"operator"`
	Value    string `json:"value" bson:"value"`
}

// Evaluate checks a single criterion against a record.
//
// equals is a case-sensitive exact match; contains and starts_with are
// case-insensitive. A field missing from the record evaluates to false, and
// an unknown operator is treated as a non-match rather than an error so
// that a malformed rule can never block a record operation.
func Evaluate(criterion Criterion, record model.Record) bool {

	fieldValue, found := record.FieldString(criterion.Field)
	if !found {
		return false
	}

	switch strings.ToLower(criterion.Operator) {
	case constants.OperatorEquals:
		return fieldValue == criterion.Value
	case constants.OperatorContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(criterion.Value))
	case constants.OperatorStartsWith:
		return strings.HasPrefix(strings.ToLower(fieldValue), strings.ToLower(criterion.Value))
	default:
		log.GetLogger().Debug(fmt.Sprintf("Unknown condition operator '%s'; treating as non-match.",
			criterion.Operator))
		return false
	}
}

// EvaluateAll checks an AND-combined criteria set against a record,
// short-circuiting on the first non-match. An empty criteria set matches
// everything; trigger-on-any-create workflows rely on that.
func EvaluateAll(criteria []Criterion, record model.Record) bool {
	for _, criterion := range criteria {
		if !Evaluate(criterion, record) {
			return false
		}
	}
	return true
}

// Validate reports whether a criterion is well-formed. The engines never
// call this; it guards the admin surface so malformed criteria are rejected
// at definition time instead of silently never matching.
func Validate(criterion Criterion) error {
	if criterion.Field == "" {
		return fmt.Errorf("condition field must not be empty")
	}
	if !constants.AllowedConditionOperators[strings.ToLower(criterion.Operator)] {
		return fmt.Errorf("operator '%s' is not supported", criterion.Operator)
	}
	return nil
}
