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
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	recordModel "github.com/wso2/crm-automation-service/internal/records/model"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func contact(id string, fields map[string]interface{}) recordModel.Record {
	return recordModel.Record{
		EntityType: "contact",
		RecordId:   id,
		Fields:     fields,
	}
}

// ---- ScorePair ----

func Test_ScorePair_IdenticalRecords_Score100(t *testing.T) {

	a := contact("c1", map[string]interface{}{
		"name": "Jane Doe", "email": "jane@acme.com", "company": "Acme",
	})
	b := contact("c2", map[string]interface{}{
		"name": "Jane Doe", "email": "jane@acme.com", "company": "Acme",
	})

	score, matched := ScorePair(a, b)
	assert.Equal(t, 100, score)
	assert.ElementsMatch(t, []string{"name", "email", "company"}, matched)
}

func Test_ScorePair_NearMissName_SameEmail(t *testing.T) {

	a := contact("c1", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"})
	b := contact("c2", map[string]interface{}{"name": "John Smith", "email": "jsmith@acme.com"})

	score, matched := ScorePair(a, b)
	// Name similarity 0.9 at weight 40 plus an exact email at weight 35,
	// normalized over the two fields present on both records.
	assert.Equal(t, 95, score)
	assert.Contains(t, matched, "email")
	assert.Contains(t, matched, "name")
}

func Test_ScorePair_NearIdenticalLongNames_NeverScore100(t *testing.T) {

	long := strings.Repeat("a", 999)
	a := contact("c1", map[string]interface{}{"name": long + "x", "email": "box@acme.com"})
	b := contact("c2", map[string]interface{}{"name": long + "y", "email": "box@acme.com"})

	// Name similarity 0.999 would round the weighted average up to 100;
	// a perfect score is reserved for field-for-field exact matches.
	score, matched := ScorePair(a, b)
	assert.Equal(t, 99, score)
	assert.Contains(t, matched, "name")
	assert.Contains(t, matched, "email")
}

func Test_ScorePair_EmailComparedExactly(t *testing.T) {

	a := contact("c1", map[string]interface{}{"email": "jsmith@acme.com"})
	b := contact("c2", map[string]interface{}{"email": "jsmitt@acme.com"})

	// One character off is a different mailbox, not a near match.
	score, matched := ScorePair(a, b)
	assert.Equal(t, 0, score)
	assert.Empty(t, matched)
}

func Test_ScorePair_EmailCaseInsensitive(t *testing.T) {

	a := contact("c1", map[string]interface{}{"email": "JSmith@Acme.com"})
	b := contact("c2", map[string]interface{}{"email": "jsmith@acme.com"})

	score, matched := ScorePair(a, b)
	assert.Equal(t, 100, score)
	assert.Equal(t, []string{"email"}, matched)
}

func Test_ScorePair_MissingFieldsExcludedFromAverage(t *testing.T) {

	a := contact("c1", map[string]interface{}{"name": "Jane Doe", "email": "jane@acme.com"})
	b := contact("c2", map[string]interface{}{"name": "Jane Doe"})

	// Email exists on only one side, so the score rides on name alone.
	score, _ := ScorePair(a, b)
	assert.Equal(t, 100, score)
}

func Test_ScorePair_NoComparableFields_ScoresZero(t *testing.T) {

	a := contact("c1", map[string]interface{}{"phone": "555-0100"})
	b := contact("c2", map[string]interface{}{"phone": "555-0100"})

	score, matched := ScorePair(a, b)
	assert.Equal(t, 0, score)
	assert.Empty(t, matched)
}

func Test_ScorePair_FallbackFields(t *testing.T) {

	a := contact("c1", map[string]interface{}{"title": "Jane Doe", "account_name": "Acme"})
	b := contact("c2", map[string]interface{}{"name": "Jane Doe", "company": "Acme"})

	score, matched := ScorePair(a, b)
	assert.Equal(t, 100, score)
	assert.ElementsMatch(t, []string{"name", "company"}, matched)
}

// ---- Scan ----

func Test_Scan_ThresholdValidation(t *testing.T) {

	svc := NewScanService(recordStore.NewInMemoryRecordStore())

	_, err := svc.Scan("contact", 49)
	require.Error(t, err)

	_, err = svc.Scan("contact", 101)
	require.Error(t, err)

	_, err = svc.Scan("contact", 50)
	require.NoError(t, err)
}

func Test_Scan_FindsPairsAboveThreshold(t *testing.T) {

	records := recordStore.NewInMemoryRecordStore()
	records.Put(contact("c1", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c2", map[string]interface{}{"name": "John Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c3", map[string]interface{}{"name": "Maria Garcia", "email": "mg@globex.com"}))

	svc := NewScanService(records)
	response, err := svc.Scan("contact", 70)
	require.NoError(t, err)

	require.Len(t, response.Pairs, 1)
	pair := response.Pairs[0]
	assert.Equal(t, "c1", pair.RecordIdA)
	assert.Equal(t, "c2", pair.RecordIdB)
	assert.Equal(t, 95, pair.Score)
	assert.Contains(t, pair.MatchedFields, "email")
}

func Test_Scan_Threshold100_OnlyExactMatches(t *testing.T) {

	records := recordStore.NewInMemoryRecordStore()
	records.Put(contact("c1", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c2", map[string]interface{}{"name": "John Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c3", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))

	svc := NewScanService(records)
	response, err := svc.Scan("contact", 100)
	require.NoError(t, err)

	require.Len(t, response.Pairs, 1)
	assert.Equal(t, "c1", response.Pairs[0].RecordIdA)
	assert.Equal(t, "c3", response.Pairs[0].RecordIdB)
}

func Test_Scan_Threshold100_ExcludesNearIdenticalLongNames(t *testing.T) {

	long := strings.Repeat("smith", 200)
	records := recordStore.NewInMemoryRecordStore()
	records.Put(contact("c1", map[string]interface{}{"name": long + "a", "email": "s@acme.com"}))
	records.Put(contact("c2", map[string]interface{}{"name": long + "b", "email": "s@acme.com"}))

	svc := NewScanService(records)
	response, err := svc.Scan("contact", 100)
	require.NoError(t, err)

	assert.Empty(t, response.Pairs)
}

func Test_Scan_Deterministic(t *testing.T) {

	records := recordStore.NewInMemoryRecordStore()
	records.Put(contact("c1", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c2", map[string]interface{}{"name": "John Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c3", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c4", map[string]interface{}{"name": "Jane Doe", "email": "jane@acme.com"}))

	svc := NewScanService(records)
	first, err := svc.Scan("contact", 70)
	require.NoError(t, err)
	second, err := svc.Scan("contact", 70)
	require.NoError(t, err)

	assert.Equal(t, first.Pairs, second.Pairs)
	// Highest score first, id order breaking ties.
	for i := 1; i < len(first.Pairs); i++ {
		assert.GreaterOrEqual(t, first.Pairs[i-1].Score, first.Pairs[i].Score)
	}
}

func Test_Scan_ExcludesRetiredRecords(t *testing.T) {

	records := recordStore.NewInMemoryRecordStore()
	records.Put(contact("c1", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	records.Put(contact("c2", map[string]interface{}{"name": "Jon Smith", "email": "jsmith@acme.com"}))
	require.NoError(t, records.Retire("contact", "c2"))

	svc := NewScanService(records)
	response, err := svc.Scan("contact", 70)
	require.NoError(t, err)
	assert.Empty(t, response.Pairs)
}
