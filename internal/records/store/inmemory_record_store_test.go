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

func Test_Get_MissingRecord(t *testing.T) {

	s := NewInMemoryRecordStore()
	_, err := s.Get("lead", "nope")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func Test_Find_SortedAndExcludesRetired(t *testing.T) {

	s := NewInMemoryRecordStore()
	s.Put(model.Record{EntityType: "lead", RecordId: "b"})
	s.Put(model.Record{EntityType: "lead", RecordId: "a"})
	s.Put(model.Record{EntityType: "lead", RecordId: "c"})
	require.NoError(t, s.Retire("lead", "b"))

	records, err := s.Find("lead")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].RecordId)
	assert.Equal(t, "c", records[1].RecordId)
}

func Test_Update_MergesFields(t *testing.T) {

	s := NewInMemoryRecordStore()
	s.Put(model.Record{
		EntityType: "lead",
		RecordId:   "L-1",
		Fields:     map[string]interface{}{"status": "new", "source": "Web"},
	})

	updated, err := s.Update("lead", "L-1", map[string]interface{}{"status": "qualified"})
	require.NoError(t, err)

	status, _ := updated.FieldString("status")
	source, _ := updated.FieldString("source")
	assert.Equal(t, "qualified", status)
	assert.Equal(t, "Web", source)
}

func Test_RepointReferences(t *testing.T) {

	s := NewInMemoryRecordStore()
	s.Put(model.Record{
		EntityType: "task",
		RecordId:   "t1",
		Fields: map[string]interface{}{
			"contact_id": "c2",
			"account_id": "a9",
		},
	})
	s.Put(model.Record{
		EntityType: "quote",
		RecordId:   "q1",
		Fields: map[string]interface{}{
			"contact": model.EntityRef{EntityType: "contact", Id: "c2"},
		},
	})
	s.Put(model.Record{
		EntityType: "case",
		RecordId:   "k1",
		Fields: map[string]interface{}{
			"reporter": map[string]interface{}{"entity_type": "contact", "id": "c2"},
		},
	})

	require.NoError(t, s.RepointReferences("c2", "c1"))

	task, _ := s.Get("task", "t1")
	contactId, _ := task.FieldString("contact_id")
	accountId, _ := task.FieldString("account_id")
	assert.Equal(t, "c1", contactId)
	assert.Equal(t, "a9", accountId, "unrelated references are untouched")

	quote, _ := s.Get("quote", "q1")
	assert.Equal(t, model.EntityRef{EntityType: "contact", Id: "c1"}, quote.Fields["contact"])

	kase, _ := s.Get("case", "k1")
	reporter, ok := kase.Fields["reporter"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "c1", reporter["id"])
}

func Test_Get_SnapshotNotAliasedByRepoint(t *testing.T) {

	s := NewInMemoryRecordStore()
	s.Put(model.Record{
		EntityType: "case",
		RecordId:   "k1",
		Fields: map[string]interface{}{
			"reporter": map[string]interface{}{"entity_type": "contact", "id": "c2"},
		},
	})

	snapshot, err := s.Get("case", "k1")
	require.NoError(t, err)
	require.NoError(t, s.RepointReferences("c2", "c1"))

	// The earlier snapshot keeps the value it was read with.
	reporter, ok := snapshot.Fields["reporter"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "c2", reporter["id"])

	current, err := s.Get("case", "k1")
	require.NoError(t, err)
	reporter, ok = current.Fields["reporter"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "c1", reporter["id"])
}

func Test_SetOwner(t *testing.T) {

	s := NewInMemoryRecordStore()
	s.Put(model.Record{EntityType: "lead", RecordId: "L-1"})

	require.NoError(t, s.SetOwner("lead", "L-1", "U5"))
	record, err := s.Get("lead", "L-1")
	require.NoError(t, err)
	assert.Equal(t, "U5", record.OwnerId)

	require.ErrorIs(t, s.SetOwner("lead", "ghost", "U5"), ErrRecordNotFound)
}
