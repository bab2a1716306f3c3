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
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/crm-automation-service/internal/records/model"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	errors2 "github.com/wso2/crm-automation-service/internal/system/errors"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// MongoRecordStore stores entity records as documents. Records are
// free-form field maps, so a document collection fits them without a
// per-entity schema.
type MongoRecordStore struct {
	Collection *mongo.Collection
}

// NewMongoRecordStore initializes a record store over the given database.
func NewMongoRecordStore(db *mongo.Database) *MongoRecordStore {
	return &MongoRecordStore{
		Collection: db.Collection(constants.RecordCollection),
	}
}

// Get returns a single record. ErrRecordNotFound when absent.
func (s *MongoRecordStore) Get(entityType, recordId string) (model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	filter := bson.M{"entity_type": entityType, "record_id": recordId}
	var record model.Record

	err := s.Collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.Record{}, ErrRecordNotFound
		}
		return model.Record{}, errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	return record, nil
}

// Find returns all non-retired records of the given entity type, ordered by
// record id for determinism.
func (s *MongoRecordStore) Find(entityType string) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	filter := bson.M{"entity_type": entityType, "is_retired": bson.M{"$ne": true}}
	opts := options.Find().SetSort(bson.D{{Key: "record_id", Value: 1}})
	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		err := cursor.Close(ctx)
		if err != nil {
			log.GetLogger().Debug("Error occurred while closing cursor.", log.Error(err))
		}
	}(cursor, ctx)

	var records []model.Record
	if err = cursor.All(ctx, &records); err != nil {
		return nil, errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	return records, nil
}

// Update applies the given field values to an existing record.
func (s *MongoRecordStore) Update(entityType, recordId string, fields map[string]interface{}) (model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	setDoc := bson.M{"updated_at": time.Now().UTC()}
	for name, value := range fields {
		setDoc["fields."+name] = value
	}

	filter := bson.M{"entity_type": entityType, "record_id": recordId}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Record
	err := s.Collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": setDoc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.Record{}, ErrRecordNotFound
		}
		return model.Record{}, errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	return updated, nil
}

// Retire soft-deletes a record.
func (s *MongoRecordStore) Retire(entityType, recordId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	filter := bson.M{"entity_type": entityType, "record_id": recordId}
	update := bson.M{"$set": bson.M{"is_retired": true, "updated_at": time.Now().UTC()}}

	result, err := s.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SetOwner assigns ownership of a record.
func (s *MongoRecordStore) SetOwner(entityType, recordId, ownerId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	filter := bson.M{"entity_type": entityType, "record_id": recordId}
	update := bson.M{"$set": bson.M{"owner_id": ownerId, "updated_at": time.Now().UTC()}}

	result, err := s.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// normalizeFieldDocs rewrites bson-decoded subdocuments (primitive.M) into
// plain maps so the shared reference-repointing logic can inspect them.
func normalizeFieldDocs(fields map[string]interface{}) {
	for name, value := range fields {
		if doc, ok := value.(bson.M); ok {
			fields[name] = map[string]interface{}(doc)
		}
	}
}

// RepointReferences rewrites every reference field pointing at fromId so
// that it points at toId. Reference field names are not known up front, so
// the candidate documents are loaded and rewritten client-side; the record
// sets this service operates on are small enough for that to hold up.
func (s *MongoRecordStore) RepointReferences(fromId, toId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RecordStoreTimeout)
	defer cancel()

	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		err := cursor.Close(ctx)
		if err != nil {
			log.GetLogger().Debug("Error occurred while closing cursor.", log.Error(err))
		}
	}(cursor, ctx)

	var all []model.Record
	if err = cursor.All(ctx, &all); err != nil {
		return errors2.NewServerError(errors2.RECORD_STORE_FAILURE, err)
	}

	for i := range all {
		record := all[i]
		normalizeFieldDocs(record.Fields)
		if !repointRecordFields(&record, fromId, toId) {
			continue
		}
		filter := bson.M{"entity_type": record.EntityType, "record_id": record.RecordId}
		update := bson.M{"$set": bson.M{"fields": record.Fields, "updated_at": time.Now().UTC()}}
		if _, err := s.Collection.UpdateOne(ctx, filter, update); err != nil {
			return errors2.NewServerError(errors2.RECORD_STORE_FAILURE,
				fmt.Errorf("repointing %s/%s: %w", record.EntityType, record.RecordId, err))
		}
	}
	return nil
}
