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

package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wso2/crm-automation-service/internal/system/log"
)

// MongoDB wraps the shared record database handle.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	mongoOnce     sync.Once
)

// ConnectMongo initializes a global MongoDB connection for the record store.
func ConnectMongo(uri, dbName string) (*MongoDB, error) {
	var connectErr error
	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			connectErr = fmt.Errorf("failed to create MongoDB client: %w", err)
			return
		}

		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			connectErr = fmt.Errorf("failed to connect to MongoDB: %w", err)
			return
		}

		log.GetLogger().Info("Connected to MongoDB")

		mongoInstance = &MongoDB{
			Client:   client,
			Database: client.Database(dbName),
		}
	})

	return mongoInstance, connectErr
}

// GetMongoInstance returns the MongoDB instance
func GetMongoInstance() *MongoDB {
	return mongoInstance
}

// OverrideMongoInstance replaces the global instance. Used by tests.
func OverrideMongoInstance(db *mongo.Database) {
	mongoInstance = &MongoDB{Database: db}
}
