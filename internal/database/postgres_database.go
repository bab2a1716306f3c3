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
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/wso2/crm-automation-service/internal/system/log"
)

// PostgresDB wraps the shared sql.DB handle.
type PostgresDB struct {
	DB *sql.DB
}

var (
	postgresInstance *PostgresDB
	postgresOnce     sync.Once
)

// ConnectPostgres initializes a global PostgreSQL connection
func ConnectPostgres(host, port, user, password, dbname string) (*PostgresDB, error) {
	var connectErr error
	postgresOnce.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)

		db, err := sql.Open("postgres", connStr)
		if err != nil {
			connectErr = fmt.Errorf("failed to create PostgreSQL client: %w", err)
			return
		}

		// Ping the database to ensure the connection is live
		if err = db.Ping(); err != nil {
			connectErr = fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			return
		}

		log.GetLogger().Info("Connected to PostgreSQL")

		postgresInstance = &PostgresDB{
			DB: db,
		}
	})

	return postgresInstance, connectErr
}

// GetPostgresInstance returns the PostgreSQL instance
func GetPostgresInstance() *PostgresDB {
	return postgresInstance
}

// OverridePostgresInstance replaces the global instance. Used by tests.
func OverridePostgresInstance(db *sql.DB) {
	postgresInstance = &PostgresDB{DB: db}
}
