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

package handler

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wso2/crm-automation-service/internal/database"
	"github.com/wso2/crm-automation-service/internal/system/utils"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth reports process liveness.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "UP"}, "health")
}

// HandleReadiness reports whether both backing stores answer.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {

	status := map[string]string{"postgres": "UP", "mongo": "UP"}
	healthy := true

	if postgresDB := database.GetPostgresInstance(); postgresDB == nil || postgresDB.DB.Ping() != nil {
		status["postgres"] = "DOWN"
		healthy = false
	}

	if mongoDB := database.GetMongoInstance(); mongoDB == nil || mongoDB.Client == nil {
		status["mongo"] = "DOWN"
		healthy = false
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if mongoDB.Client.Ping(ctx, readpref.Primary()) != nil {
			status["mongo"] = "DOWN"
			healthy = false
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	utils.RespondJSON(w, code, status, "health")
}
