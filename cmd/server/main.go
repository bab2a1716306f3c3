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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/wso2/crm-automation-service/internal/database"
	"github.com/wso2/crm-automation-service/internal/system/config"
	"github.com/wso2/crm-automation-service/internal/system/constants"
	"github.com/wso2/crm-automation-service/internal/system/log"
	"github.com/wso2/crm-automation-service/internal/system/managers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	casHome := getCASHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file
	casConfig, err := config.LoadConfig(casHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeCASRuntime(casHome, casConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime configuration: %v", err)
	}

	// Initialize logger
	if err := log.Init(casConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Initialize databases
	initDatabasesFromConfig(casConfig)

	serverAddr := fmt.Sprintf("%s:%d", casConfig.Addr.Host, casConfig.Addr.Port)
	mux := enableCORS(initMultiplexer())
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener.", log.Error(err))
	}

	logger.Info(fmt.Sprintf("WSO2 CRM automation service started in: %v", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests.", log.Error(err))
	}
}

func initDatabasesFromConfig(casConfig *config.Config) {

	logger := log.GetLogger()

	dbConfig := casConfig.DatabaseConfig
	if dbConfig.Host == "" || dbConfig.Port == "" || dbConfig.User == "" ||
		dbConfig.Password == "" || dbConfig.DbName == "" {
		logger.Fatal("One or more PostgreSQL configuration values are missing")
	}
	if _, err := database.ConnectPostgres(dbConfig.Host, dbConfig.Port, dbConfig.User,
		dbConfig.Password, dbConfig.DbName); err != nil {
		logger.Fatal("Failed to connect to PostgreSQL.", log.Error(err))
	}

	recordStore := casConfig.RecordStore
	if recordStore.URI == "" || recordStore.DbName == "" {
		logger.Fatal("Record store configuration values are missing")
	}
	if _, err := database.ConnectMongo(recordStore.URI, recordStore.DbName); err != nil {
		logger.Fatal("Failed to connect to MongoDB.", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getCASHome() string {

	// Parse project directory from command line arguments.
	casHomeFlag := flag.String("casHome", "", "Path to the automation service home directory")
	flag.Parse()

	if *casHomeFlag != "" {
		return *casHomeFlag
	}
	if envHome := os.Getenv("CAS_HOME"); envHome != "" {
		return envHome
	}
	wd, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to resolve working directory: %v", err)
	}
	return wd
}
