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

package provider

import (
	"github.com/wso2/crm-automation-service/internal/database"
	"github.com/wso2/crm-automation-service/internal/duplicates/service"
	recordStore "github.com/wso2/crm-automation-service/internal/records/store"
)

// DuplicateProviderInterface defines the interface for the duplicate provider.
type DuplicateProviderInterface interface {
	GetScanService() service.ScanServiceInterface
	GetMergeService() service.MergeServiceInterface
}

// DuplicateProvider is the default implementation of the duplicate provider.
type DuplicateProvider struct{}

// NewDuplicateProvider creates a new instance of DuplicateProvider.
func NewDuplicateProvider() DuplicateProviderInterface {

	return &DuplicateProvider{}
}

// GetScanService returns a scan service over the shared record store.
func (dp *DuplicateProvider) GetScanService() service.ScanServiceInterface {

	mongoDB := database.GetMongoInstance()
	return service.NewScanService(recordStore.NewMongoRecordStore(mongoDB.Database))
}

// GetMergeService returns a merge service over the shared record store.
func (dp *DuplicateProvider) GetMergeService() service.MergeServiceInterface {

	mongoDB := database.GetMongoInstance()
	return service.NewMergeService(recordStore.NewMongoRecordStore(mongoDB.Database))
}
