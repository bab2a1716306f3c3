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

package config

import "sync"

// CASRuntime holds the runtime configuration for the automation server.
type CASRuntime struct {
	CASHome string `yaml:"cas_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CASRuntime
	once          sync.Once
)

// InitializeCASRuntime initializes the CASRuntime configuration.
func InitializeCASRuntime(casHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &CASRuntime{
			CASHome: casHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCASRuntime returns the CASRuntime configuration.
func GetCASRuntime() *CASRuntime {

	if runtimeConfig == nil {
		panic("CASRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideCASRuntime replaces the runtime configuration. Used by tests.
func OverrideCASRuntime(conf Config) {
	runtimeConfig = &CASRuntime{
		Config: conf,
	}
}
