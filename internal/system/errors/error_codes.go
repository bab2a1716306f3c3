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

package errors

const errorPrefix = "CAS-"

var (
	// Server error codes

	ADD_ASSIGNMENT_RULE = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while adding assignment rule.",
	}

	FETCH_ASSIGNMENT_RULES = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching assignment rule(s).",
	}

	UPDATE_ASSIGNMENT_RULE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while updating assignment rule.",
	}

	DELETE_ASSIGNMENT_RULE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while deleting assignment rule.",
	}

	ADD_WORKFLOW = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while adding workflow.",
	}

	FETCH_WORKFLOWS = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching workflow(s).",
	}

	UPDATE_WORKFLOW = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while updating workflow.",
	}

	DELETE_WORKFLOW = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while deleting workflow.",
	}

	INCREMENT_EXECUTION_COUNT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while incrementing workflow execution count.",
	}

	RECORD_STORE_FAILURE = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Record store operation failed.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while un-marshalling JSON.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Parsing token failed.",
	}

	SCAN_DUPLICATES = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while scanning for duplicate records.",
	}

	MERGE_RECORDS = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while merging records.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	ASSIGNMENT_RULE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Assignment rule not found.",
		Description: "No assignment rule found for the provided rule_id.",
	}

	ASSIGNMENT_RULE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Assignment rule validation failed.",
	}

	WORKFLOW_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Workflow not found.",
		Description: "No workflow found for the provided workflow_id.",
	}

	WORKFLOW_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Workflow validation failed.",
	}

	CONDITION_OP_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Condition operator is not supported.",
	}

	INVALID_MERGE_TARGET = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Invalid merge target.",
		Description: "The primary record cannot be part of the duplicate set.",
	}

	STALE_DUPLICATE_REFERENCE = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Stale duplicate reference.",
		Description: "One or more duplicate records do not exist or are already retired.",
	}

	INVALID_FIELD_SELECTION = ErrorMessage{
		Code:        errorPrefix + "11010",
		Message:     "Invalid merge field selection.",
		Description: "A field selection references a record outside the merge set.",
	}

	INVALID_SCAN_THRESHOLD = ErrorMessage{
		Code:        errorPrefix + "11011",
		Message:     "Invalid scan threshold.",
		Description: "The duplicate scan threshold must be between 50 and 100.",
	}

	RECORD_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11012",
		Message:     "Record not found.",
		Description: "No record found for the given entity type and record id.",
	}

	INVALID_EVENT = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Invalid event.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11014",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}
)
