// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package utils

import (
	"encoding/json"
	"testing"

	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
)

// JSONResponseParams describes the expected outcome of a recorded request.
type JSONResponseParams struct {
	OutputStatus     int
	OutputBodyObject interface{}
	OutputHeaders    map[string][]string
}

func CheckRecordedResponse(t *testing.T, recorded *test.Recorded, params JSONResponseParams) {
	recorded.CodeIs(params.OutputStatus)

	body := recorded.Recorder.Body.String()
	if params.OutputBodyObject != nil {
		recorded.ContentTypeIsJson()
		expected, err := json.Marshal(params.OutputBodyObject)
		assert.NoError(t, err)
		assert.JSONEq(t, string(expected), body)
	} else {
		assert.Empty(t, body)
	}

	for name, values := range params.OutputHeaders {
		assert.Equal(t, values, recorded.Recorder.Header()[name], "header %s", name)
	}
}
