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

package app

import (
	"time"

	"github.com/mendersoftware/scaffold/crud"
	"github.com/mendersoftware/scaffold/model"
)

// storedTimeLayout is how text-typed timestamp columns come back from
// sqlite.
const storedTimeLayout = "2006-01-02 15:04:05"

var timestampFields = []string{
	model.FieldCreatedAt,
	model.FieldUpdatedAt,
	model.FieldDeletedAt,
}

// serializer renders the time columns of res as RFC3339 UTC strings, so
// every backend answers with the same format.
func serializer(res *model.Resource) crud.Serializer {
	return func(rec model.Record) interface{} {
		return present(res, rec)
	}
}

func present(res *model.Resource, rec model.Record) model.Record {
	if rec == nil {
		return nil
	}
	out := make(model.Record, len(rec))
	for k, v := range rec {
		if isTimeField(res, k) {
			v = formatTime(v)
		}
		out[k] = v
	}
	return out
}

func isTimeField(res *model.Resource, name string) bool {
	for _, f := range timestampFields {
		if f == name {
			return true
		}
	}
	f, ok := res.Field(name)
	return ok && f.Type == model.TypeTime
}

func formatTime(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		if parsed, err := time.Parse(storedTimeLayout, t); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return v
}
