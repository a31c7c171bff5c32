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

package model

import "fmt"

// DecodeError is returned when a filter names an operator code outside
// the SearchOperator set.
type DecodeError struct {
	Code string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid filter operator: %q", e.Code)
}

// DateParseError is returned when a `btw` bound is not a calendar date
// (YYYY-MM-DD) or month (YYYY-MM).
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
