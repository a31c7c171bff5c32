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

package store

import (
	"context"
	"errors"

	"github.com/mendersoftware/scaffold/model"
)

var (
	// record not found
	ErrNotFound = errors.New("record not found")

	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownRelation is returned when a relation path names a relation
	// the resource does not declare.
	ErrUnknownRelation = errors.New("unknown relation")

	ErrNotSoftDeletable = errors.New("resource does not support restore")
)

// Executor runs compiled queries.
//
// Count ignores ordering and row bounds; Find honours them. Calling both
// for one page is two round trips and concurrent writes may land between
// them.
type Executor interface {
	Count(ctx context.Context, q *Query) (int, error)
	Find(ctx context.Context, q *Query) ([]model.Record, error)
}

type DataStore interface {
	Executor

	Ping(ctx context.Context) error

	// NewQuery returns an empty query against resource bound to this
	// store's driver.
	NewQuery(resource string) (*Query, error)

	// Get finds a record by external id; ErrNotFound if there is none.
	Get(ctx context.Context, resource, externalID string, withTrashed bool) (model.Record, error)

	// Insert stores rec, assigning it a fresh external id and timestamps.
	Insert(ctx context.Context, resource string, rec model.Record) (model.Record, error)

	Update(ctx context.Context, resource, externalID string, rec model.Record) (model.Record, error)

	// Delete soft deletes records of resources that support it and
	// removes all others.
	Delete(ctx context.Context, resource, externalID string) error

	Restore(ctx context.Context, resource, externalID string) (model.Record, error)

	Migrate(ctx context.Context) error

	Close(ctx context.Context) error
}
