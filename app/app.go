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
	"context"

	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/crud"
	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

const (
	DefaultExportLimit  = 10000
	DefaultOptionsLimit = 100
)

// App is the CRUD service interface, one method per controller action.
type App interface {
	HealthCheck(ctx context.Context) error
	List(ctx context.Context, resource string, params model.ListParams) (*model.PaginationResult, error)
	Get(ctx context.Context, resource, id string) (model.Record, error)
	Create(ctx context.Context, resource string, rec model.Record) (model.Record, error)
	Update(ctx context.Context, resource, id string, rec model.Record) (model.Record, error)
	Delete(ctx context.Context, resource, id string) error
	Restore(ctx context.Context, resource, id string) (model.Record, error)
	Export(ctx context.Context, resource string, params model.ListParams) (*model.Table, error)
	Options(ctx context.Context, resource string, params model.ListParams) ([]model.Option, error)
}

type Config struct {
	// ExportLimit caps exports that do not ask for a limit.
	ExportLimit int
	// OptionsLimit caps option lists that do not ask for a limit.
	OptionsLimit int
}

type app struct {
	db     store.DataStore
	config Config
}

func NewApp(db store.DataStore, config Config) App {
	if config.ExportLimit <= 0 {
		config.ExportLimit = DefaultExportLimit
	}
	if config.OptionsLimit <= 0 {
		config.OptionsLimit = DefaultOptionsLimit
	}
	return &app{db: db, config: config}
}

func (a *app) HealthCheck(ctx context.Context) error {
	err := a.db.Ping(ctx)
	if err != nil {
		return errors.Wrap(err, "error reaching the database")
	}
	return nil
}

// query builds the filtered and sorted base query shared by every
// listing action.
func (a *app) query(
	ctx context.Context,
	resource string,
	params model.ListParams,
) (*store.Query, error) {
	q, err := a.db.NewQuery(resource)
	if err != nil {
		return nil, err
	}
	switch params.Trashed {
	case model.TrashedWith:
		q.WithTrashed()
	case model.TrashedOnly:
		q.OnlyTrashed()
	case model.TrashedExclude:
	}
	if err := crud.ApplyFilters(ctx, q, params.Filters); err != nil {
		return nil, err
	}
	crud.ApplySort(q, params.Sort)
	return q, nil
}

func (a *app) List(
	ctx context.Context,
	resource string,
	params model.ListParams,
) (*model.PaginationResult, error) {
	q, err := a.query(ctx, resource, params)
	if err != nil {
		return nil, err
	}
	page, err := crud.Paginate(ctx, a.db, q, crud.PageParams{
		Page:           params.Page,
		PerPage:        params.PerPage,
		SkipPagination: params.SkipPagination,
	}, serializer(q.Resource()))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", resource)
	}
	return page, nil
}

// limited returns the records of a listing bounded by the requested
// limit, or by max when none was asked for.
func (a *app) limited(
	ctx context.Context,
	resource string,
	params model.ListParams,
	max int,
) ([]model.Record, error) {
	q, err := a.query(ctx, resource, params)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 || limit > max {
		limit = max
	}
	crud.ApplyLimit(q, limit)
	recs, err := a.db.Find(ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", resource)
	}
	return recs, nil
}

func (a *app) Export(
	ctx context.Context,
	resource string,
	params model.ListParams,
) (*model.Table, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	recs, err := a.limited(ctx, resource, params, a.config.ExportLimit)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i] = present(res, recs[i])
	}
	return table(res, recs), nil
}

func (a *app) Options(
	ctx context.Context,
	resource string,
	params model.ListParams,
) ([]model.Option, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	label := res.LabelField
	if params.Sort == "" {
		params.Sort = label
	}
	recs, err := a.limited(ctx, resource, params, a.config.OptionsLimit)
	if err != nil {
		return nil, err
	}
	options := make([]model.Option, len(recs))
	for i, r := range recs {
		options[i] = model.Option{
			Value: r[model.FieldExternalID],
			Label: r[label],
		}
	}
	return options, nil
}

func (a *app) Get(ctx context.Context, resource, id string) (model.Record, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	rec, err := a.db.Get(ctx, resource, id, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", resource)
	}
	return present(res, rec), nil
}

func (a *app) Create(ctx context.Context, resource string, rec model.Record) (model.Record, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	if err := res.Validate(rec, false); err != nil {
		return nil, NewValidationError(err)
	}
	created, err := a.db.Insert(ctx, resource, rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", resource)
	}
	return present(res, created), nil
}

func (a *app) Update(ctx context.Context, resource, id string, rec model.Record) (model.Record, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	if err := res.Validate(rec, true); err != nil {
		return nil, NewValidationError(err)
	}
	updated, err := a.db.Update(ctx, resource, id, rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update %s", resource)
	}
	return present(res, updated), nil
}

func (a *app) Delete(ctx context.Context, resource, id string) error {
	if _, err := a.resource(resource); err != nil {
		return err
	}
	err := a.db.Delete(ctx, resource, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s", resource)
	}
	return nil
}

func (a *app) Restore(ctx context.Context, resource, id string) (model.Record, error) {
	res, err := a.resource(resource)
	if err != nil {
		return nil, err
	}
	rec, err := a.db.Restore(ctx, resource, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to restore %s", resource)
	}
	return present(res, rec), nil
}

func (a *app) resource(name string) (*model.Resource, error) {
	q, err := a.db.NewQuery(name)
	if err != nil {
		return nil, err
	}
	return q.Resource(), nil
}
