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

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/log"
	u "github.com/mendersoftware/go-lib-micro/rest_utils"
	"github.com/pkg/errors"

	"github.com/mendersoftware/scaffold/app"
	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
	"github.com/mendersoftware/scaffold/utils"
)

const (
	uriRoot   = "/api/v1"
	uriHealth = uriRoot + "/health"

	uriSuffixExport  = "/export"
	uriSuffixOptions = "/options"
	uriSuffixID      = "/:id"
	uriSuffixRestore = "/:id/restore"

	hdrTotalCount         = "X-Total-Count"
	hdrLocation           = "Location"
	hdrContentDisposition = "Content-Disposition"
	hdrContentType        = "Content-Type"
)

type resourceHandlers struct {
	app    app.App
	schema *model.Schema
	policy Policy
}

// NewResourceApiHandlers returns the CRUD API over every resource of
// the schema.
func NewResourceApiHandlers(a app.App, schema *model.Schema, policy Policy) ApiHandler {
	if policy == nil {
		policy = DefaultPolicy{}
	}
	return &resourceHandlers{
		app:    a,
		schema: schema,
		policy: policy,
	}
}

func (h *resourceHandlers) GetApp() (rest.App, error) {
	routes := []*rest.Route{
		rest.Get(uriHealth, h.HealthCheckHandler),
	}
	for _, res := range h.schema.Resources() {
		routes = append(routes, h.resourceRoutes(res.Name)...)
	}

	router, err := rest.MakeRouter(
		// augment routes with OPTIONS handler
		AutogenOptionsRoutes(routes, AllowHeaderOptionsGenerator)...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create router")
	}

	return router, nil
}

// resourceRoutes lists the routes of one resource. The literal export
// and options paths come before /:id so they take precedence.
func (h *resourceHandlers) resourceRoutes(resource string) []*rest.Route {
	base := uriRoot + "/" + resource
	guard := func(action Action, fn rest.HandlerFunc) rest.HandlerFunc {
		return authorize(h.policy, Permission{Resource: resource, Action: action}, fn)
	}
	return []*rest.Route{
		rest.Get(base+uriSuffixExport, guard(ActionExport, h.ExportHandler(resource))),
		rest.Get(base+uriSuffixOptions, guard(ActionOptions, h.OptionsHandler(resource))),
		rest.Get(base, guard(ActionIndex, h.IndexHandler(resource))),
		rest.Post(base, guard(ActionStore, h.StoreHandler(resource))),
		rest.Get(base+uriSuffixID, guard(ActionShow, h.ShowHandler(resource))),
		rest.Put(base+uriSuffixID, guard(ActionUpdate, h.UpdateHandler(resource))),
		rest.Delete(base+uriSuffixID, guard(ActionDestroy, h.DestroyHandler(resource))),
		rest.Post(base+uriSuffixRestore, guard(ActionRestore, h.RestoreHandler(resource))),
	}
}

func (h *resourceHandlers) HealthCheckHandler(w rest.ResponseWriter, r *rest.Request) {
	ctx := r.Context()
	l := log.FromContext(ctx)

	err := h.app.HealthCheck(ctx)
	if err != nil {
		u.RestErrWithLog(w, r, l, err, http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandlers) IndexHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		params, err := parseListParams(r)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}

		res, err := h.app.List(ctx, resource, params)
		if err != nil {
			restErr(w, r, l, err)
			return
		}

		if meta := res.Meta; meta != nil {
			links := utils.MakePageLinkHdrs(r,
				uint64(meta.Current), uint64(meta.PerPage), uint64(meta.PagesCount))
			for _, link := range links {
				w.Header().Add(utils.LinkHdr, link)
			}
			// the response writer will ensure the header name is in Kebab-Pascal-Case
			w.Header().Add(hdrTotalCount, strconv.Itoa(meta.Count))
		}
		_ = w.WriteJson(res)
	}
}

func (h *resourceHandlers) ExportHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		format, err := utils.ParseQueryParmStr(r, queryParamFormat, false, exportFormats)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}
		if format == "" {
			format = formatCSV
		}
		params, err := parseListParams(r)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}

		table, err := h.app.Export(ctx, resource, params)
		if err != nil {
			restErr(w, r, l, err)
			return
		}

		w.Header().Set(hdrContentType, exportContentType(format))
		w.Header().Set(hdrContentDisposition,
			fmt.Sprintf("attachment; filename=%q", exportFilename(resource, format)))
		w.WriteHeader(http.StatusOK)
		if err := writeExport(w.(http.ResponseWriter), format, table); err != nil {
			l.Errorf("failed to write %s export: %s", resource, err.Error())
		}
	}
}

func (h *resourceHandlers) OptionsHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		params, err := parseListParams(r)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}

		options, err := h.app.Options(ctx, resource, params)
		if err != nil {
			restErr(w, r, l, err)
			return
		}
		_ = w.WriteJson(options)
	}
}

func (h *resourceHandlers) ShowHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		rec, err := h.app.Get(ctx, resource, r.PathParam("id"))
		if err != nil {
			restErr(w, r, l, err)
			return
		}
		_ = w.WriteJson(rec)
	}
}

func (h *resourceHandlers) StoreHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		payload, err := parseRecord(r)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}

		rec, err := h.app.Create(ctx, resource, payload)
		if err != nil {
			restErr(w, r, l, err)
			return
		}

		w.Header().Add(hdrLocation, fmt.Sprintf("%s/%v", resource, rec[model.FieldExternalID]))
		w.WriteHeader(http.StatusCreated)
		_ = w.WriteJson(rec)
	}
}

func (h *resourceHandlers) UpdateHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		payload, err := parseRecord(r)
		if err != nil {
			u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
			return
		}

		rec, err := h.app.Update(ctx, resource, r.PathParam("id"), payload)
		if err != nil {
			restErr(w, r, l, err)
			return
		}
		_ = w.WriteJson(rec)
	}
}

func (h *resourceHandlers) DestroyHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		err := h.app.Delete(ctx, resource, r.PathParam("id"))
		if err != nil {
			restErr(w, r, l, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *resourceHandlers) RestoreHandler(resource string) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		rec, err := h.app.Restore(ctx, resource, r.PathParam("id"))
		if err != nil {
			restErr(w, r, l, err)
			return
		}
		_ = w.WriteJson(rec)
	}
}

func parseRecord(r *rest.Request) (model.Record, error) {
	var rec model.Record
	if err := r.DecodeJsonPayload(&rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode request data")
	}
	if rec == nil {
		return nil, errors.New("empty request data")
	}
	return rec, nil
}

// restErr maps an application error to its response status.
func restErr(w rest.ResponseWriter, r *rest.Request, l *log.Logger, err error) {
	var (
		decodeErr     *model.DecodeError
		dateErr       *model.DateParseError
		validationErr *app.ValidationError
	)
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrUnknownResource):
		u.RestErrWithLog(w, r, l, err, http.StatusNotFound)
	case errors.As(err, &decodeErr),
		errors.As(err, &dateErr),
		errors.As(err, &validationErr),
		errors.Is(err, store.ErrUnknownRelation),
		errors.Is(err, store.ErrNotSoftDeletable):
		u.RestErrWithLog(w, r, l, err, http.StatusBadRequest)
	default:
		u.RestErrWithLogInternal(w, r, l, err)
	}
}
