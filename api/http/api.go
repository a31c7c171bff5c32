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
	"net/http"
	"sort"
	"strings"

	"github.com/ant0ine/go-json-rest/rest"
)

// ApiHandler builds the routed application served under the API root.
type ApiHandler interface {
	GetApp() (rest.App, error)
}

// OptionsHandlerGenerator builds the OPTIONS handler for a path given
// the methods registered on it.
type OptionsHandlerGenerator func(methods []string) rest.HandlerFunc

// AllowHeaderOptionsGenerator answers OPTIONS with an Allow header.
func AllowHeaderOptionsGenerator(methods []string) rest.HandlerFunc {
	allowed := make([]string, 0, len(methods)+1)
	allowed = append(allowed, methods...)
	allowed = append(allowed, http.MethodOptions)
	allow := strings.Join(allowed, ", ")

	return func(w rest.ResponseWriter, r *rest.Request) {
		w.Header().Add("Allow", allow)
	}
}

// AutogenOptionsRoutes appends an OPTIONS route for every path that
// does not declare one.
func AutogenOptionsRoutes(routes []*rest.Route, gen OptionsHandlerGenerator) []*rest.Route {
	methodGroups := map[string][]string{}
	var paths []string
	for _, route := range routes {
		if _, ok := methodGroups[route.PathExp]; !ok {
			paths = append(paths, route.PathExp)
		}
		methodGroups[route.PathExp] = append(methodGroups[route.PathExp], route.HttpMethod)
	}
	sort.Strings(paths)

	options := make([]*rest.Route, 0, len(paths))
	for _, path := range paths {
		methods := methodGroups[path]
		if supportsMethod(http.MethodOptions, methods) {
			continue
		}
		options = append(options, rest.Options(path, gen(methods)))
	}
	return append(routes, options...)
}

func supportsMethod(method string, methods []string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
