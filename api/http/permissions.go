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

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	u "github.com/mendersoftware/go-lib-micro/rest_utils"
	"github.com/pkg/errors"
)

type Action string

const (
	ActionIndex   Action = "index"
	ActionShow    Action = "show"
	ActionExport  Action = "export"
	ActionOptions Action = "options"
	ActionStore   Action = "store"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
	ActionRestore Action = "restore"
)

// IsRead reports whether the action leaves stored records untouched.
func (a Action) IsRead() bool {
	switch a {
	case ActionIndex, ActionShow, ActionExport, ActionOptions:
		return true
	}
	return false
}

// Permission names an action on a resource, rendered "<resource>.<action>".
type Permission struct {
	Resource string
	Action   Action
}

func (p Permission) String() string {
	return p.Resource + "." + string(p.Action)
}

// Policy decides whether an identity holds a permission.
type Policy interface {
	Allow(id identity.Identity, p Permission) bool
}

// DefaultPolicy lets any identity read and only users write. ReadOnly
// denies every write.
type DefaultPolicy struct {
	ReadOnly bool
}

func (dp DefaultPolicy) Allow(id identity.Identity, p Permission) bool {
	if p.Action.IsRead() {
		return true
	}
	return id.IsUser && !dp.ReadOnly
}

var (
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("forbidden")
)

// authorize guards a handler with the policy. The caller identity is
// put in the request context for the handlers and the data store.
func authorize(policy Policy, p Permission, h rest.HandlerFunc) rest.HandlerFunc {
	return func(w rest.ResponseWriter, r *rest.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx)

		id, err := identity.ExtractIdentityFromHeaders(r.Header)
		if err != nil {
			u.RestErrWithLogMsg(w, r, l, err, http.StatusUnauthorized, errUnauthorized.Error())
			return
		}
		if !policy.Allow(id, p) {
			l.Warnf("permission %s denied to %s", p, id.Subject)
			u.RestErrWithLog(w, r, l, errForbidden, http.StatusForbidden)
			return
		}

		r.Request = r.Request.WithContext(identity.WithContext(ctx, &id))
		h(w, r)
	}
}
