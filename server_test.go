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

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api_http "github.com/mendersoftware/scaffold/api/http"
	"github.com/mendersoftware/scaffold/app"
	sqlstore "github.com/mendersoftware/scaffold/store/sql"
)

func newConfig(settings map[string]interface{}) *viper.Viper {
	c := viper.New()
	for _, d := range configDefaults {
		c.SetDefault(d.Key, d.Value)
	}
	for k, v := range settings {
		c.Set(k, v)
	}
	return c
}

func TestMakeCorsOptions(t *testing.T) {
	testCases := map[string]struct {
		origins  string
		expected []string
	}{
		"disabled by default": {},
		"single origin": {
			origins:  "https://admin.example.com",
			expected: []string{"https://admin.example.com"},
		},
		"list with blanks": {
			origins:  " https://a.example.com, ,https://b.example.com ",
			expected: []string{"https://a.example.com", "https://b.example.com"},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := newConfig(map[string]interface{}{SettingCorsAllowedOrigins: tc.origins})
			opts := makeCorsOptions(c)
			if tc.expected == nil {
				assert.Nil(t, opts)
				return
			}
			require.NotNil(t, opts)
			assert.Equal(t, tc.expected, opts.AllowedOrigins)
		})
	}
}

func TestCorsPreflight(t *testing.T) {
	c := newConfig(map[string]interface{}{
		SettingCorsAllowedOrigins: "https://admin.example.com",
	})
	opts := makeCorsOptions(c)
	require.NotNil(t, opts)

	h := cors.New(*opts).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusTeapot, w.Code)
}

func TestMakeAppConfigAndPolicy(t *testing.T) {
	c := newConfig(nil)
	assert.Equal(t, app.Config{
		ExportLimit:  SettingExportLimitDefault,
		OptionsLimit: SettingOptionsLimitDefault,
	}, makeAppConfig(c))
	assert.Equal(t, api_http.DefaultPolicy{}, makePolicy(c))

	c = newConfig(map[string]interface{}{
		SettingExportLimit:         25,
		SettingPermissionsReadOnly: true,
	})
	assert.Equal(t, 25, makeAppConfig(c).ExportLimit)
	assert.Equal(t, api_http.DefaultPolicy{ReadOnly: true}, makePolicy(c))
}

func TestSetupMiddleware(t *testing.T) {
	for _, env := range []string{EnvDev, EnvProd} {
		assert.NoError(t, SetupMiddleware(rest.NewApi(), env))
	}
	assert.EqualError(t, SetupMiddleware(rest.NewApi(), "staging"),
		"unknown middleware type: staging")
}

func TestNewDataStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	ctx := context.Background()

	_, err := NewDataStore(ctx, newConfig(map[string]interface{}{
		SettingDbDriver: "oracle",
	}), false)
	assert.EqualError(t, err, `unsupported database driver: "oracle"`)

	db, err := NewDataStore(ctx, newConfig(map[string]interface{}{
		SettingDbDriver: "sqlite3",
		SettingDbDSN:    filepath.Join(t.TempDir(), "scaffold.db"),
	}), true)
	require.NoError(t, err)
	defer db.Close(ctx)

	assert.IsType(t, &sqlstore.DataStoreSQL{}, db)
	assert.NoError(t, db.Migrate(ctx))
	assert.NoError(t, db.Ping(ctx))
}
