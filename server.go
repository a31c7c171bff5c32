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
	"strings"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	api_http "github.com/mendersoftware/scaffold/api/http"
	"github.com/mendersoftware/scaffold/app"
	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
	"github.com/mendersoftware/scaffold/store/mongo"
	sqlstore "github.com/mendersoftware/scaffold/store/sql"
)

func SetupAPI(stacktype string) (*rest.Api, error) {
	api := rest.NewApi()
	if err := SetupMiddleware(api, stacktype); err != nil {
		return nil, errors.Wrap(err, "failed to setup middleware")
	}

	//this will override the framework's error resp to the desired one:
	// {"error": "msg"}
	// instead of:
	// {"Error": "msg"}
	rest.ErrorFieldName = "error"

	return api, nil
}

func makeMongoConfig(c config.Reader) mongo.DataStoreMongoConfig {
	return mongo.DataStoreMongoConfig{
		ConnectionString: c.GetString(SettingMongo),

		SSL:           c.GetBool(SettingMongoSSL),
		SSLSkipVerify: c.GetBool(SettingMongoSSLSkipVerify),

		Username: c.GetString(SettingMongoUsername),
		Password: c.GetString(SettingMongoPassword),

		Schema: model.Catalog,
	}
}

func makeAppConfig(c config.Reader) app.Config {
	return app.Config{
		ExportLimit:  c.GetInt(SettingExportLimit),
		OptionsLimit: c.GetInt(SettingOptionsLimit),
	}
}

func makePolicy(c config.Reader) api_http.Policy {
	return api_http.DefaultPolicy{
		ReadOnly: c.GetBool(SettingPermissionsReadOnly),
	}
}

// makeCorsOptions returns nil when no origin is allowed.
func makeCorsOptions(c config.Reader) *cors.Options {
	var origins []string
	for _, o := range strings.Split(c.GetString(SettingCorsAllowedOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return nil
	}
	return &cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Link", "X-Total-Count", "Content-Disposition"},
	}
}

// NewDataStore connects to the database selected by db_driver.
func NewDataStore(ctx context.Context, c config.Reader, automigrate bool) (store.DataStore, error) {
	driver, err := store.ParseDriver(c.GetString(SettingDbDriver))
	if err != nil {
		return nil, err
	}

	if driver == store.DriverMongo {
		db, err := mongo.NewDataStoreMongo(ctx, makeMongoConfig(c))
		if err != nil {
			return nil, err
		}
		if automigrate {
			db = db.WithAutomigrate()
		}
		return db, nil
	}

	db, err := sqlstore.NewDataStoreSQL(ctx, sqlstore.DataStoreSQLConfig{
		Driver: driver,
		DSN:    c.GetString(SettingDbDSN),
		Schema: model.Catalog,
	})
	if err != nil {
		return nil, err
	}
	if automigrate {
		db = db.WithAutomigrate()
	}
	return db, nil
}

func RunServer(c config.Reader, db store.DataStore) error {

	l := log.New(log.Ctx{})

	scaffold := app.NewApp(db, makeAppConfig(c))

	scaffoldapi := api_http.NewResourceApiHandlers(scaffold, model.Catalog, makePolicy(c))

	api, err := SetupAPI(c.GetString(SettingMiddleware))
	if err != nil {
		return errors.Wrap(err, "API setup failed")
	}

	apph, err := scaffoldapi.GetApp()
	if err != nil {
		return errors.Wrap(err, "scaffold API handlers setup failed")
	}
	api.SetApp(apph)

	handler := api.MakeHandler()
	if opts := makeCorsOptions(c); opts != nil {
		l.Infof("allowing cross origin requests from %v", opts.AllowedOrigins)
		handler = cors.New(*opts).Handler(handler)
	}

	addr := c.GetString(SettingListen)
	l.Printf("listening on %s", addr)

	return http.ListenAndServe(addr, handler)
}
