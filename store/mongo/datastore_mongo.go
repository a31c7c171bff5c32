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

package mongo

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/log"
	mstore "github.com/mendersoftware/go-lib-micro/store"

	"github.com/mendersoftware/scaffold/model"
	"github.com/mendersoftware/scaffold/store"
)

const (
	DbVersion = "1.0.0"

	DbName = "scaffold"

	fieldObjectID = "_id"

	connectTimeout = 10 * time.Second
)

type DataStoreMongoConfig struct {
	// connection string
	ConnectionString string

	// SSL support
	SSL           bool
	SSLSkipVerify bool

	// Overwrites credentials provided in connection string if provided
	Username string
	Password string

	Schema *model.Schema
}

// DataStoreMongo keeps one collection per resource. Tenants (taken from
// the request identity) get a database of their own.
type DataStoreMongo struct {
	client      *mongo.Client
	schema      *model.Schema
	automigrate bool
}

func NewDataStoreMongoWithClient(client *mongo.Client, schema *model.Schema) *DataStoreMongo {
	if schema == nil {
		schema = model.Catalog
	}
	return &DataStoreMongo{client: client, schema: schema}
}

func NewDataStoreMongo(ctx context.Context, config DataStoreMongoConfig) (*DataStoreMongo, error) {
	clientOptions := mopts.Client().
		ApplyURI(config.ConnectionString).
		SetConnectTimeout(connectTimeout)

	if config.Username != "" {
		clientOptions.SetAuth(mopts.Credential{
			Username: config.Username,
			Password: config.Password,
		})
	}
	if config.SSL {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = config.SSLSkipVerify
		clientOptions.SetTLSConfig(tlsConfig)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo server")
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "error reaching mongo server")
	}

	return NewDataStoreMongoWithClient(client, config.Schema), nil
}

func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(DbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

func (db *DataStoreMongo) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DataStoreMongo) NewQuery(resource string) (*store.Query, error) {
	return store.NewQuery(db.schema, resource, store.DriverMongo)
}

func (db *DataStoreMongo) collection(ctx context.Context, res *model.Resource) *mongo.Collection {
	return db.client.
		Database(mstore.DbFromContext(ctx, DbName)).
		Collection(res.Table)
}

func (db *DataStoreMongo) resource(name string) (*model.Resource, error) {
	res, ok := db.schema.Resource(name)
	if !ok {
		return nil, errors.Wrap(store.ErrUnknownResource, name)
	}
	return res, nil
}

func (db *DataStoreMongo) Count(ctx context.Context, q *store.Query) (int, error) {
	filter, err := compileFilter(q)
	if err != nil {
		return 0, err
	}
	n, err := db.collection(ctx, q.Resource()).CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count records")
	}
	return int(n), nil
}

func (db *DataStoreMongo) Find(ctx context.Context, q *store.Query) ([]model.Record, error) {
	filter, err := compileFilter(q)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debugf("find %s: %v", q.Resource().Table, filter)

	findOpts := mopts.Find().SetSort(compileSort(q))
	if q.RowLimit > 0 {
		findOpts.SetLimit(int64(q.RowLimit))
	}
	if q.RowOffset > 0 {
		findOpts.SetSkip(int64(q.RowOffset))
	}

	cur, err := db.collection(ctx, q.Resource()).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch records")
	}
	defer cur.Close(ctx)

	var recs []model.Record
	for cur.Next(ctx) {
		doc := bson.M{}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode record")
		}
		recs = append(recs, toRecord(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to fetch records")
	}
	return recs, nil
}

func (db *DataStoreMongo) Get(
	ctx context.Context,
	resource, externalID string,
	withTrashed bool,
) (model.Record, error) {
	q, err := db.NewQuery(resource)
	if err != nil {
		return nil, err
	}
	q.Where(model.FieldExternalID, store.Eq, externalID).Limit(1)
	if withTrashed {
		q.WithTrashed()
	}
	recs, err := db.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.ErrNotFound
	}
	return recs[0], nil
}

func (db *DataStoreMongo) Insert(
	ctx context.Context,
	resource string,
	rec model.Record,
) (model.Record, error) {
	res, err := db.resource(resource)
	if err != nil {
		return nil, err
	}
	doc, err := toDocument(res, rec)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	externalID := uuid.NewString()
	doc[model.FieldExternalID] = externalID
	doc[model.FieldCreatedAt] = now
	doc[model.FieldUpdatedAt] = now

	if _, err := db.collection(ctx, res).InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "failed to insert record")
	}
	return db.Get(ctx, resource, externalID, false)
}

func (db *DataStoreMongo) Update(
	ctx context.Context,
	resource, externalID string,
	rec model.Record,
) (model.Record, error) {
	res, err := db.resource(resource)
	if err != nil {
		return nil, err
	}
	doc, err := toDocument(res, rec)
	if err != nil {
		return nil, err
	}
	doc[model.FieldUpdatedAt] = time.Now().UTC()

	err = db.updateOne(ctx, res, liveFilter(res, externalID), bson.M{"$set": doc})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update record")
	}
	return db.Get(ctx, resource, externalID, false)
}

func (db *DataStoreMongo) Delete(ctx context.Context, resource, externalID string) error {
	res, err := db.resource(resource)
	if err != nil {
		return err
	}
	if res.SoftDeletes {
		err = db.updateOne(ctx, res, liveFilter(res, externalID), bson.M{
			"$set": bson.M{model.FieldDeletedAt: time.Now().UTC()},
		})
		return errors.Wrap(err, "failed to delete record")
	}

	result, err := db.collection(ctx, res).DeleteOne(ctx, bson.M{model.FieldExternalID: externalID})
	if err != nil {
		return errors.Wrap(err, "failed to delete record")
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (db *DataStoreMongo) Restore(
	ctx context.Context,
	resource, externalID string,
) (model.Record, error) {
	res, err := db.resource(resource)
	if err != nil {
		return nil, err
	}
	if !res.SoftDeletes {
		return nil, store.ErrNotSoftDeletable
	}
	filter := bson.M{
		model.FieldExternalID: externalID,
		model.FieldDeletedAt:  bson.M{"$ne": nil},
	}
	err = db.updateOne(ctx, res, filter, bson.M{
		"$set": bson.M{
			model.FieldDeletedAt: nil,
			model.FieldUpdatedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore record")
	}
	return db.Get(ctx, resource, externalID, false)
}

func (db *DataStoreMongo) updateOne(
	ctx context.Context,
	res *model.Resource,
	filter, update bson.M,
) error {
	result, err := db.collection(ctx, res).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func liveFilter(res *model.Resource, externalID string) bson.M {
	filter := bson.M{model.FieldExternalID: externalID}
	if res.SoftDeletes {
		filter[model.FieldDeletedAt] = nil
	}
	return filter
}

// toDocument keeps the writable fields of rec plus embedded relation
// documents, which are stored as given.
func toDocument(res *model.Resource, rec model.Record) (bson.M, error) {
	doc := bson.M{}
	for k, v := range res.Sanitize(rec) {
		f, _ := res.Field(k)
		if s, ok := v.(string); ok && f.Type == model.TypeTime {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse field %s", k)
			}
			doc[k] = t.UTC()
			continue
		}
		doc[k] = v
	}
	for _, rel := range res.Relations {
		if v, ok := rec[rel.Name]; ok {
			doc[rel.Name] = v
		}
	}
	return doc, nil
}

// toRecord flattens driver types into plain Go values; the object id is
// exposed as the record id.
func toRecord(doc bson.M) model.Record {
	rec := make(model.Record, len(doc))
	for k, v := range doc {
		if k == fieldObjectID {
			if oid, ok := v.(primitive.ObjectID); ok {
				rec[model.FieldID] = oid.Hex()
				continue
			}
			rec[model.FieldID] = v
			continue
		}
		rec[k] = plain(v)
	}
	return rec
}

func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case bson.M:
		return map[string]interface{}(toRecord(v))
	case bson.D:
		return map[string]interface{}(toRecord(v.Map()))
	case bson.A:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = plain(v[i])
		}
		return out
	}
	return v
}
