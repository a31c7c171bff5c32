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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	mstore "github.com/mendersoftware/go-lib-micro/store"

	"github.com/mendersoftware/scaffold/model"
)

type migration_1_0_0 struct {
	ms  *DataStoreMongo
	ctx context.Context
}

// Up creates, for every resource collection, the unique external id
// index and an index on each relation's embedded external id.
func (m *migration_1_0_0) Up(from migrate.Version) error {
	databaseName := mstore.DbFromContext(m.ctx, DbName)
	database := m.ms.client.Database(databaseName)

	for _, res := range m.ms.schema.Resources() {
		indexes := []mongo.IndexModel{{
			Keys: bson.D{{Key: model.FieldExternalID, Value: 1}},
			Options: mopts.Index().
				SetName(model.FieldExternalID).
				SetUnique(true),
		}}
		if res.SoftDeletes {
			indexes = append(indexes, mongo.IndexModel{
				Keys:    bson.D{{Key: model.FieldDeletedAt, Value: 1}},
				Options: mopts.Index().SetName(model.FieldDeletedAt),
			})
		}
		for _, rel := range res.Relations {
			key := rel.Name + fieldSep + model.FieldExternalID
			indexes = append(indexes, mongo.IndexModel{
				Keys:    bson.D{{Key: key, Value: 1}},
				Options: mopts.Index().SetName(key),
			})
		}

		_, err := database.Collection(res.Table).Indexes().CreateMany(m.ctx, indexes)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *migration_1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
