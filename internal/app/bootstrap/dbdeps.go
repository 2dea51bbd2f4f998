// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	datapoolstore "github.com/tnorman/wayfarer/internal/app/store/datapool"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as the app evolves.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Datapool is the file-backed shared blob. Loaded once at connect time;
	// a load failure aborts startup.
	Datapool *datapoolstore.Store
}
