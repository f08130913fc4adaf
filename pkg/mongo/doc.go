// Package mongo connects to MongoDB with retries and exposes a readiness
// check.
//
//	db, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
