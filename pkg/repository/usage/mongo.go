package usage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"palette_api/pkg/metrics"
	"palette_api/pkg/models"
)

// MongoRepository stores usage records as flat documents, one per
// diagnosis.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	reg    *metrics.Registry
}

// NewMongoRepository connects to the given URI and pings the server
// once so a bad URI fails at startup, not on the first write.
func NewMongoRepository(ctx context.Context, uri, database, collection string, reg *metrics.Registry) (*MongoRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoRepository{
		client: client,
		coll:   client.Database(database).Collection(collection),
		reg:    reg,
	}, nil
}

// Save appends one document.
func (r *MongoRepository) Save(ctx context.Context, rec models.UsageRecord) error {
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert usage record: %w", err)
	}
	if r.reg != nil {
		r.reg.Inc(ctx, "usage_records_saved_total", map[string]string{"sink": "mongo"}, 1)
	}
	return nil
}

// Stats runs $group aggregations over personalColor and region.
func (r *MongoRepository) Stats(ctx context.Context) (Stats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return Stats{}, fmt.Errorf("count usage records: %w", err)
	}

	byResult, err := r.groupCounts(ctx, "$personalColor")
	if err != nil {
		return Stats{}, err
	}
	byRegion, err := r.groupCounts(ctx, "$region")
	if err != nil {
		return Stats{}, err
	}

	return Stats{Total: total, ByResult: byResult, ByRegion: byRegion}, nil
}

func (r *MongoRepository) groupCounts(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{field, "unknown"}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", field, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := row.ID
		if key == "" {
			key = "unknown"
		}
		out[key] += row.Count
	}
	return out, nil
}

// Close disconnects the underlying client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
