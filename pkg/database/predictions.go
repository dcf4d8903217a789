package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hydertrax/hydertrax/pkg/transit"
)

// AppendPrediction writes one completed Insight to the append-only audit log.
func (s *Store) AppendPrediction(ctx context.Context, insight *transit.Insight, request *transit.PredictionRequest) error {
	predictionsCollection := GetCollection("predictions")

	document := bson.M{
		"creationdatetime":      insight.CreationDateTime,
		"fromlocation":          insight.FromLocation,
		"tolocation":            insight.ToLocation,
		"transporttype":         insight.TransportType,
		"scheduleddeparture":    insight.ScheduledDeparture,
		"predicteddelayminutes": insight.PredictedDelayMinutes,
		"delaycategory":         insight.DelayCategory,
		"confidence":            insight.Confidence,
		"primaryreason":         insight.PrimaryReason,
		"modelversion":          insight.ModelVersion,
	}

	if request != nil {
		document["requesttraveldate"] = request.TravelDate
	}

	_, err := predictionsCollection.InsertOne(ctx, document)

	return err
}

// RecentPredictions returns the newest audit log entries.
func (s *Store) RecentPredictions(ctx context.Context, limit int64) ([]bson.M, error) {
	predictionsCollection := GetCollection("predictions")

	opts := options.Find().
		SetSort(bson.D{{Key: "creationdatetime", Value: -1}}).
		SetLimit(limit)

	cursor, err := predictionsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var predictions []bson.M
	if err := cursor.All(ctx, &predictions); err != nil {
		return nil, err
	}

	return predictions, nil
}
