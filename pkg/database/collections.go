package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createSchedulesIndexes()
	createPredictionsIndexes()
}

func createSchedulesIndexes() {
	schedulesCollection := GetCollection("schedules")
	routeLookupIndexName := "RouteDateTransportType"
	schedulesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Options: &options.IndexOptions{
				Name: &routeLookupIndexName,
			},
			Keys: bson.D{
				{Key: "fromlocation", Value: 1},
				{Key: "tolocation", Value: 1},
				{Key: "date", Value: 1},
				{Key: "transporttype", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "tolocation", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := schedulesCollection.Indexes().CreateMany(context.Background(), schedulesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createPredictionsIndexes() {
	predictionsCollection := GetCollection("predictions")
	predictionsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "creationdatetime", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "fromlocation", Value: 1},
				{Key: "tolocation", Value: 1},
			},
		},
	}

	opts := options.CreateIndexes()
	_, err := predictionsCollection.Indexes().CreateMany(context.Background(), predictionsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
