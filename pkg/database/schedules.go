package database

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hydertrax/hydertrax/pkg/transit"
	"github.com/hydertrax/hydertrax/pkg/util"
)

// Store is the MongoDB-backed schedule lookup and prediction audit log.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// GetSchedules finds the scheduled runs on a route for a date. When no
// schedule exists for the exact date it falls back to the most recent
// available date as a template, then to any transport type, so the engine
// can still predict for future dates by reusing existing patterns.
func (s *Store) GetSchedules(ctx context.Context, from string, to string, date time.Time, transportType transit.TransportType) ([]*transit.ScheduleRecord, error) {
	day := truncateToDay(date)

	records, err := s.findSchedules(ctx, bson.M{
		"fromlocation":  from,
		"tolocation":    to,
		"transporttype": transportType,
		"date":          day,
	})
	if err != nil || len(records) > 0 {
		return records, err
	}

	templateDate, found, err := s.latestScheduleDate(ctx, from, to, transportType)
	if err != nil {
		return nil, err
	}
	if found {
		records, err = s.findSchedules(ctx, bson.M{
			"fromlocation":  from,
			"tolocation":    to,
			"transporttype": transportType,
			"date":          templateDate,
		})
		if err != nil || len(records) > 0 {
			return records, err
		}
	}

	records, err = s.findSchedules(ctx, bson.M{
		"fromlocation": from,
		"tolocation":   to,
		"date":         day,
	})
	if err != nil || len(records) > 0 {
		return records, err
	}

	templateDate, found, err = s.latestScheduleDate(ctx, from, to, transit.TransportTypeUnknown)
	if err != nil || !found {
		return nil, err
	}

	return s.findSchedules(ctx, bson.M{
		"fromlocation": from,
		"tolocation":   to,
		"date":         templateDate,
	})
}

func (s *Store) findSchedules(ctx context.Context, query bson.M) ([]*transit.ScheduleRecord, error) {
	schedulesCollection := GetCollection("schedules")

	opts := options.Find().SetSort(bson.D{{Key: "scheduleddeparture", Value: 1}})
	cursor, err := schedulesCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var records []*transit.ScheduleRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) latestScheduleDate(ctx context.Context, from string, to string, transportType transit.TransportType) (time.Time, bool, error) {
	query := bson.M{
		"fromlocation": from,
		"tolocation":   to,
	}
	if transportType != transit.TransportTypeUnknown {
		query["transporttype"] = transportType
	}

	schedulesCollection := GetCollection("schedules")
	opts := options.FindOne().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(bson.D{{Key: "date", Value: 1}})

	var record transit.ScheduleRecord
	err := schedulesCollection.FindOne(ctx, query, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return record.Date, true, nil
}

// GetService finds one scheduled service by identifier.
func (s *Store) GetService(ctx context.Context, serviceID string, date time.Time) (*transit.ScheduleRecord, error) {
	schedulesCollection := GetCollection("schedules")

	var record *transit.ScheduleRecord
	err := schedulesCollection.FindOne(ctx, bson.M{"primaryidentifier": serviceID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: service %s", transit.ErrNotFound, serviceID)
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetLocations lists every location appearing as an origin or destination.
func (s *Store) GetLocations(ctx context.Context) ([]string, error) {
	schedulesCollection := GetCollection("schedules")

	fromLocations, err := schedulesCollection.Distinct(ctx, "fromlocation", bson.M{})
	if err != nil {
		return nil, err
	}

	toLocations, err := schedulesCollection.Distinct(ctx, "tolocation", bson.M{})
	if err != nil {
		return nil, err
	}

	var locations []string
	for _, value := range append(fromLocations, toLocations...) {
		if name, ok := value.(string); ok {
			locations = append(locations, name)
		}
	}

	locations = util.RemoveDuplicateStrings(locations, []string{})
	slices.Sort(locations)

	return locations, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
