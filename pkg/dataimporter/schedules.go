package dataimporter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hydertrax/hydertrax/pkg/database"
	"github.com/hydertrax/hydertrax/pkg/transit"
)

// scheduleRow mirrors one row of the schedule history CSV export.
type scheduleRow struct {
	Date          string `csv:"Date"`
	TransportType string `csv:"Transport_Type"`
	FromLocation  string `csv:"From_Location"`
	ToLocation    string `csv:"To_Location"`

	ScheduledDeparture string `csv:"Scheduled_Departure"`
	ScheduledArrival   string `csv:"Scheduled_Arrival"`
	Stops              string `csv:"Stops"` // pipe separated, optional

	Weather        string  `csv:"Weather"`
	TemperatureC   float64 `csv:"Temperature_C"`
	HumidityPct    float64 `csv:"Humidity_Pct"`
	IsHoliday      int     `csv:"Is_Holiday"`
	IsPeakHour     int     `csv:"Is_Peak_Hour"`
	EventScheduled int     `csv:"Event_Scheduled"`
	TrafficDensity string  `csv:"Traffic_Density"`
	PassengerLoad  int     `csv:"Passenger_Load"`
	DistanceKM     float64 `csv:"Distance_KM"`

	DelayMinutes int `csv:"Delay_Minutes"`
}

// ImportScheduleFile upserts every row of the CSV into the schedules
// collection. Re-importing the same file is idempotent.
func ImportScheduleFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening schedule file: %w", err)
	}
	defer file.Close()

	var rows []*scheduleRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return 0, fmt.Errorf("parsing schedule file: %w", err)
	}

	schedulesCollection := database.GetCollection("schedules")

	var operations []mongo.WriteModel
	skipped := 0

	for lineNumber, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			log.Warn().Err(err).Int("line", lineNumber+2).Msg("Skipping invalid schedule row")
			skipped++
			continue
		}

		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"primaryidentifier": record.PrimaryIdentifier}).
			SetReplacement(record).
			SetUpsert(true))
	}

	if len(operations) == 0 {
		return 0, fmt.Errorf("no importable rows in %s", path)
	}

	if _, err := schedulesCollection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false)); err != nil {
		return 0, fmt.Errorf("writing schedules: %w", err)
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("Skipped invalid schedule rows")
	}

	return len(operations), nil
}

func (row *scheduleRow) toRecord() (*transit.ScheduleRecord, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", row.Date, err)
	}

	transportType, err := transit.ParseTransportType(row.TransportType)
	if err != nil {
		return nil, err
	}

	if row.FromLocation == "" || row.ToLocation == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}

	departure, err := clockOnDate(date, row.ScheduledDeparture)
	if err != nil {
		return nil, fmt.Errorf("parsing departure %q: %w", row.ScheduledDeparture, err)
	}

	arrival, err := clockOnDate(date, row.ScheduledArrival)
	if err != nil {
		return nil, fmt.Errorf("parsing arrival %q: %w", row.ScheduledArrival, err)
	}
	// Overnight runs arrive the next day
	if !arrival.After(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	var stops []string
	for _, stop := range strings.Split(row.Stops, "|") {
		if stop = strings.TrimSpace(stop); stop != "" {
			stops = append(stops, stop)
		}
	}

	now := time.Now()

	return &transit.ScheduleRecord{
		PrimaryIdentifier: serviceIdentifier(row, date),

		CreationDateTime:     now,
		ModificationDateTime: now,

		Date:          date,
		TransportType: transportType,

		FromLocation: row.FromLocation,
		ToLocation:   row.ToLocation,
		Stops:        stops,

		ScheduledDeparture: departure,
		ScheduledArrival:   arrival,

		Weather:        row.Weather,
		TemperatureC:   row.TemperatureC,
		HumidityPct:    row.HumidityPct,
		IsHoliday:      row.IsHoliday != 0,
		IsPeakHour:     row.IsPeakHour != 0,
		EventScheduled: row.EventScheduled != 0,
		TrafficDensity: row.TrafficDensity,
		PassengerLoad:  row.PassengerLoad,
		DistanceKM:     row.DistanceKM,

		DelayMinutes: row.DelayMinutes,
	}, nil
}

func clockOnDate(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location(),
	), nil
}

func serviceIdentifier(row *scheduleRow, date time.Time) string {
	slug := func(value string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", "-"))
	}

	return fmt.Sprintf("hydertrax-service-%s-%s-%s-%s-%s",
		slug(row.TransportType), slug(row.FromLocation), slug(row.ToLocation),
		date.Format("20060102"), strings.ReplaceAll(row.ScheduledDeparture, ":", ""),
	)
}
