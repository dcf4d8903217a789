package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/hydertrax/hydertrax/pkg/calendar"
	"github.com/hydertrax/hydertrax/pkg/mlmodel"
	"github.com/hydertrax/hydertrax/pkg/tracker"
	"github.com/hydertrax/hydertrax/pkg/transit"
	"github.com/hydertrax/hydertrax/pkg/util"
	"github.com/hydertrax/hydertrax/pkg/weather"
)

// ScheduleStore is the schedule lookup and append-only prediction audit log
// the engine consumes.
type ScheduleStore interface {
	GetSchedules(ctx context.Context, from string, to string, date time.Time, transportType transit.TransportType) ([]*transit.ScheduleRecord, error)
	GetService(ctx context.Context, serviceID string, date time.Time) (*transit.ScheduleRecord, error)
	AppendPrediction(ctx context.Context, insight *transit.Insight, request *transit.PredictionRequest) error
}

// WeatherService returns current conditions for the served city. It degrades
// to a fallback instead of failing.
type WeatherService interface {
	Current(ctx context.Context) weather.Conditions
}

// Engine owns the loaded model and encoder registry for its process
// lifetime: load once at construction, read-only for every request after.
type Engine struct {
	config Config

	model    *mlmodel.Model
	encoders *mlmodel.Registry

	features  *FeatureBuilder
	predictor *Predictor
	calendar  *calendar.Calendar

	store   ScheduleStore
	weather WeatherService
}

// NewEngine loads the model and encoder artifacts and wires the engine
// together. Missing or version-mismatched artifacts are fatal: serving with
// a mismatched encoder silently corrupts every prediction.
func NewEngine(config Config, store ScheduleStore, weatherService WeatherService) (*Engine, error) {
	model, err := mlmodel.LoadModel(filepath.Join(config.ModelsDir, "delay_model.json"))
	if err != nil {
		return nil, fmt.Errorf("loading delay model: %w", err)
	}

	encoders, err := mlmodel.LoadEncoders(filepath.Join(config.ModelsDir, "label_encoders.json"))
	if err != nil {
		return nil, fmt.Errorf("loading label encoders: %w", err)
	}

	if model.SchemaVersion() != encoders.SchemaVersion() {
		return nil, fmt.Errorf("%w: model declares %s, encoders declare %s",
			mlmodel.ErrVersionMismatch, model.SchemaVersion(), encoders.SchemaVersion())
	}

	for _, feature := range model.FeatureOrder() {
		if isCategoricalFeature(feature) && !encoders.HasField(feature) {
			return nil, fmt.Errorf("%w: model expects categorical feature %q missing from encoder artifact", ErrConfiguration, feature)
		}
	}

	serviceCalendar := calendar.Default()
	if config.CalendarPath != "" {
		serviceCalendar, err = calendar.LoadFile(config.CalendarPath)
		if err != nil {
			return nil, fmt.Errorf("loading calendar: %w", err)
		}
	}

	return &Engine{
		config: config,

		model:    model,
		encoders: encoders,

		features:  NewFeatureBuilder(model, encoders),
		predictor: NewPredictor(model, encoders, config.MaxDelayCapMinutes),
		calendar:  serviceCalendar,

		store:   store,
		weather: weatherService,
	}, nil
}

func isCategoricalFeature(feature string) bool {
	switch feature {
	case "Transport_Type", "From_Location", "To_Location", "Weather", "Traffic_Density":
		return true
	}

	return false
}

func (e *Engine) ModelVersion() string {
	return e.model.Version()
}

// Predict produces a delay Insight for a route request. The completed
// Insight is appended to the audit log as a side effect; an audit failure is
// reported but never blocks the response.
func (e *Engine) Predict(ctx context.Context, request *transit.PredictionRequest) (*transit.Insight, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var scheduleContext *transit.ScheduleRecord

	records, err := e.store.GetSchedules(ctx, request.FromLocation, request.ToLocation, request.TravelDate, request.TransportType)
	if err != nil {
		log.Warn().Err(err).Msg("Schedule lookup failed, predicting without schedule context")
	} else if len(records) > 0 {
		scheduleContext = matchScheduleByDeparture(records, request)
	}

	insight, err := e.predictOne(ctx, request, scheduleContext)
	if err != nil {
		return nil, err
	}

	e.auditInsight(insight, request)

	return insight, nil
}

// PredictBatch predicts every scheduled run on a route for a date, in
// schedule order.
func (e *Engine) PredictBatch(ctx context.Context, request *transit.PredictionRequest) ([]*transit.Insight, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	records, err := e.store.GetSchedules(ctx, request.FromLocation, request.ToLocation, request.TravelDate, request.TransportType)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no services between %s and %s", transit.ErrNotFound, request.FromLocation, request.ToLocation)
	}

	p := pool.NewWithResults[*transit.Insight]().WithMaxGoroutines(e.config.BatchConcurrency)

	for _, record := range records {
		record := record
		p.Go(func() *transit.Insight {
			serviceRequest := *request
			serviceRequest.DepartureTime = record.ScheduledDeparture

			insight, err := e.predictOne(ctx, &serviceRequest, record)
			if err != nil {
				log.Error().Err(err).Str("service", record.PrimaryIdentifier).Msg("Failed to predict for service")
				return nil
			}

			e.auditInsight(insight, &serviceRequest)

			return insight
		})
	}

	var insights []*transit.Insight
	for _, insight := range p.Wait() {
		if insight != nil {
			insights = append(insights, insight)
		}
	}

	return insights, nil
}

// Track simulates the live stop-by-stop timeline of one service as of a
// given instant. Timelines are recomputed per call and never cached, since
// their validity depends on the supplied instant.
func (e *Engine) Track(ctx context.Context, serviceID string, asOf time.Time) (*transit.Timeline, error) {
	record, err := e.store.GetService(ctx, serviceID, asOf)
	if err != nil {
		return nil, err
	}

	request := &transit.PredictionRequest{
		FromLocation:  record.FromLocation,
		ToLocation:    record.ToLocation,
		TransportType: record.TransportType,
		TravelDate:    asOf,
		DepartureTime: record.ScheduledDeparture,
	}

	insight, err := e.predictOne(ctx, request, record)
	if err != nil {
		return nil, err
	}

	e.auditInsight(insight, request)

	stops := e.scheduledStops(record, asOf)
	estimates := tracker.Simulate(stops, time.Duration(insight.PredictedDelayMinutes)*time.Minute, asOf)

	return &transit.Timeline{
		ServiceID: serviceID,
		AsOf:      asOf,

		Stops:   estimates,
		Insight: insight,
	}, nil
}

// scheduledStops rebases the service's stop sequence onto the tracked day.
// Records carry only origin and destination times, so intermediate stops are
// spaced evenly across the scheduled run.
func (e *Engine) scheduledStops(record *transit.ScheduleRecord, asOf time.Time) []tracker.Stop {
	names := record.Stops
	if len(names) < 2 {
		names = []string{record.FromLocation, record.ToLocation}
	}

	departure := util.AddTimeToDate(asOf, record.ScheduledDeparture)
	arrival := util.AddTimeToDate(asOf, record.ScheduledArrival)

	if !arrival.After(departure) {
		arrival = departure.Add(e.estimateRunTime(record))
	}

	runTime := arrival.Sub(departure)
	stops := make([]tracker.Stop, len(names))

	for i, name := range names {
		offset := time.Duration(float64(runTime) * float64(i) / float64(len(names)-1))
		stops[i] = tracker.Stop{
			Name:      name,
			Scheduled: departure.Add(offset),
		}
	}

	return stops
}

func (e *Engine) estimateRunTime(record *transit.ScheduleRecord) time.Duration {
	distance := record.DistanceKM
	if distance <= 0 {
		distance = e.config.DefaultDistanceKM
	}

	speed := e.config.SpeedKMH[record.TransportType]
	if speed <= 0 {
		speed = e.config.SpeedKMH[transit.TransportTypeBus]
	}

	return time.Duration(distance / speed * float64(time.Hour))
}

func (e *Engine) predictOne(ctx context.Context, request *transit.PredictionRequest, record *transit.ScheduleRecord) (*transit.Insight, error) {
	predictionContext := e.resolveContext(ctx, request, record)

	vector, err := e.features.Build(predictionContext)
	if err != nil {
		return nil, err
	}

	delay, confidence, reason, err := e.predictor.Predict(vector, predictionContext)
	if err != nil {
		return nil, err
	}

	departure := request.DepartureDateTime()

	var arrival time.Time
	if record != nil && record.ScheduledArrival.After(record.ScheduledDeparture) {
		arrival = departure.Add(record.Duration())
	} else {
		distanceRecord := record
		if distanceRecord == nil {
			distanceRecord = &transit.ScheduleRecord{
				TransportType: request.TransportType,
				DistanceKM:    e.config.DefaultDistanceKM,
			}
		}
		arrival = departure.Add(e.estimateRunTime(distanceRecord))
	}

	return &transit.Insight{
		PredictedDelayMinutes: delay,
		DelayCategory:         transit.CategoriseDelay(delay, e.config.DelayBands),
		Confidence:            confidence,
		PrimaryReason:         reason,

		FromLocation:  request.FromLocation,
		ToLocation:    request.ToLocation,
		TransportType: request.TransportType,

		ScheduledDeparture: departure,
		ScheduledArrival:   arrival,
		EstimatedArrival:   arrival.Add(time.Duration(delay) * time.Minute),

		Weather:        predictionContext.Weather.Condition,
		TemperatureC:   predictionContext.Weather.TemperatureC,
		HumidityPct:    predictionContext.Weather.HumidityPct,
		TrafficDensity: predictionContext.TrafficDensity,
		PassengerLoad:  predictionContext.PassengerLoad,
		IsHoliday:      predictionContext.IsHoliday,
		IsPeakHour:     predictionContext.IsPeakHour,
		EventScheduled: predictionContext.EventScheduled,

		ModelVersion:     e.model.Version(),
		CreationDateTime: time.Now(),
	}, nil
}

// resolveContext merges request overrides, recorded schedule context and
// live lookups into the complete set of raw prediction inputs. Lookups
// degrade to defaults; nothing here may fail.
func (e *Engine) resolveContext(ctx context.Context, request *transit.PredictionRequest, record *transit.ScheduleRecord) Context {
	departure := request.DepartureDateTime()
	hour := departure.Hour()

	travelDate := request.TravelDate
	// pandas counts Monday as day zero, so encoded day-of-week must too
	dayOfWeek := (int(travelDate.Weekday()) + 6) % 7

	_, isHoliday := e.calendar.Holiday(travelDate)
	eventScheduled := e.calendar.HasEvent(travelDate)

	if record != nil {
		isHoliday = isHoliday || record.IsHoliday
		eventScheduled = eventScheduled || record.EventScheduled
	}
	if request.EventScheduled != nil {
		eventScheduled = *request.EventScheduled
	}

	conditions := e.resolveWeather(ctx, request, record, travelDate)

	trafficDensity := ""
	switch {
	case request.TrafficDensity != nil:
		trafficDensity = *request.TrafficDensity
	case record != nil && record.TrafficDensity != "" && sameDay(record.Date, travelDate):
		trafficDensity = record.TrafficDensity
	default:
		trafficDensity = estimateTrafficDensity(hour, conditions.IsRainy(), eventScheduled)
	}

	passengerLoad := 0
	switch {
	case request.PassengerLoad != nil:
		passengerLoad = *request.PassengerLoad
	case record != nil && record.PassengerLoad > 0:
		passengerLoad = record.PassengerLoad
	case record != nil:
		passengerLoad = estimatePassengerLoad(record.PrimaryIdentifier, hour, eventScheduled)
	default:
		passengerLoad = e.config.DefaultPassengerLoad
	}

	distance := e.config.DefaultDistanceKM
	switch {
	case request.DistanceKM != nil:
		distance = *request.DistanceKM
	case record != nil && record.DistanceKM > 0:
		distance = record.DistanceKM
	}

	return Context{
		TransportType: request.TransportType,
		FromLocation:  request.FromLocation,
		ToLocation:    request.ToLocation,

		Weather:        conditions,
		TrafficDensity: trafficDensity,

		IsHoliday:      isHoliday,
		IsPeakHour:     e.config.isPeakHour(hour),
		IsWeekend:      dayOfWeek >= 5,
		EventScheduled: eventScheduled,

		PassengerLoad: passengerLoad,
		DistanceKM:    distance,

		DepartureHour: hour,
		DayOfWeek:     dayOfWeek,
		Month:         int(travelDate.Month()),
	}
}

// resolveWeather prefers an explicit override, then the context recorded on
// a same-day schedule, then the live lookup (which itself falls back to the
// configured default).
func (e *Engine) resolveWeather(ctx context.Context, request *transit.PredictionRequest, record *transit.ScheduleRecord, travelDate time.Time) weather.Conditions {
	if request.Weather != nil {
		return weather.Conditions{
			Condition:    *request.Weather,
			TemperatureC: e.config.FallbackWeather.TemperatureC,
			HumidityPct:  e.config.FallbackWeather.HumidityPct,
			Source:       "request",
		}
	}

	if record != nil && record.Weather != "" && sameDay(record.Date, travelDate) {
		return weather.Conditions{
			Condition:    record.Weather,
			TemperatureC: record.TemperatureC,
			HumidityPct:  record.HumidityPct,
			Source:       "schedule",
		}
	}

	if e.weather != nil {
		return e.weather.Current(ctx)
	}

	return e.config.FallbackWeather
}

// auditInsight is fire-and-forget: the response is already computed, so an
// audit failure is logged and otherwise ignored.
func (e *Engine) auditInsight(insight *transit.Insight, request *transit.PredictionRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.store.AppendPrediction(ctx, insight, request); err != nil {
			log.Error().Err(err).Msg("Failed to append prediction to audit log")
		}
	}()
}

func matchScheduleByDeparture(records []*transit.ScheduleRecord, request *transit.PredictionRequest) *transit.ScheduleRecord {
	if request.DepartureTime.IsZero() {
		return records[0]
	}

	for _, record := range records {
		if record.ScheduledDeparture.Hour() == request.DepartureTime.Hour() {
			return record
		}
	}

	return records[0]
}

func sameDay(a time.Time, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
