package engine

import "hash/fnv"

// estimateTrafficDensity derives a traffic level from the known congestion
// stressors when no live or recorded density is available. Scores mirror the
// distribution the training data was generated with.
func estimateTrafficDensity(hour int, isRainy bool, eventScheduled bool) string {
	score := 0

	if (hour >= 8 && hour <= 11) || (hour >= 17 && hour <= 20) {
		score += 5
	}
	if isRainy {
		score += 3
	}
	if eventScheduled {
		score += 4
	}

	switch {
	case score >= 9:
		return "Very High"
	case score >= 6:
		return "High"
	case score >= 3:
		return "Medium"
	}

	return "Low"
}

// estimatePassengerLoad produces a deterministic load percentage for a
// service: peak departures run near capacity, events add crowding, and a
// seeded jitter keeps services on the same route from looking identical.
func estimatePassengerLoad(serviceID string, hour int, eventScheduled bool) int {
	base := 40
	if (hour >= 8 && hour <= 11) || (hour >= 17 && hour <= 20) {
		base = 85
	}
	if eventScheduled {
		base += 20
	}

	seed := fnv.New32a()
	seed.Write([]byte(serviceID))
	jitter := int(seed.Sum32()%25) - 10

	load := base + jitter
	if load < 0 {
		load = 0
	}
	if load > 100 {
		load = 100
	}

	return load
}
