package transit

import "fmt"

type TransportType string

const (
	TransportTypeBus     TransportType = "Bus"
	TransportTypeMetro   TransportType = "Metro"
	TransportTypeTrain   TransportType = "Train"
	TransportTypeUnknown TransportType = "UNKNOWN"
)

func ParseTransportType(value string) (TransportType, error) {
	switch value {
	case "Bus", "bus":
		return TransportTypeBus, nil
	case "Metro", "metro":
		return TransportTypeMetro, nil
	case "Train", "train":
		return TransportTypeTrain, nil
	}

	return TransportTypeUnknown, fmt.Errorf("%w: unknown transport type %q", ErrValidation, value)
}
