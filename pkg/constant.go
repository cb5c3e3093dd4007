package pkg

// enum of ship_type
type ShipType uint8

const (
	CONTAINER_SHIP ShipType = iota
	TANKER
	BULK_CARRIER
	FISHING_VESSEL
	GENERIC_CARGO
	UNKNOWN_SHIP
)

const (
	// missing cost cells become maxFinite * PENALTY_FACTOR
	PENALTY_FACTOR float64 = 1e100

	// legacy placeholder for quantities a boat model does not compute
	UNMODELED_SENTINEL float64 = -99

	MIN_FUEL_RATE = 0.5 // kg/s
	MAX_FUEL_RATE = 5.0 // kg/s

	MIN_SYNTHETIC_WAVE_HEIGHT = 0.5  // m
	MAX_SYNTHETIC_WAVE_HEIGHT = 3.0  // m
	MIN_SYNTHETIC_WIND_SPEED  = 0.0  // m/s
	MAX_SYNTHETIC_WIND_SPEED  = 15.0 // m/s
)

const (
	DEBUG = false
)

func GetShipType(shipType string) ShipType {
	switch shipType {
	case "container_ship":
		return CONTAINER_SHIP
	case "tanker":
		return TANKER
	case "bulk_carrier":
		return BULK_CARRIER
	case "fishing_vessel":
		return FISHING_VESSEL
	case "generic_cargo":
		return GENERIC_CARGO
	default:
		return UNKNOWN_SHIP
	}
}

// TypeMultiplier scales the baseline fuel rate per ship category. Unknown types use 1.0.
func (st ShipType) TypeMultiplier() float64 {
	switch st {
	case CONTAINER_SHIP:
		return 1.2
	case TANKER:
		return 1.0
	case BULK_CARRIER:
		return 1.1
	case FISHING_VESSEL:
		return 0.8
	case GENERIC_CARGO:
		return 1.0
	default:
		return 1.0
	}
}
