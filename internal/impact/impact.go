package impact

// DeviceType identifies a category of recyclable electronic device.
type DeviceType string

const (
	Smartphone DeviceType = "smartphone"
	Laptop     DeviceType = "laptop"
	Tablet     DeviceType = "tablet"
	Desktop    DeviceType = "desktop"
	Monitor    DeviceType = "monitor"
	Printer    DeviceType = "printer"
	TV         DeviceType = "tv"
	Console    DeviceType = "console"
	Other      DeviceType = "other"
)

// Materials holds recoverable material masses in grams.
type Materials struct {
	Copper   float64 `json:"copper" firestore:"copper"`
	Gold     float64 `json:"gold" firestore:"gold"`
	Plastic  float64 `json:"plastic" firestore:"plastic"`
	Aluminum float64 `json:"aluminum" firestore:"aluminum"`
}

// Estimate is the fixed impact attributed to recycling one device:
// recoverable materials, reward points, and avoided CO2 in kilograms.
type Estimate struct {
	DeviceType DeviceType `json:"deviceType"`
	Materials  Materials  `json:"materials"`
	Points     int64      `json:"points"`
	CO2SavedKg float64    `json:"co2SavedKg"`
}

var estimates = map[DeviceType]Estimate{
	Smartphone: {Smartphone, Materials{Copper: 15, Gold: 0.034, Plastic: 35, Aluminum: 25}, 50, 0.8},
	Laptop:     {Laptop, Materials{Copper: 90, Gold: 0.15, Plastic: 450, Aluminum: 220}, 120, 2.1},
	Tablet:     {Tablet, Materials{Copper: 40, Gold: 0.06, Plastic: 120, Aluminum: 80}, 80, 1.2},
	Desktop:    {Desktop, Materials{Copper: 320, Gold: 0.2, Plastic: 1200, Aluminum: 580}, 150, 2.8},
	Monitor:    {Monitor, Materials{Copper: 110, Gold: 0.05, Plastic: 650, Aluminum: 320}, 90, 1.5},
	Printer:    {Printer, Materials{Copper: 180, Gold: 0.03, Plastic: 800, Aluminum: 150}, 70, 1.3},
	TV:         {TV, Materials{Copper: 220, Gold: 0.04, Plastic: 1100, Aluminum: 380}, 110, 2.0},
	Console:    {Console, Materials{Copper: 140, Gold: 0.12, Plastic: 480, Aluminum: 210}, 85, 1.6},
	Other:      {Other, Materials{Copper: 100, Gold: 0.05, Plastic: 400, Aluminum: 200}, 60, 1.0},
}

// ForDevice returns the fixed impact estimate for a device type.
// Unrecognized types map to the Other entry, so the function is total
// over arbitrary input strings.
func ForDevice(t DeviceType) Estimate {
	if e, ok := estimates[t]; ok {
		return e
	}
	e := estimates[Other]
	return e
}

// DeviceTypes lists the declared device categories in display order.
func DeviceTypes() []DeviceType {
	return []DeviceType{
		Smartphone, Laptop, Tablet, Desktop, Monitor, Printer, TV, Console, Other,
	}
}
