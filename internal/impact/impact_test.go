package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForDeviceFixedTuples(t *testing.T) {
	cases := []struct {
		deviceType DeviceType
		materials  Materials
		points     int64
		co2        float64
	}{
		{Smartphone, Materials{Copper: 15, Gold: 0.034, Plastic: 35, Aluminum: 25}, 50, 0.8},
		{Laptop, Materials{Copper: 90, Gold: 0.15, Plastic: 450, Aluminum: 220}, 120, 2.1},
		{Tablet, Materials{Copper: 40, Gold: 0.06, Plastic: 120, Aluminum: 80}, 80, 1.2},
		{Desktop, Materials{Copper: 320, Gold: 0.2, Plastic: 1200, Aluminum: 580}, 150, 2.8},
		{Monitor, Materials{Copper: 110, Gold: 0.05, Plastic: 650, Aluminum: 320}, 90, 1.5},
		{Printer, Materials{Copper: 180, Gold: 0.03, Plastic: 800, Aluminum: 150}, 70, 1.3},
		{TV, Materials{Copper: 220, Gold: 0.04, Plastic: 1100, Aluminum: 380}, 110, 2.0},
		{Console, Materials{Copper: 140, Gold: 0.12, Plastic: 480, Aluminum: 210}, 85, 1.6},
		{Other, Materials{Copper: 100, Gold: 0.05, Plastic: 400, Aluminum: 200}, 60, 1.0},
	}

	for _, tc := range cases {
		t.Run(string(tc.deviceType), func(t *testing.T) {
			est := ForDevice(tc.deviceType)
			assert.Equal(t, tc.deviceType, est.DeviceType)
			assert.Equal(t, tc.materials, est.Materials)
			assert.Equal(t, tc.points, est.Points)
			assert.Equal(t, tc.co2, est.CO2SavedKg)
		})
	}
}

func TestForDeviceUnknownFallsBackToOther(t *testing.T) {
	for _, raw := range []string{"fridge", "", "SMARTPHONE", "washing-machine"} {
		est := ForDevice(DeviceType(raw))
		assert.Equal(t, ForDevice(Other), est, "input %q", raw)
	}
}

func TestDeviceTypesCoversTable(t *testing.T) {
	types := DeviceTypes()
	assert.Len(t, types, 9)

	seen := map[DeviceType]bool{}
	for _, dt := range types {
		assert.False(t, seen[dt], "duplicate %s", dt)
		seen[dt] = true
		assert.Equal(t, dt, ForDevice(dt).DeviceType)
	}
}
