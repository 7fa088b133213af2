package models

import (
	"testing"
)

func TestReconcileStatus(t *testing.T) {
	driverID := "driver-1"

	tests := []struct {
		name       string
		driver     *string
		passengers int
		capacity   int
		want       string
	}{
		{"no driver, empty", nil, 0, 4, PoolStatusPending},
		{"no driver, full", nil, 4, 4, PoolStatusPending},
		{"driver, seats open", &driverID, 2, 4, PoolStatusAccepted},
		{"driver, full", &driverID, 4, 4, PoolStatusConfirmed},
		{"driver, empty", &driverID, 0, 4, PoolStatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pool{Capacity: tt.capacity, DriverID: tt.driver}
			for i := 0; i < tt.passengers; i++ {
				p.Passengers = append(p.Passengers, Passenger{RiderID: string(rune('a' + i))})
			}

			p.ReconcileStatus()
			if p.Status != tt.want {
				t.Errorf("ReconcileStatus() = %q, want %q", p.Status, tt.want)
			}
		})
	}
}

func TestVisibility(t *testing.T) {
	driverID := "driver-1"

	pending := Pool{Capacity: 4, Status: PoolStatusPending}
	accepted := Pool{Capacity: 4, Status: PoolStatusAccepted, DriverID: &driverID}
	confirmed := Pool{Capacity: 4, Status: PoolStatusConfirmed, DriverID: &driverID}

	if !pending.VisibleToRiders() || !accepted.VisibleToRiders() {
		t.Error("pending and accepted pools must be visible to riders")
	}
	if confirmed.VisibleToRiders() {
		t.Error("confirmed pool must be hidden from riders")
	}
	if !pending.VisibleToDrivers() {
		t.Error("pending driverless pool must be visible to drivers")
	}
	if accepted.VisibleToDrivers() || confirmed.VisibleToDrivers() {
		t.Error("pools with a driver must be hidden from drivers")
	}
}

func TestHasPassengerAndSeats(t *testing.T) {
	p := Pool{
		Capacity:   4,
		Passengers: []Passenger{{RiderID: "rider-a", Name: "Asha"}},
	}

	if !p.HasPassenger("rider-a") {
		t.Error("HasPassenger(rider-a) = false, want true")
	}
	if p.HasPassenger("rider-b") {
		t.Error("HasPassenger(rider-b) = true, want false")
	}
	if got := p.SeatsLeft(); got != 3 {
		t.Errorf("SeatsLeft() = %d, want 3", got)
	}
	if p.IsFull() {
		t.Error("IsFull() = true with 1 of 4 seats taken")
	}
}
