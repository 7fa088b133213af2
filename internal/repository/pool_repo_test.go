package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sprmobility/pool-backend/internal/models"
)

func TestPoolDocumentRoundTrip(t *testing.T) {
	driverID := "driver-1"
	pools := []models.Pool{
		{
			ID:             "pool-1700000000000000000",
			Destination:    "Central Station",
			PickupLocation: "Tech Park Gate 2",
			DepartureTime:  time.Date(2025, time.December, 25, 18, 0, 0, 0, time.UTC),
			Capacity:       4,
			Passengers:     []models.Passenger{{RiderID: "rider-a", Name: "Asha"}},
			PricePerHead:   50,
			Status:         models.PoolStatusAccepted,
			DriverID:       &driverID,
		},
	}

	data, err := encodeDocument(pools)
	if err != nil {
		t.Fatalf("encodeDocument() error = %v", err)
	}

	// The payload must carry its schema version.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("payload is not a JSON object: %v", err)
	}
	if _, ok := raw["version"]; !ok {
		t.Fatal("payload missing version field")
	}

	got, err := decodeDocument(data)
	if err != nil {
		t.Fatalf("decodeDocument() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("decoded %d pools, want 1", len(got))
	}
	if got[0].ID != pools[0].ID || got[0].Status != pools[0].Status {
		t.Errorf("decoded pool = %+v, want %+v", got[0], pools[0])
	}
	if got[0].DriverID == nil || *got[0].DriverID != driverID {
		t.Errorf("decoded DriverID = %v, want %s", got[0].DriverID, driverID)
	}
}

func TestEncodeDocumentNilCollection(t *testing.T) {
	data, err := encodeDocument(nil)
	if err != nil {
		t.Fatalf("encodeDocument(nil) error = %v", err)
	}

	got, err := decodeDocument(data)
	if err != nil {
		t.Fatalf("decodeDocument() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("decoded = %v, want empty collection", got)
	}
}

func TestDecodeDocumentRejectsUnknownVersion(t *testing.T) {
	if _, err := decodeDocument([]byte(`{"version":2,"pools":[]}`)); err == nil {
		t.Fatal("decodeDocument() accepted unknown schema version")
	}
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	if _, err := decodeDocument([]byte(`not json`)); err == nil {
		t.Fatal("decodeDocument() accepted garbage payload")
	}
}
