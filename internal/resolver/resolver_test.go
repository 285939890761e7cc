package resolver

import (
	"testing"

	"github.com/adnanyousaf/landtrack-backend/pkg/db/models"
)

func TestLandByID(t *testing.T) {
	lands := []models.Land{
		{ID: "land-1", Name: "North Field"},
		{ID: "land-2", Name: "South Field"},
	}

	land, ok := LandByID(lands, "land-2")
	if !ok {
		t.Fatal("expected land-2 to resolve")
	}
	if land.Name != "South Field" {
		t.Fatalf("unexpected land %+v", land)
	}

	if _, ok := LandByID(lands, "missing"); ok {
		t.Fatal("missing id must not resolve")
	}
	if _, ok := LandByID(nil, "land-1"); ok {
		t.Fatal("nil snapshot must not resolve")
	}
}

func TestFarmerForLand(t *testing.T) {
	farmers := []models.Farmer{{ID: "farmer-1", Name: "Akbar"}}

	farmer, ok := FarmerForLand(farmers, models.Land{ID: "land-1", FarmerID: "farmer-1"})
	if !ok {
		t.Fatal("expected assigned farmer to resolve")
	}
	if farmer.Name != "Akbar" {
		t.Fatalf("unexpected farmer %+v", farmer)
	}

	if _, ok := FarmerForLand(farmers, models.Land{ID: "land-2"}); ok {
		t.Fatal("unassigned land must resolve to nothing")
	}
	if _, ok := FarmerForLand(farmers, models.Land{ID: "land-3", FarmerID: "gone"}); ok {
		t.Fatal("dangling reference must resolve to nothing")
	}
}

func TestLandName(t *testing.T) {
	lands := []models.Land{{ID: "land-1", Name: "North Field"}}

	if got := LandName(lands, "land-1"); got != "North Field" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := LandName(lands, "missing"); got != UnknownLandLabel {
		t.Fatalf("expected %q for dangling reference, got %q", UnknownLandLabel, got)
	}
}
