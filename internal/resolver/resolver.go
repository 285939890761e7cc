// Package resolver joins records by their weak references. All lookups are
// first-match scans over a snapshot; nothing here mutates or errors — an
// absent reference is reported through the ok result.
package resolver

import "github.com/adnanyousaf/landtrack-backend/pkg/db/models"

// UnknownLandLabel is the display label for an expense or income whose land
// reference no longer resolves.
const UnknownLandLabel = "Unknown Land"

// LandByID finds the land with the given id.
func LandByID(lands []models.Land, id string) (models.Land, bool) {
	for _, land := range lands {
		if land.ID == id {
			return land, true
		}
	}
	return models.Land{}, false
}

// FarmerByID finds the farmer with the given id.
func FarmerByID(farmers []models.Farmer, id string) (models.Farmer, bool) {
	for _, farmer := range farmers {
		if farmer.ID == id {
			return farmer, true
		}
	}
	return models.Farmer{}, false
}

// FarmerForLand resolves a land's assigned farmer. An unassigned land (empty
// FarmerID) resolves to nothing, which is a valid state.
func FarmerForLand(farmers []models.Farmer, land models.Land) (models.Farmer, bool) {
	if land.FarmerID == "" {
		return models.Farmer{}, false
	}
	return FarmerByID(farmers, land.FarmerID)
}

// LandName labels the given land id for display, tolerating dangling
// references.
func LandName(lands []models.Land, id string) string {
	if land, ok := LandByID(lands, id); ok {
		return land.Name
	}
	return UnknownLandLabel
}
