package repository

import (
	catalogRepo "tripmate/database/repository/catalog"
	itineraryRepo "tripmate/database/repository/itinerary"
	preferencesRepo "tripmate/database/repository/preferences"
	profileRepo "tripmate/database/repository/profile"
)

// Re-export the ItineraryRepository interface and constructors.
type ItineraryRepository = itineraryRepo.ItineraryRepository

var (
	NewRTDBItineraryRepo   = itineraryRepo.NewRTDBItineraryRepo
	NewMongoItineraryRepo  = itineraryRepo.NewMongoItineraryRepo
	NewMemoryItineraryRepo = itineraryRepo.NewMemoryItineraryRepo
)

// Re-export the ProfileRepository interface and constructors.
type ProfileRepository = profileRepo.ProfileRepository

var (
	NewFirestoreProfileRepo = profileRepo.NewFirestoreProfileRepo
	NewMemoryProfileRepo    = profileRepo.NewMemoryProfileRepo
)

// Re-export the PreferencesRepository interface and constructors.
type PreferencesRepository = preferencesRepo.PreferencesRepository

var (
	NewRTDBPreferencesRepo   = preferencesRepo.NewRTDBPreferencesRepo
	NewMemoryPreferencesRepo = preferencesRepo.NewMemoryPreferencesRepo
)

// Re-export the CatalogRepository interface and constructors.
type CatalogRepository = catalogRepo.CatalogRepository

var (
	NewFirestoreCatalogRepo = catalogRepo.NewFirestoreCatalogRepo
	NewMemoryCatalogRepo    = catalogRepo.NewMemoryCatalogRepo
	NewCachedCatalogRepo    = catalogRepo.NewCachedCatalogRepo
)
