package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActivityType tags a schedule entry and selects the detail schema of its reference.
type ActivityType string

const (
	ActivityFlight    ActivityType = "flight"
	ActivityHotel     ActivityType = "hotel"
	ActivityCab       ActivityType = "cab"
	ActivityTrain     ActivityType = "train"
	ActivityBus       ActivityType = "bus"
	ActivityGeneric   ActivityType = "activity"
	ActivityItinerary ActivityType = "itinerary"
)

// ParseActivityType normalizes s; the second result is false for unknown types.
func ParseActivityType(s string) (ActivityType, bool) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case ActivityFlight, ActivityHotel, ActivityCab, ActivityTrain, ActivityBus, ActivityGeneric, ActivityItinerary:
		return t, true
	}
	return t, false
}

// Collection is the catalog collection holding detail documents of t.
func (t ActivityType) Collection() string {
	return string(t) + "s"
}

// Panel names the side panel opened for an activity type.
type Panel struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var panels = map[ActivityType]Panel{
	ActivityHotel:     {ID: "hotelOffcanvas", Label: "View Hotel", Icon: "ri-hotel-line", Color: "#28a745"},
	ActivityFlight:    {ID: "flightOffcanvas", Label: "View Flight", Icon: "ri-flight-takeoff-line", Color: "#007bff"},
	ActivityTrain:     {ID: "trainOffcanvas", Label: "View Train", Icon: "ri-train-line", Color: "#6f42c1"},
	ActivityBus:       {ID: "busOffcanvas", Label: "View Bus", Icon: "ri-bus-line", Color: "#fd7e14"},
	ActivityItinerary: {ID: "itineraryOffcanvas", Label: "View Itinerary", Icon: "ri-calendar-todo-line", Color: "#20c997"},
}

// DefaultPanel is the button shown for types without a dedicated panel; its ID is empty.
var DefaultPanel = Panel{Label: "View Details", Icon: "ri-eye-line", Color: "#6c757d"}

// PanelFor returns the panel of t. The second result is false when t opens no panel.
func PanelFor(t ActivityType) (Panel, bool) {
	p, ok := panels[ActivityType(strings.ToLower(string(t)))]
	if !ok {
		return DefaultPanel, false
	}
	return p, true
}

type Airline struct {
	Name string `json:"name" firestore:"name"`
	Logo string `json:"logo,omitempty" firestore:"logo"`
	Code string `json:"code" firestore:"code"`
}

type FlightEndpoint struct {
	City    string `json:"city" firestore:"city"`
	Airport string `json:"airport" firestore:"airport"`
	Code    string `json:"code" firestore:"code"`
	Time    string `json:"time" firestore:"time"`
	Date    string `json:"date" firestore:"date"`
}

type Price struct {
	Amount   float64 `json:"amount" firestore:"amount"`
	Currency string  `json:"currency" firestore:"currency"`
	Symbol   string  `json:"symbol,omitempty" firestore:"symbol"`
}

type Baggage struct {
	CheckedWeight  string `json:"checkedWeight,omitempty" firestore:"checkedWeight"`
	CabinWeight    string `json:"cabinWeight,omitempty" firestore:"cabinWeight"`
	ExtraAvailable bool   `json:"extraAvailable" firestore:"extraAvailable"`
	FreeChecked    int    `json:"freeChecked" firestore:"freeChecked"`
}

// FlightDetail is the catalog document of a flight.
type FlightDetail struct {
	Airline   Airline        `json:"airline" firestore:"airline"`
	Number    string         `json:"number" firestore:"number"`
	Aircraft  string         `json:"aircraft,omitempty" firestore:"aircraft"`
	Class     string         `json:"class,omitempty" firestore:"class"`
	Departure FlightEndpoint `json:"departure" firestore:"departure"`
	Arrival   FlightEndpoint `json:"arrival" firestore:"arrival"`
	Duration  string         `json:"duration,omitempty" firestore:"duration"`
	Stops     int            `json:"stops" firestore:"stops"`
	Price     *Price         `json:"price,omitempty" firestore:"price"`
	Baggage   *Baggage       `json:"baggage,omitempty" firestore:"baggage"`
	Status    string         `json:"status,omitempty" firestore:"status"`
}

type HotelLocation struct {
	City string `json:"city" firestore:"city"`
}

// HotelDetail is the catalog document of a hotel.
type HotelDetail struct {
	Name             string         `json:"name" firestore:"name"`
	Description      string         `json:"description,omitempty" firestore:"description"`
	Address          string         `json:"address,omitempty" firestore:"address"`
	Location         *HotelLocation `json:"location,omitempty" firestore:"location"`
	Rating           float64        `json:"rating,omitempty" firestore:"rating"`
	StarCategory     int            `json:"starCategory,omitempty" firestore:"starCategory"`
	Thumbnail        string         `json:"thumbnail,omitempty" firestore:"thumbnail"`
	Images           []string       `json:"images,omitempty" firestore:"images"`
	Amenities        []string       `json:"amenities,omitempty" firestore:"amenities"`
	BreakfastOptions []string       `json:"breakfastOptions,omitempty" firestore:"breakfastOptions"`
	Activities       []string       `json:"activities,omitempty" firestore:"activities"`
	CheckIn          string         `json:"checkIn,omitempty" firestore:"checkIn"`
	CheckOut         string         `json:"checkOut,omitempty" firestore:"checkOut"`
}

// CabDetail is the catalog document of a cab ride, train or bus leg.
type CabDetail struct {
	Number   string  `json:"number" firestore:"number"`
	Operator string  `json:"operator,omitempty" firestore:"operator"`
	Vehicle  string  `json:"vehicle,omitempty" firestore:"vehicle"`
	Pickup   string  `json:"pickup,omitempty" firestore:"pickup"`
	Dropoff  string  `json:"dropoff,omitempty" firestore:"dropoff"`
	Price    *Price  `json:"price,omitempty" firestore:"price"`
	Rating   float64 `json:"rating,omitempty" firestore:"rating"`
}

// ActivityDetail is the catalog document of a generic activity.
type ActivityDetail struct {
	Name        string   `json:"name" firestore:"name"`
	Description string   `json:"description,omitempty" firestore:"description"`
	Location    string   `json:"location,omitempty" firestore:"location"`
	Duration    string   `json:"duration,omitempty" firestore:"duration"`
	Images      []string `json:"images,omitempty" firestore:"images"`
	Price       *Price   `json:"price,omitempty" firestore:"price"`
}

// Detail is one decoded catalog document. Exactly one variant field is set, matching Type.
type Detail struct {
	Type      ActivityType    `json:"type"`
	ID        string          `json:"id"`
	Flight    *FlightDetail   `json:"flight,omitempty"`
	Hotel     *HotelDetail    `json:"hotel,omitempty"`
	Cab       *CabDetail      `json:"cab,omitempty"`
	Activity  *ActivityDetail `json:"activity,omitempty"`
	Itinerary *ItineraryState `json:"itinerary,omitempty"`
}

// DecodeDetail decodes a raw JSON catalog document into the variant of t.
func DecodeDetail(t ActivityType, id string, raw []byte) (*Detail, error) {
	d, err := NewDetail(t, id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, d.Variant()); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", t, id, err)
	}
	return d, nil
}

// Variant returns the set variant, for storage layers that decode in place.
func (d *Detail) Variant() any {
	switch {
	case d.Flight != nil:
		return d.Flight
	case d.Hotel != nil:
		return d.Hotel
	case d.Cab != nil:
		return d.Cab
	case d.Activity != nil:
		return d.Activity
	case d.Itinerary != nil:
		return d.Itinerary
	}
	return nil
}

// NewDetail allocates an empty variant of t, ready for a decoder to fill.
func NewDetail(t ActivityType, id string) (*Detail, error) {
	d := &Detail{Type: t, ID: id}
	switch t {
	case ActivityFlight:
		d.Flight = &FlightDetail{}
	case ActivityHotel:
		d.Hotel = &HotelDetail{}
	case ActivityCab, ActivityTrain, ActivityBus:
		d.Cab = &CabDetail{}
	case ActivityGeneric:
		d.Activity = &ActivityDetail{}
	case ActivityItinerary:
		d.Itinerary = &ItineraryState{}
	default:
		return nil, fmt.Errorf("unknown activity type %q", t)
	}
	return d, nil
}
