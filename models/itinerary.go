package models

// UserDetails describes the traveller who owns the itinerary.
type UserDetails struct {
	Name                string `json:"name" bson:"name"`
	Email               string `json:"email" bson:"email"`
	PhoneNumber         string `json:"phone_number" bson:"phone_number"`
	PassportNationality string `json:"passport_nationality" bson:"passport_nationality"`
	HomeAddress         string `json:"home_address" bson:"home_address"`
}

// PersonDetails describes a co-traveller.
type PersonDetails struct {
	Name           string `json:"name" bson:"name"`
	Age            int    `json:"age" bson:"age"`
	Gender         string `json:"gender" bson:"gender"`
	RelationToUser string `json:"relation_to_user" bson:"relation_to_user"`
}

// TripPreferences are the assistant-collected travel preferences of one itinerary.
type TripPreferences struct {
	TravelTheme         []string `json:"travel_theme" bson:"travel_theme"`
	CuisinePreferences  []string `json:"cuisine_preferences" bson:"cuisine_preferences"`
	DietaryRestrictions []string `json:"dietary_restrictions" bson:"dietary_restrictions"`
	Interests           []string `json:"interests" bson:"interests"`
	HotelType           string   `json:"hotel_type" bson:"hotel_type"`
	FlightSeatType      string   `json:"flight_seat_type" bson:"flight_seat_type"`
}

// ScheduleItem is one scheduled activity of a day. ActivityObject references the
// detail document of ActivityType in the catalog.
type ScheduleItem struct {
	ActivityType   ActivityType   `json:"activity_type" bson:"activity_type"`
	StartTime      string         `json:"start_time" bson:"start_time"`
	EndTime        string         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Description    string         `json:"description" bson:"description"`
	ActivityObject string         `json:"activity_object,omitempty" bson:"activity_object,omitempty"`
	BookingStatus  string         `json:"booking_status,omitempty" bson:"booking_status,omitempty"`
	FlightNumber   string         `json:"flight_number,omitempty" bson:"flight_number,omitempty"`
	CabNumber      string         `json:"cab_number,omitempty" bson:"cab_number,omitempty"`
	Details        map[string]any `json:"details,omitempty" bson:"details,omitempty"`
}

// Day is an ordered list of scheduled activities.
type Day struct {
	DayNumber int            `json:"day_number" bson:"day_number"`
	Date      string         `json:"date" bson:"date"`
	Schedule  []ScheduleItem `json:"schedule" bson:"schedule"`
}

// Itinerary is the travel plan itself.
type Itinerary struct {
	TripName    string `json:"trip_name" bson:"trip_name"`
	Origin      string `json:"origin" bson:"origin"`
	Destination string `json:"destination" bson:"destination"`
	StartDate   string `json:"start_date" bson:"start_date"`
	EndDate     string `json:"end_date" bson:"end_date"`
	Days        []Day  `json:"days" bson:"days"`
}

// ExpenseBreakdown splits a budget by spending category.
type ExpenseBreakdown struct {
	Flights       *float64 `json:"flights,omitempty" bson:"flights,omitempty"`
	Hotels        *float64 `json:"hotels,omitempty" bson:"hotels,omitempty"`
	Food          *float64 `json:"food,omitempty" bson:"food,omitempty"`
	Activities    *float64 `json:"activities,omitempty" bson:"activities,omitempty"`
	Transport     *float64 `json:"transport,omitempty" bson:"transport,omitempty"`
	Miscellaneous *float64 `json:"miscellaneous,omitempty" bson:"miscellaneous,omitempty"`
}

type Budget struct {
	TotalBudget      float64          `json:"total_budget" bson:"total_budget"`
	Currency         string           `json:"currency" bson:"currency"`
	ExpenseBreakdown ExpenseBreakdown `json:"expense_breakdown" bson:"expense_breakdown"`
}

type CurrencyExchange struct {
	FromCurrency string   `json:"from_currency" bson:"from_currency"`
	ToCurrency   string   `json:"to_currency" bson:"to_currency"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty" bson:"exchange_rate,omitempty"`
	LastUpdated  string   `json:"last_updated" bson:"last_updated"`
}

// ItineraryState is everything the assistant knows about one trip.
type ItineraryState struct {
	UserDetails      UserDetails      `json:"user_details" bson:"user_details"`
	PersonsDetails   []PersonDetails  `json:"persons_details" bson:"persons_details"`
	Preferences      TripPreferences  `json:"preferences" bson:"preferences"`
	Itinerary        Itinerary        `json:"itinerary" bson:"itinerary"`
	Budget           Budget           `json:"budget" bson:"budget"`
	CurrencyExchange CurrencyExchange `json:"currency_exchange" bson:"currency_exchange"`
	ItineraryCreated bool             `json:"itinerary_created,omitempty" bson:"itinerary_created,omitempty"`
}

// ItineraryRecord is one stored itinerary with its chat.
type ItineraryRecord struct {
	ID       string         `json:"id" bson:"itinerary_id"`
	Status   string         `json:"status" bson:"status"`
	State    ItineraryState `json:"state" bson:"state"`
	Typing   bool           `json:"typing" bson:"typing"`
	Reply    ReplyStatus    `json:"reply" bson:"reply"`
	Messages []ChatMessage  `json:"messages" bson:"-"`
}

// HasMessages reports whether the chat holds at least one real message entry.
func (r ItineraryRecord) HasMessages() bool {
	return len(r.Messages) > 0
}

// DayByNumber returns the day with the given day_number.
func (it Itinerary) DayByNumber(n int) (Day, bool) {
	for _, d := range it.Days {
		if d.DayNumber == n {
			return d, true
		}
	}
	return Day{}, false
}

const (
	StatusDraft        = "draft"
	UntitledItinerary  = "Untitled Itinerary"
	InitialItineraryID = "itinerary_id_1"
)

// BlankState is the state written for a fresh account.
func BlankState() ItineraryState {
	return ItineraryState{
		PersonsDetails: []PersonDetails{{}},
		Preferences: TripPreferences{
			TravelTheme:         []string{},
			CuisinePreferences:  []string{},
			DietaryRestrictions: []string{},
			Interests:           []string{},
		},
		Itinerary: Itinerary{Days: []Day{}},
	}
}

// BlankItinerary is the record written on account creation.
func BlankItinerary() ItineraryRecord {
	return ItineraryRecord{
		ID:     InitialItineraryID,
		Status: StatusDraft,
		State:  BlankState(),
		Reply:  ReplyStatus{State: ReplyIdle},
	}
}

// UntitledRecord is the record pushed by "create new itinerary".
func UntitledRecord() ItineraryRecord {
	st := BlankState()
	st.Itinerary.TripName = UntitledItinerary
	return ItineraryRecord{
		Status: StatusDraft,
		State:  st,
		Reply:  ReplyStatus{State: ReplyIdle},
	}
}
