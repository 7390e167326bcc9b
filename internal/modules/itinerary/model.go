// README: Trip request/response contract shared by the validator, the prompt and the HTTP layer.
package itinerary

import "encoding/json"

// Default accommodation coordinates used when the caller leaves them out.
const (
	DefaultLatitude  = 35.16
	DefaultLongitude = 129.1636
)

type MainMode string

const (
	MainModeOwnCar          MainMode = "own_car"
	MainModeRentalCar       MainMode = "rental_car"
	MainModePublicTransport MainMode = "public_transport"
)

// MainModes lists every accepted transportation.main_mode in declaration order.
var MainModes = []MainMode{MainModeOwnCar, MainModeRentalCar, MainModePublicTransport}

type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PacePacked  Pace = "packed"
)

var Paces = []Pace{PaceRelaxed, PacePacked}

type Atmosphere string

const (
	AtmosphereQuiet   Atmosphere = "quiet"
	AtmosphereCrowded Atmosphere = "crowded"
)

var Atmospheres = []Atmosphere{AtmosphereQuiet, AtmosphereCrowded}

type Walking string

const (
	WalkingDislike Walking = "dislike"
	WalkingNeutral Walking = "neutral"
	WalkingLike    Walking = "like"
)

var WalkingPrefs = []Walking{WalkingDislike, WalkingNeutral, WalkingLike}

type ItemType string

const (
	ItemAccommodation ItemType = "accommodation"
	ItemCafe          ItemType = "cafe"
	ItemFood          ItemType = "food"
	ItemActivity      ItemType = "activity"
	ItemTravel        ItemType = "travel"
	ItemEtc           ItemType = "etc"
	ItemShopping      ItemType = "shopping"
	ItemSightseeing   ItemType = "sightseeing"
)

// ItemTypes is the closed set for ScheduleItem.Type. The validator and the
// prompt both read it; nothing else may spell these values out.
var ItemTypes = []ItemType{
	ItemAccommodation,
	ItemCafe,
	ItemFood,
	ItemActivity,
	ItemTravel,
	ItemEtc,
	ItemShopping,
	ItemSightseeing,
}

type Accommodation struct {
	AddressName string  `json:"address_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// defaulted is set when the caller omitted either coordinate.
	defaulted bool
}

// CoordinatesDefaulted reports whether Latitude/Longitude were filled from the defaults.
func (a Accommodation) CoordinatesDefaulted() bool {
	return a.defaulted
}

type Transportation struct {
	MainMode    MainMode `json:"main_mode"`
	Preferences []string `json:"preferences"`
}

type Style struct {
	Pace             Pace       `json:"pace"`
	Atmosphere       Atmosphere `json:"atmosphere"`
	Walking          Walking    `json:"walking"`
	Interests        []string   `json:"interests"`
	FoodRestrictions []string   `json:"food_restrictions"`
}

// TripRequest is the caller's travel preferences. Build it with ValidateRequest.
type TripRequest struct {
	Destination    string         `json:"destination"`
	DurationDays   int            `json:"duration_days"`
	PartySize      int            `json:"party_size"`
	Accommodation  Accommodation  `json:"accommodation"`
	BudgetKRW      int64          `json:"budget_krw"`
	Transportation Transportation `json:"transportation"`
	Style          Style          `json:"style"`
}

// WithCoordinates returns a copy of r whose accommodation sits at lat/lng.
func (r TripRequest) WithCoordinates(lat, lng float64) TripRequest {
	r.Accommodation.Latitude = lat
	r.Accommodation.Longitude = lng
	r.Accommodation.defaulted = false
	return r
}

type Location struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ScheduleItem struct {
	Time        string   `json:"time"`
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	CostKRW     int64    `json:"cost_krw"`
}

type DailyPlan struct {
	Day      int            `json:"day"`
	Theme    string         `json:"theme"`
	Schedule []ScheduleItem `json:"schedule"`
}

// MarshalJSON writes a nil Schedule as [] so the output always validates.
func (d DailyPlan) MarshalJSON() ([]byte, error) {
	type wire DailyPlan
	if d.Schedule == nil {
		d.Schedule = []ScheduleItem{}
	}
	return json.Marshal(wire(d))
}

// TripResponse is a generated itinerary that passed ValidateResponse.
type TripResponse struct {
	TripTitle      string      `json:"trip_title"`
	OverallSummary string      `json:"overall_summary"`
	Plan           []DailyPlan `json:"plan"`
}

// MarshalJSON writes a nil Plan as [].
func (r TripResponse) MarshalJSON() ([]byte, error) {
	type wire TripResponse
	if r.Plan == nil {
		r.Plan = []DailyPlan{}
	}
	return json.Marshal(wire(r))
}

func isMainMode(v string) bool {
	for _, m := range MainModes {
		if string(m) == v {
			return true
		}
	}
	return false
}

func isPace(v string) bool {
	for _, p := range Paces {
		if string(p) == v {
			return true
		}
	}
	return false
}

func isAtmosphere(v string) bool {
	for _, a := range Atmospheres {
		if string(a) == v {
			return true
		}
	}
	return false
}

func isWalking(v string) bool {
	for _, w := range WalkingPrefs {
		if string(w) == v {
			return true
		}
	}
	return false
}

func isItemType(v string) bool {
	for _, t := range ItemTypes {
		if string(t) == v {
			return true
		}
	}
	return false
}

func joinValues[T ~string](values []T) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += string(v)
	}
	return out
}
