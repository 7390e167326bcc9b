// README: Contract enforcement for both directions of the plan API (request in, itinerary out).
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const rootField = "(root)"

// Wire shapes use pointers so a missing key can be told apart from a zero value.

// maxExactFloat is the largest magnitude a float64 holds without losing integer precision.
const maxExactFloat = 1 << 53

// wholeNumber is an integer field that also takes integral floats such as 2.0.
// Models often emit those; strings and fractional values are still rejected.
type wholeNumber int64

func (n *wholeNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || b[0] == '"' {
		return wholeNumberError(b)
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return wholeNumberError(b)
	}
	if i, err := num.Int64(); err == nil {
		*n = wholeNumber(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return wholeNumberError(b)
	}
	*n = wholeNumber(f)
	return nil
}

// wholeNumberError is a type error so encoding/json fills in the field path.
func wholeNumberError(b []byte) error {
	return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(int64(0))}
}

type accommodationWire struct {
	AddressName *string  `json:"address_name" validate:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type transportationWire struct {
	MainMode    *string  `json:"main_mode" validate:"required,mainmode"`
	Preferences []string `json:"preferences" validate:"required"`
}

type styleWire struct {
	Pace             *string  `json:"pace" validate:"required,pace"`
	Atmosphere       *string  `json:"atmosphere" validate:"required,atmosphere"`
	Walking          *string  `json:"walking" validate:"required,walking"`
	Interests        []string `json:"interests" validate:"required"`
	FoodRestrictions []string `json:"food_restrictions" validate:"required"`
}

type tripRequestWire struct {
	Destination    *string             `json:"destination" validate:"required"`
	DurationDays   *wholeNumber        `json:"duration_days" validate:"required,gt=0"`
	PartySize      *wholeNumber        `json:"party_size" validate:"required,gt=0"`
	Accommodation  *accommodationWire  `json:"accommodation" validate:"required"`
	BudgetKRW      *wholeNumber        `json:"budget_krw" validate:"required,gte=0"`
	Transportation *transportationWire `json:"transportation" validate:"required"`
	Style          *styleWire          `json:"style" validate:"required"`
}

type locationWire struct {
	Name      *string  `json:"name" validate:"required"`
	Address   *string  `json:"address" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type scheduleItemWire struct {
	Time        *string       `json:"time" validate:"required"`
	Type        *string       `json:"type" validate:"required,itemtype"`
	Title       *string       `json:"title" validate:"required"`
	Description *string       `json:"description" validate:"required"`
	Location    *locationWire `json:"location" validate:"required"`
	CostKRW     *wholeNumber  `json:"cost_krw" validate:"omitempty,gte=0"`
}

type dailyPlanWire struct {
	Day      *wholeNumber       `json:"day" validate:"required,gte=1"`
	Theme    *string            `json:"theme" validate:"required"`
	Schedule []scheduleItemWire `json:"schedule" validate:"required,dive"`
}

type tripResponseWire struct {
	TripTitle      *string         `json:"trip_title" validate:"required"`
	OverallSummary *string         `json:"overall_summary" validate:"required"`
	Plan           []dailyPlanWire `json:"plan" validate:"required,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "mainmode", isMainMode)
	mustRegister(v, "pace", isPace)
	mustRegister(v, "atmosphere", isAtmosphere)
	mustRegister(v, "walking", isWalking)
	mustRegister(v, "itemtype", isItemType)
	return v
}

func mustRegister(v *validator.Validate, tag string, member func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return member(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidateRequest decodes and checks a caller-supplied TripRequest.
// Every violation is reported; nothing is partially accepted.
func ValidateRequest(raw []byte) (TripRequest, error) {
	var w tripRequestWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return TripRequest{}, &RequestValidationError{Violations: []Violation{decodeViolation(err, "body")}}
	}
	if err := validate.Struct(w); err != nil {
		return TripRequest{}, &RequestValidationError{Violations: violationsFrom(err)}
	}

	acc := Accommodation{
		AddressName: *w.Accommodation.AddressName,
		Latitude:    DefaultLatitude,
		Longitude:   DefaultLongitude,
	}
	if w.Accommodation.Latitude != nil {
		acc.Latitude = *w.Accommodation.Latitude
	}
	if w.Accommodation.Longitude != nil {
		acc.Longitude = *w.Accommodation.Longitude
	}
	acc.defaulted = w.Accommodation.Latitude == nil || w.Accommodation.Longitude == nil

	return TripRequest{
		Destination:   *w.Destination,
		DurationDays:  int(*w.DurationDays),
		PartySize:     int(*w.PartySize),
		Accommodation: acc,
		BudgetKRW:     int64(*w.BudgetKRW),
		Transportation: Transportation{
			MainMode:    MainMode(*w.Transportation.MainMode),
			Preferences: w.Transportation.Preferences,
		},
		Style: Style{
			Pace:             Pace(*w.Style.Pace),
			Atmosphere:       Atmosphere(*w.Style.Atmosphere),
			Walking:          Walking(*w.Style.Walking),
			Interests:        w.Style.Interests,
			FoodRestrictions: w.Style.FoodRestrictions,
		},
	}, nil
}

// ValidateResponse checks an already-parsed JSON document against the itinerary schema.
// Wrong enum values, missing fields and wrong types all reject the whole document.
func ValidateResponse(raw []byte) (TripResponse, error) {
	var w tripResponseWire
	if err := json.Unmarshal(raw, &w); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return TripResponse{}, &ResponseParseError{Raw: string(raw), Err: err}
		}
		return TripResponse{}, &ResponseValidationError{
			Raw:        string(raw),
			Violations: []Violation{decodeViolation(err, rootField)},
		}
	}
	if err := validate.Struct(w); err != nil {
		return TripResponse{}, &ResponseValidationError{Raw: string(raw), Violations: violationsFrom(err)}
	}

	plan := make([]DailyPlan, 0, len(w.Plan))
	for _, d := range w.Plan {
		schedule := make([]ScheduleItem, 0, len(d.Schedule))
		for _, it := range d.Schedule {
			var cost int64
			if it.CostKRW != nil {
				cost = int64(*it.CostKRW)
			}
			schedule = append(schedule, ScheduleItem{
				Time:        *it.Time,
				Type:        ItemType(*it.Type),
				Title:       *it.Title,
				Description: *it.Description,
				Location: Location{
					Name:      *it.Location.Name,
					Address:   *it.Location.Address,
					Latitude:  *it.Location.Latitude,
					Longitude: *it.Location.Longitude,
				},
				CostKRW: cost,
			})
		}
		plan = append(plan, DailyPlan{Day: int(*d.Day), Theme: *d.Theme, Schedule: schedule})
	}

	return TripResponse{
		TripTitle:      *w.TripTitle,
		OverallSummary: *w.OverallSummary,
		Plan:           plan,
	}, nil
}

// CheckConsistency applies the cross-field rules enabled by strict mode:
// one non-empty day per requested day, numbered 1..N in order.
func CheckConsistency(req TripRequest, resp TripResponse) []Violation {
	var out []Violation
	if len(resp.Plan) != req.DurationDays {
		out = append(out, Violation{
			Field:   "plan",
			Message: fmt.Sprintf("has %d days, want %d", len(resp.Plan), req.DurationDays),
		})
	}
	for i, d := range resp.Plan {
		if d.Day != i+1 {
			out = append(out, Violation{
				Field:   fmt.Sprintf("plan[%d].day", i),
				Message: fmt.Sprintf("is %d, want %d", d.Day, i+1),
			})
		}
		if len(d.Schedule) == 0 {
			out = append(out, Violation{Field: fmt.Sprintf("plan[%d].schedule", i), Message: "must not be empty"})
		}
	}
	return out
}

func decodeViolation(err error, fallbackField string) Violation {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = rootField
		}
		return Violation{Field: field, Message: "must be " + describeKind(typeErr.Type)}
	}
	return Violation{Field: fallbackField, Message: "is not valid JSON: " + err.Error()}
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func violationsFrom(err error) []Violation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: rootField, Message: err.Error()}}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fieldPath(fe.Namespace()), Message: ruleMessage(fe)})
	}
	return out
}

// fieldPath drops the wire struct name validator puts in front of every namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "mainmode":
		return "must be one of: " + joinValues(MainModes)
	case "pace":
		return "must be one of: " + joinValues(Paces)
	case "atmosphere":
		return "must be one of: " + joinValues(Atmospheres)
	case "walking":
		return "must be one of: " + joinValues(WalkingPrefs)
	case "itemtype":
		return "must be one of: " + joinValues(ItemTypes)
	default:
		return "failed " + fe.Tag()
	}
}
