package domain

import "time"

// Category is the top-level classification of a listing. It is fixed for the
// listing's whole lifetime and decides which variant payload is valid.
type Category string

const (
	CategoryPlaces      Category = "places"
	CategoryPeople      Category = "people"
	CategoryExperiences Category = "experiences"
)

// ListingType is the second-level classification within a category.
type ListingType string

const (
	// places
	TypeHostel          ListingType = "hostel"
	TypeHotel           ListingType = "hotel"
	TypeAirbnb          ListingType = "airbnb"
	TypeShortTermRental ListingType = "short_term_rental"
	TypeVenueSpace      ListingType = "venue_space"
	TypeWorkspace       ListingType = "workspace"
	TypeLandmark        ListingType = "landmark"
	TypeAttraction      ListingType = "attraction"
	TypeTicketedVenue   ListingType = "ticketed_venue"

	// people
	TypeTutor        ListingType = "tutor"
	TypeCoach        ListingType = "coach"
	TypeChef         ListingType = "chef"
	TypePhotographer ListingType = "photographer"
	TypeTourGuide    ListingType = "tour_guide"
	TypeTrainer      ListingType = "trainer"
	TypeFreelancer   ListingType = "freelancer"
	TypeInstructor   ListingType = "instructor"

	// experiences
	TypeTour      ListingType = "tour"
	TypeWorkshop  ListingType = "workshop"
	TypeConcert   ListingType = "concert"
	TypeRetreat   ListingType = "retreat"
	TypeAdventure ListingType = "adventure"
	TypeTasting   ListingType = "tasting"
	TypeFestival  ListingType = "festival"
	TypeClass     ListingType = "class"
)

// categoryTypes is the closed set of valid types per category.
var categoryTypes = map[Category]map[ListingType]bool{
	CategoryPlaces: {
		TypeHostel: true, TypeHotel: true, TypeAirbnb: true,
		TypeShortTermRental: true, TypeVenueSpace: true, TypeWorkspace: true,
		TypeLandmark: true, TypeAttraction: true, TypeTicketedVenue: true,
	},
	CategoryPeople: {
		TypeTutor: true, TypeCoach: true, TypeChef: true,
		TypePhotographer: true, TypeTourGuide: true, TypeTrainer: true,
		TypeFreelancer: true, TypeInstructor: true,
	},
	CategoryExperiences: {
		TypeTour: true, TypeWorkshop: true, TypeConcert: true,
		TypeRetreat: true, TypeAdventure: true, TypeTasting: true,
		TypeFestival: true, TypeClass: true,
	},
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	_, ok := categoryTypes[c]
	return ok
}

// ValidTypeForCategory reports whether t belongs to category c's type set.
func ValidTypeForCategory(c Category, t ListingType) bool {
	return categoryTypes[c][t]
}

// TypesForCategory returns the valid type values for a category.
// The order is unspecified.
func TypesForCategory(c Category) []ListingType {
	types := make([]ListingType, 0, len(categoryTypes[c]))
	for t := range categoryTypes[c] {
		types = append(types, t)
	}
	return types
}

type ListingStatus string

const (
	StatusPending   ListingStatus = "pending"
	StatusActive    ListingStatus = "active"
	StatusInactive  ListingStatus = "inactive"
	StatusSuspended ListingStatus = "suspended"
)

func ValidStatus(s ListingStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type PricingPeriod string

const (
	PeriodHourly  PricingPeriod = "hourly"
	PeriodDaily   PricingPeriod = "daily"
	PeriodWeekly  PricingPeriod = "weekly"
	PeriodMonthly PricingPeriod = "monthly"
)

func ValidPricingPeriod(p PricingPeriod) bool {
	switch p {
	case PeriodHourly, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

type Location struct {
	Address   string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

type Pricing struct {
	Amount   float64
	Currency string
	Period   PricingPeriod // optional, empty means one-off pricing
}

// DateRange is the availability shape for Places and Experiences: a date
// window plus a free-text schedule description.
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
	Schedule  string
}

// WeeklyAvailability is the availability shape for People listings and is
// mandatory for that variant.
type WeeklyAvailability struct {
	Days  []string
	Hours string
}

type GroupSize struct {
	Min int
	Max int
}

type AgeRestriction struct {
	Min int
	Max *int
}

// PlaceDetails holds the fields specific to the places category.
type PlaceDetails struct {
	Amenities    []string
	Capacity     int
	Rules        []string
	CheckInTime  string
	CheckOutTime string
}

// PeopleDetails holds the fields specific to the people category.
type PeopleDetails struct {
	Skills         []string
	Experience     string
	Certifications []string
	Portfolio      []string
	HourlyRate     *float64
	Availability   WeeklyAvailability
}

// ExperienceDetails holds the fields specific to the experiences category.
type ExperienceDetails struct {
	Duration       string
	GroupSize      GroupSize
	Includes       []string
	Requirements   []string
	AgeRestriction *AgeRestriction
}

// Listing is one catalog entry. Exactly one of Place, People or Experience is
// non-nil, matching Category; construction and updates go through NewListing
// and ApplyUpdate which enforce that.
type Listing struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Type        ListingType
	OwnerID     string
	Images      []string
	Location    *Location
	Pricing     *Pricing
	// Availability is the Places/Experiences date-range form. People
	// listings carry their mandatory weekly form inside PeopleDetails.
	Availability *DateRange
	Tags         []string
	Verified     bool
	Rating       float64
	ReviewCount  int
	Status       ListingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Place      *PlaceDetails
	People     *PeopleDetails
	Experience *ExperienceDetails
}

// HasTag reports whether the listing carries the given tag.
func (l *Listing) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the listing so callers can never mutate
// stored state through a returned value.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	c := *l
	c.Images = append([]string(nil), l.Images...)
	c.Tags = append([]string(nil), l.Tags...)
	if l.Location != nil {
		loc := *l.Location
		c.Location = &loc
	}
	if l.Pricing != nil {
		p := *l.Pricing
		c.Pricing = &p
	}
	if l.Availability != nil {
		a := *l.Availability
		c.Availability = &a
	}
	if l.Place != nil {
		pd := *l.Place
		pd.Amenities = append([]string(nil), l.Place.Amenities...)
		pd.Rules = append([]string(nil), l.Place.Rules...)
		c.Place = &pd
	}
	if l.People != nil {
		pd := *l.People
		pd.Skills = append([]string(nil), l.People.Skills...)
		pd.Certifications = append([]string(nil), l.People.Certifications...)
		pd.Portfolio = append([]string(nil), l.People.Portfolio...)
		pd.Availability.Days = append([]string(nil), l.People.Availability.Days...)
		if l.People.HourlyRate != nil {
			r := *l.People.HourlyRate
			pd.HourlyRate = &r
		}
		c.People = &pd
	}
	if l.Experience != nil {
		ed := *l.Experience
		ed.Includes = append([]string(nil), l.Experience.Includes...)
		ed.Requirements = append([]string(nil), l.Experience.Requirements...)
		if l.Experience.AgeRestriction != nil {
			ar := *l.Experience.AgeRestriction
			if l.Experience.AgeRestriction.Max != nil {
				m := *l.Experience.AgeRestriction.Max
				ar.Max = &m
			}
			ed.AgeRestriction = &ar
		}
		c.Experience = &ed
	}
	return &c
}
