package domain

import "time"

// CreateInput is the caller-supplied payload for a new listing. Identity,
// timestamps, status and the verified flag are assigned by the catalog, never
// by the caller.
type CreateInput struct {
	Title        string
	Description  string
	Category     Category
	Type         ListingType
	OwnerID      string
	Images       []string
	Location     *Location
	Pricing      *Pricing
	Availability *DateRange
	Tags         []string
	Rating       float64
	ReviewCount  int

	Place      *PlaceDetails
	People     *PeopleDetails
	Experience *ExperienceDetails
}

// NewListing validates the input and assembles a well-formed listing value.
// It is a pure function: no identity, no clock, no side effects. The returned
// listing has Status pending and Verified false; ID and timestamps are left
// for the store to assign.
func NewListing(in CreateInput) (*Listing, error) {
	if in.Title == "" {
		return nil, newValidationError("title", "title is required")
	}
	if in.OwnerID == "" {
		return nil, newValidationError("ownerId", "ownerId is required")
	}
	if !ValidCategory(in.Category) {
		return nil, newValidationError("category", "unknown category %q", in.Category)
	}
	if !ValidTypeForCategory(in.Category, in.Type) {
		return nil, newValidationError("type", "type %q is not valid for category %q", in.Type, in.Category)
	}
	if err := validatePricing(in.Pricing); err != nil {
		return nil, err
	}
	if in.Rating < 0 {
		return nil, newValidationError("rating", "rating must not be negative")
	}
	if in.ReviewCount < 0 {
		return nil, newValidationError("reviewCount", "reviewCount must not be negative")
	}
	if err := validateDetails(in.Category, in.Place, in.People, in.Experience); err != nil {
		return nil, err
	}

	l := &Listing{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Type:         in.Type,
		OwnerID:      in.OwnerID,
		Images:       append([]string(nil), in.Images...),
		Location:     in.Location,
		Pricing:      in.Pricing,
		Availability: in.Availability,
		Tags:         append([]string(nil), in.Tags...),
		Rating:       in.Rating,
		ReviewCount:  in.ReviewCount,
		Verified:     false,
		Status:       StatusPending,
		Place:        in.Place,
		People:       in.People,
		Experience:   in.Experience,
	}
	return l.Clone(), nil
}

// UpdatePatch is a partial update. Nil fields are left untouched. There is
// deliberately no Category, ID, CreatedAt or Verified field here: those are
// immutable to callers (verification owns the verified flag).
type UpdatePatch struct {
	Title        *string
	Description  *string
	Type         *ListingType
	Images       []string
	Location     *Location
	Pricing      *Pricing
	Availability *DateRange
	Tags         []string
	Rating       *float64
	ReviewCount  *int
	Status       *ListingStatus

	Place      *PlaceDetails
	People     *PeopleDetails
	Experience *ExperienceDetails
}

// ApplyUpdate validates the patch against the listing's fixed category and
// merges it in place. It never touches ID, Category, CreatedAt, Verified or
// UpdatedAt; the store refreshes UpdatedAt after a successful merge. On
// validation failure the listing is left unchanged.
func (l *Listing) ApplyUpdate(patch UpdatePatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return newValidationError("title", "title must not be empty")
	}
	if patch.Type != nil && !ValidTypeForCategory(l.Category, *patch.Type) {
		return newValidationError("type", "type %q is not valid for category %q", *patch.Type, l.Category)
	}
	if err := validatePricing(patch.Pricing); err != nil {
		return err
	}
	if patch.Rating != nil && *patch.Rating < 0 {
		return newValidationError("rating", "rating must not be negative")
	}
	if patch.ReviewCount != nil && *patch.ReviewCount < 0 {
		return newValidationError("reviewCount", "reviewCount must not be negative")
	}
	if patch.Status != nil {
		if !ValidStatus(*patch.Status) {
			return newValidationError("status", "unknown status %q", *patch.Status)
		}
		if l.Verified && *patch.Status == StatusPending {
			return newValidationError("status", "a verified listing cannot return to pending")
		}
	}

	// Variant payloads replace wholesale and must match the fixed category.
	place, people, experience := l.Place, l.People, l.Experience
	if patch.Place != nil {
		place = patch.Place
	}
	if patch.People != nil {
		people = patch.People
	}
	if patch.Experience != nil {
		experience = patch.Experience
	}
	if err := validateDetails(l.Category, place, people, experience); err != nil {
		return err
	}

	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.Type != nil {
		l.Type = *patch.Type
	}
	if patch.Images != nil {
		l.Images = append([]string(nil), patch.Images...)
	}
	if patch.Location != nil {
		l.Location = patch.Location
	}
	if patch.Pricing != nil {
		l.Pricing = patch.Pricing
	}
	if patch.Availability != nil {
		l.Availability = patch.Availability
	}
	if patch.Tags != nil {
		l.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Rating != nil {
		l.Rating = *patch.Rating
	}
	if patch.ReviewCount != nil {
		l.ReviewCount = *patch.ReviewCount
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	l.Place, l.People, l.Experience = place, people, experience
	return nil
}

func validatePricing(p *Pricing) error {
	if p == nil {
		return nil
	}
	if p.Amount < 0 {
		return newValidationError("pricing.amount", "amount must not be negative")
	}
	if p.Currency == "" {
		return newValidationError("pricing.currency", "currency is required when pricing is set")
	}
	if p.Period != "" && !ValidPricingPeriod(p.Period) {
		return newValidationError("pricing.period", "unknown billing period %q", p.Period)
	}
	return nil
}

// validateDetails checks that exactly the variant payload matching the
// category is present and internally consistent.
func validateDetails(c Category, place *PlaceDetails, people *PeopleDetails, experience *ExperienceDetails) error {
	switch c {
	case CategoryPlaces:
		if people != nil || experience != nil {
			return newValidationError("details", "category %q accepts only place details", c)
		}
		if place == nil {
			return newValidationError("place", "place details are required for category %q", c)
		}
		if place.Capacity < 0 {
			return newValidationError("place.capacity", "capacity must not be negative")
		}
	case CategoryPeople:
		if place != nil || experience != nil {
			return newValidationError("details", "category %q accepts only people details", c)
		}
		if people == nil {
			return newValidationError("people", "people details are required for category %q", c)
		}
		if len(people.Availability.Days) == 0 || people.Availability.Hours == "" {
			return newValidationError("people.availability", "availability (days and hours) is mandatory for people listings")
		}
		if people.HourlyRate != nil && *people.HourlyRate < 0 {
			return newValidationError("people.hourlyRate", "hourlyRate must not be negative")
		}
	case CategoryExperiences:
		if place != nil || people != nil {
			return newValidationError("details", "category %q accepts only experience details", c)
		}
		if experience == nil {
			return newValidationError("experience", "experience details are required for category %q", c)
		}
		if experience.Duration == "" {
			return newValidationError("experience.duration", "duration is required")
		}
		if experience.GroupSize.Min < 1 || experience.GroupSize.Max < experience.GroupSize.Min {
			return newValidationError("experience.groupSize", "group size must satisfy 1 <= min <= max")
		}
		if ar := experience.AgeRestriction; ar != nil {
			if ar.Min < 0 {
				return newValidationError("experience.ageRestriction", "minimum age must not be negative")
			}
			if ar.Max != nil && *ar.Max < ar.Min {
				return newValidationError("experience.ageRestriction", "maximum age must not be below minimum age")
			}
		}
	default:
		return newValidationError("category", "unknown category %q", c)
	}
	return nil
}

// Touch refreshes UpdatedAt, keeping it strictly ahead of its previous value
// even on coarse clocks so createdAt <= updatedAt ordering stays observable.
func (l *Listing) Touch(now time.Time) {
	if !now.After(l.UpdatedAt) {
		now = l.UpdatedAt.Add(time.Nanosecond)
	}
	l.UpdatedAt = now
}
