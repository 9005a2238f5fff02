package http

import (
	"time"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

type locationDTO struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type pricingDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Period   string  `json:"period,omitempty"`
}

type dateRangeDTO struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Schedule  string    `json:"schedule,omitempty"`
}

type weeklyAvailabilityDTO struct {
	Days  []string `json:"days"`
	Hours string   `json:"hours"`
}

type groupSizeDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ageRestrictionDTO struct {
	Min int  `json:"min"`
	Max *int `json:"max,omitempty"`
}

type placeDetailsDTO struct {
	Amenities    []string `json:"amenities"`
	Capacity     int      `json:"capacity"`
	Rules        []string `json:"rules,omitempty"`
	CheckInTime  string   `json:"checkInTime,omitempty"`
	CheckOutTime string   `json:"checkOutTime,omitempty"`
}

type peopleDetailsDTO struct {
	Skills         []string               `json:"skills"`
	Experience     string                 `json:"experience"`
	Certifications []string               `json:"certifications,omitempty"`
	Portfolio      []string               `json:"portfolio,omitempty"`
	HourlyRate     *float64               `json:"hourlyRate,omitempty"`
	Availability   *weeklyAvailabilityDTO `json:"availability"`
}

type experienceDetailsDTO struct {
	Duration       string             `json:"duration"`
	GroupSize      groupSizeDTO       `json:"groupSize"`
	Includes       []string           `json:"includes"`
	Requirements   []string           `json:"requirements,omitempty"`
	AgeRestriction *ageRestrictionDTO `json:"ageRestriction,omitempty"`
}

type createListingRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Type         string                `json:"type"`
	Images       []string              `json:"images"`
	Location     *locationDTO          `json:"location,omitempty"`
	Pricing      *pricingDTO           `json:"pricing,omitempty"`
	Availability *dateRangeDTO         `json:"availability,omitempty"`
	Tags         []string              `json:"tags"`
	Rating       float64               `json:"rating"`
	ReviewCount  int                   `json:"reviewCount"`
	Place        *placeDetailsDTO      `json:"place,omitempty"`
	People       *peopleDetailsDTO     `json:"people,omitempty"`
	Experience   *experienceDetailsDTO `json:"experience,omitempty"`
}

func (r *createListingRequest) toInput(ownerID string) domain.CreateInput {
	return domain.CreateInput{
		Title:        r.Title,
		Description:  r.Description,
		Category:     domain.Category(r.Category),
		Type:         domain.ListingType(r.Type),
		OwnerID:      ownerID,
		Images:       r.Images,
		Location:     toLocation(r.Location),
		Pricing:      toPricing(r.Pricing),
		Availability: toDateRange(r.Availability),
		Tags:         r.Tags,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		Place:        toPlaceDetails(r.Place),
		People:       toPeopleDetails(r.People),
		Experience:   toExperienceDetails(r.Experience),
	}
}

type updateListingRequest struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Type         *string               `json:"type,omitempty"`
	Images       []string              `json:"images,omitempty"`
	Location     *locationDTO          `json:"location,omitempty"`
	Pricing      *pricingDTO           `json:"pricing,omitempty"`
	Availability *dateRangeDTO         `json:"availability,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
	Rating       *float64              `json:"rating,omitempty"`
	ReviewCount  *int                  `json:"reviewCount,omitempty"`
	Status       *string               `json:"status,omitempty"`
	Place        *placeDetailsDTO      `json:"place,omitempty"`
	People       *peopleDetailsDTO     `json:"people,omitempty"`
	Experience   *experienceDetailsDTO `json:"experience,omitempty"`
}

func (r *updateListingRequest) toPatch() domain.UpdatePatch {
	patch := domain.UpdatePatch{
		Title:        r.Title,
		Description:  r.Description,
		Images:       r.Images,
		Location:     toLocation(r.Location),
		Pricing:      toPricing(r.Pricing),
		Availability: toDateRange(r.Availability),
		Tags:         r.Tags,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		Place:        toPlaceDetails(r.Place),
		People:       toPeopleDetails(r.People),
		Experience:   toExperienceDetails(r.Experience),
	}
	if r.Type != nil {
		t := domain.ListingType(*r.Type)
		patch.Type = &t
	}
	if r.Status != nil {
		s := domain.ListingStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

type listingResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Type         string                `json:"type"`
	OwnerID      string                `json:"ownerId"`
	Images       []string              `json:"images"`
	Location     *locationDTO          `json:"location,omitempty"`
	Pricing      *pricingDTO           `json:"pricing,omitempty"`
	Availability *dateRangeDTO         `json:"availability,omitempty"`
	Tags         []string              `json:"tags"`
	Verified     bool                  `json:"verified"`
	Rating       float64               `json:"rating"`
	ReviewCount  int                   `json:"reviewCount"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Place        *placeDetailsDTO      `json:"place,omitempty"`
	People       *peopleDetailsDTO     `json:"people,omitempty"`
	Experience   *experienceDetailsDTO `json:"experience,omitempty"`
}

func toListingResponse(l *domain.Listing) *listingResponse {
	if l == nil {
		return nil
	}
	resp := &listingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    string(l.Category),
		Type:        string(l.Type),
		OwnerID:     l.OwnerID,
		Images:      l.Images,
		Tags:        l.Tags,
		Verified:    l.Verified,
		Rating:      l.Rating,
		ReviewCount: l.ReviewCount,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Location != nil {
		resp.Location = &locationDTO{
			Address: l.Location.Address, City: l.Location.City, Country: l.Location.Country,
			Latitude: l.Location.Latitude, Longitude: l.Location.Longitude,
		}
	}
	if l.Pricing != nil {
		resp.Pricing = &pricingDTO{Amount: l.Pricing.Amount, Currency: l.Pricing.Currency, Period: string(l.Pricing.Period)}
	}
	if l.Availability != nil {
		resp.Availability = &dateRangeDTO{StartDate: l.Availability.StartDate, EndDate: l.Availability.EndDate, Schedule: l.Availability.Schedule}
	}
	if l.Place != nil {
		resp.Place = &placeDetailsDTO{
			Amenities: l.Place.Amenities, Capacity: l.Place.Capacity, Rules: l.Place.Rules,
			CheckInTime: l.Place.CheckInTime, CheckOutTime: l.Place.CheckOutTime,
		}
	}
	if l.People != nil {
		resp.People = &peopleDetailsDTO{
			Skills: l.People.Skills, Experience: l.People.Experience,
			Certifications: l.People.Certifications, Portfolio: l.People.Portfolio,
			HourlyRate: l.People.HourlyRate,
			Availability: &weeklyAvailabilityDTO{
				Days: l.People.Availability.Days, Hours: l.People.Availability.Hours,
			},
		}
	}
	if l.Experience != nil {
		resp.Experience = &experienceDetailsDTO{
			Duration:     l.Experience.Duration,
			GroupSize:    groupSizeDTO{Min: l.Experience.GroupSize.Min, Max: l.Experience.GroupSize.Max},
			Includes:     l.Experience.Includes,
			Requirements: l.Experience.Requirements,
		}
		if l.Experience.AgeRestriction != nil {
			resp.Experience.AgeRestriction = &ageRestrictionDTO{
				Min: l.Experience.AgeRestriction.Min,
				Max: l.Experience.AgeRestriction.Max,
			}
		}
	}
	return resp
}

func toListingResponses(listings []*domain.Listing) []*listingResponse {
	out := make([]*listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toLocation(d *locationDTO) *domain.Location {
	if d == nil {
		return nil
	}
	return &domain.Location{
		Address: d.Address, City: d.City, Country: d.Country,
		Latitude: d.Latitude, Longitude: d.Longitude,
	}
}

func toPricing(d *pricingDTO) *domain.Pricing {
	if d == nil {
		return nil
	}
	return &domain.Pricing{Amount: d.Amount, Currency: d.Currency, Period: domain.PricingPeriod(d.Period)}
}

func toDateRange(d *dateRangeDTO) *domain.DateRange {
	if d == nil {
		return nil
	}
	return &domain.DateRange{StartDate: d.StartDate, EndDate: d.EndDate, Schedule: d.Schedule}
}

func toPlaceDetails(d *placeDetailsDTO) *domain.PlaceDetails {
	if d == nil {
		return nil
	}
	return &domain.PlaceDetails{
		Amenities: d.Amenities, Capacity: d.Capacity, Rules: d.Rules,
		CheckInTime: d.CheckInTime, CheckOutTime: d.CheckOutTime,
	}
}

func toPeopleDetails(d *peopleDetailsDTO) *domain.PeopleDetails {
	if d == nil {
		return nil
	}
	pd := &domain.PeopleDetails{
		Skills: d.Skills, Experience: d.Experience,
		Certifications: d.Certifications, Portfolio: d.Portfolio,
		HourlyRate: d.HourlyRate,
	}
	if d.Availability != nil {
		pd.Availability = domain.WeeklyAvailability{Days: d.Availability.Days, Hours: d.Availability.Hours}
	}
	return pd
}

func toExperienceDetails(d *experienceDetailsDTO) *domain.ExperienceDetails {
	if d == nil {
		return nil
	}
	ed := &domain.ExperienceDetails{
		Duration:     d.Duration,
		GroupSize:    domain.GroupSize{Min: d.GroupSize.Min, Max: d.GroupSize.Max},
		Includes:     d.Includes,
		Requirements: d.Requirements,
	}
	if d.AgeRestriction != nil {
		ed.AgeRestriction = &domain.AgeRestriction{Min: d.AgeRestriction.Min, Max: d.AgeRestriction.Max}
	}
	return ed
}
