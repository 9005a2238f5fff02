package mongodb

import (
	"time"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

// listingDocument is the BSON shape of a listing. Variant payloads are
// embedded as optional sub-documents; exactly one is set, matching category.
type listingDocument struct {
	ID           string              `bson:"_id"`
	Title        string              `bson:"title"`
	Description  string              `bson:"description"`
	Category     string              `bson:"category"`
	Type         string              `bson:"type"`
	OwnerID      string              `bson:"owner_id"`
	Images       []string            `bson:"images"`
	Location     *locationDocument   `bson:"location,omitempty"`
	Pricing      *pricingDocument    `bson:"pricing,omitempty"`
	Availability *dateRangeDocument  `bson:"availability,omitempty"`
	Tags         []string            `bson:"tags"`
	Verified     bool                `bson:"verified"`
	Rating       float64             `bson:"rating"`
	ReviewCount  int                 `bson:"review_count"`
	Status       string              `bson:"status"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
	Place        *placeDocument      `bson:"place,omitempty"`
	People       *peopleDocument     `bson:"people,omitempty"`
	Experience   *experienceDocument `bson:"experience,omitempty"`
}

type locationDocument struct {
	Address   string  `bson:"address"`
	City      string  `bson:"city"`
	Country   string  `bson:"country"`
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

type pricingDocument struct {
	Amount   float64 `bson:"amount"`
	Currency string  `bson:"currency"`
	Period   string  `bson:"period,omitempty"`
}

type dateRangeDocument struct {
	StartDate time.Time `bson:"start_date"`
	EndDate   time.Time `bson:"end_date"`
	Schedule  string    `bson:"schedule,omitempty"`
}

type placeDocument struct {
	Amenities    []string `bson:"amenities"`
	Capacity     int      `bson:"capacity"`
	Rules        []string `bson:"rules,omitempty"`
	CheckInTime  string   `bson:"check_in_time,omitempty"`
	CheckOutTime string   `bson:"check_out_time,omitempty"`
}

type peopleDocument struct {
	Skills         []string `bson:"skills"`
	Experience     string   `bson:"experience"`
	Certifications []string `bson:"certifications,omitempty"`
	Portfolio      []string `bson:"portfolio,omitempty"`
	HourlyRate     *float64 `bson:"hourly_rate,omitempty"`
	Days           []string `bson:"availability_days"`
	Hours          string   `bson:"availability_hours"`
}

type experienceDocument struct {
	Duration     string   `bson:"duration"`
	GroupMin     int      `bson:"group_min"`
	GroupMax     int      `bson:"group_max"`
	Includes     []string `bson:"includes"`
	Requirements []string `bson:"requirements,omitempty"`
	AgeMin       *int     `bson:"age_min,omitempty"`
	AgeMax       *int     `bson:"age_max,omitempty"`
}

func toDocument(l *domain.Listing) *listingDocument {
	doc := &listingDocument{
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
		doc.Location = &locationDocument{
			Address:   l.Location.Address,
			City:      l.Location.City,
			Country:   l.Location.Country,
			Latitude:  l.Location.Latitude,
			Longitude: l.Location.Longitude,
		}
	}
	if l.Pricing != nil {
		doc.Pricing = &pricingDocument{
			Amount:   l.Pricing.Amount,
			Currency: l.Pricing.Currency,
			Period:   string(l.Pricing.Period),
		}
	}
	if l.Availability != nil {
		doc.Availability = &dateRangeDocument{
			StartDate: l.Availability.StartDate,
			EndDate:   l.Availability.EndDate,
			Schedule:  l.Availability.Schedule,
		}
	}
	if l.Place != nil {
		doc.Place = &placeDocument{
			Amenities:    l.Place.Amenities,
			Capacity:     l.Place.Capacity,
			Rules:        l.Place.Rules,
			CheckInTime:  l.Place.CheckInTime,
			CheckOutTime: l.Place.CheckOutTime,
		}
	}
	if l.People != nil {
		doc.People = &peopleDocument{
			Skills:         l.People.Skills,
			Experience:     l.People.Experience,
			Certifications: l.People.Certifications,
			Portfolio:      l.People.Portfolio,
			HourlyRate:     l.People.HourlyRate,
			Days:           l.People.Availability.Days,
			Hours:          l.People.Availability.Hours,
		}
	}
	if l.Experience != nil {
		doc.Experience = &experienceDocument{
			Duration:     l.Experience.Duration,
			GroupMin:     l.Experience.GroupSize.Min,
			GroupMax:     l.Experience.GroupSize.Max,
			Includes:     l.Experience.Includes,
			Requirements: l.Experience.Requirements,
		}
		if l.Experience.AgeRestriction != nil {
			min := l.Experience.AgeRestriction.Min
			doc.Experience.AgeMin = &min
			doc.Experience.AgeMax = l.Experience.AgeRestriction.Max
		}
	}
	return doc
}

func fromDocument(doc *listingDocument) *domain.Listing {
	l := &domain.Listing{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		Category:    domain.Category(doc.Category),
		Type:        domain.ListingType(doc.Type),
		OwnerID:     doc.OwnerID,
		Images:      doc.Images,
		Tags:        doc.Tags,
		Verified:    doc.Verified,
		Rating:      doc.Rating,
		ReviewCount: doc.ReviewCount,
		Status:      domain.ListingStatus(doc.Status),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.Location != nil {
		l.Location = &domain.Location{
			Address:   doc.Location.Address,
			City:      doc.Location.City,
			Country:   doc.Location.Country,
			Latitude:  doc.Location.Latitude,
			Longitude: doc.Location.Longitude,
		}
	}
	if doc.Pricing != nil {
		l.Pricing = &domain.Pricing{
			Amount:   doc.Pricing.Amount,
			Currency: doc.Pricing.Currency,
			Period:   domain.PricingPeriod(doc.Pricing.Period),
		}
	}
	if doc.Availability != nil {
		l.Availability = &domain.DateRange{
			StartDate: doc.Availability.StartDate,
			EndDate:   doc.Availability.EndDate,
			Schedule:  doc.Availability.Schedule,
		}
	}
	if doc.Place != nil {
		l.Place = &domain.PlaceDetails{
			Amenities:    doc.Place.Amenities,
			Capacity:     doc.Place.Capacity,
			Rules:        doc.Place.Rules,
			CheckInTime:  doc.Place.CheckInTime,
			CheckOutTime: doc.Place.CheckOutTime,
		}
	}
	if doc.People != nil {
		l.People = &domain.PeopleDetails{
			Skills:         doc.People.Skills,
			Experience:     doc.People.Experience,
			Certifications: doc.People.Certifications,
			Portfolio:      doc.People.Portfolio,
			HourlyRate:     doc.People.HourlyRate,
			Availability: domain.WeeklyAvailability{
				Days:  doc.People.Days,
				Hours: doc.People.Hours,
			},
		}
	}
	if doc.Experience != nil {
		l.Experience = &domain.ExperienceDetails{
			Duration: doc.Experience.Duration,
			GroupSize: domain.GroupSize{
				Min: doc.Experience.GroupMin,
				Max: doc.Experience.GroupMax,
			},
			Includes:     doc.Experience.Includes,
			Requirements: doc.Experience.Requirements,
		}
		if doc.Experience.AgeMin != nil {
			l.Experience.AgeRestriction = &domain.AgeRestriction{
				Min: *doc.Experience.AgeMin,
				Max: doc.Experience.AgeMax,
			}
		}
	}
	return l
}
