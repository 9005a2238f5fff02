package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlaceInput() CreateInput {
	return CreateInput{
		Title:    "Dublin City Hostel",
		Category: CategoryPlaces,
		Type:     TypeHostel,
		OwnerID:  "owner-1",
		Place:    &PlaceDetails{Amenities: []string{"wifi"}, Capacity: 20},
	}
}

func validPeopleInput() CreateInput {
	return CreateInput{
		Title:    "Portrait Photographer",
		Category: CategoryPeople,
		Type:     TypePhotographer,
		OwnerID:  "owner-2",
		People: &PeopleDetails{
			Skills:       []string{"portrait"},
			Experience:   "5 years",
			Availability: WeeklyAvailability{Days: []string{"mon", "wed"}, Hours: "09:00-17:00"},
		},
	}
}

func validExperienceInput() CreateInput {
	return CreateInput{
		Title:    "Whiskey Tasting",
		Category: CategoryExperiences,
		Type:     TypeTasting,
		OwnerID:  "owner-3",
		Experience: &ExperienceDetails{
			Duration:  "2 hours",
			GroupSize: GroupSize{Min: 2, Max: 12},
			Includes:  []string{"three drams"},
		},
	}
}

func TestNewListing_Defaults(t *testing.T) {
	l, err := NewListing(validPlaceInput())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, l.Status)
	assert.False(t, l.Verified)
	assert.Empty(t, l.ID, "identity is assigned by the store, not the type model")
	assert.True(t, l.CreatedAt.IsZero())
}

func TestNewListing_EveryTypeOfCorrectCategorySucceeds(t *testing.T) {
	for _, c := range []Category{CategoryPlaces, CategoryPeople, CategoryExperiences} {
		for _, typ := range TypesForCategory(c) {
			var in CreateInput
			switch c {
			case CategoryPlaces:
				in = validPlaceInput()
			case CategoryPeople:
				in = validPeopleInput()
			case CategoryExperiences:
				in = validExperienceInput()
			}
			in.Type = typ
			_, err := NewListing(in)
			assert.NoError(t, err, "category %s type %s", c, typ)
		}
	}
}

func TestNewListing_TypeFromOtherCategoryFails(t *testing.T) {
	cases := []struct {
		name string
		in   CreateInput
		typ  ListingType
	}{
		{"people type on places", validPlaceInput(), TypeChef},
		{"experience type on places", validPlaceInput(), TypeTour},
		{"place type on people", validPeopleInput(), TypeHotel},
		{"experience type on people", validPeopleInput(), TypeWorkshop},
		{"place type on experiences", validExperienceInput(), TypeHostel},
		{"people type on experiences", validExperienceInput(), TypeTutor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Type = tc.typ
			_, err := NewListing(tc.in)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "type", vErr.Field)
			assert.True(t, errors.Is(err, ErrInvalidListingData))
		})
	}
}

func TestNewListing_RequiredFields(t *testing.T) {
	in := validPlaceInput()
	in.Title = ""
	_, err := NewListing(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	in = validPlaceInput()
	in.OwnerID = ""
	_, err = NewListing(in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ownerId", vErr.Field)

	in = validPlaceInput()
	in.Category = "restaurants"
	_, err = NewListing(in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}

func TestNewListing_VariantPayloadMustMatchCategory(t *testing.T) {
	// Missing payload.
	in := validPlaceInput()
	in.Place = nil
	_, err := NewListing(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "place", vErr.Field)

	// Wrong payload alongside the right one.
	in = validPlaceInput()
	in.People = validPeopleInput().People
	_, err = NewListing(in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "details", vErr.Field)
}

func TestNewListing_PeopleAvailabilityMandatory(t *testing.T) {
	in := validPeopleInput()
	in.People.Availability = WeeklyAvailability{}
	_, err := NewListing(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "people.availability", vErr.Field)

	in = validPeopleInput()
	in.People.Availability.Hours = ""
	_, err = NewListing(in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "people.availability", vErr.Field)
}

func TestNewListing_ExperienceGroupSize(t *testing.T) {
	in := validExperienceInput()
	in.Experience.GroupSize = GroupSize{Min: 0, Max: 5}
	_, err := NewListing(in)
	assert.Error(t, err)

	in = validExperienceInput()
	in.Experience.GroupSize = GroupSize{Min: 6, Max: 5}
	_, err = NewListing(in)
	assert.Error(t, err)
}

func TestNewListing_PricingValidation(t *testing.T) {
	in := validPlaceInput()
	in.Pricing = &Pricing{Amount: 120, Currency: ""}
	_, err := NewListing(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pricing.currency", vErr.Field)

	in.Pricing = &Pricing{Amount: 120, Currency: "EUR", Period: "fortnightly"}
	_, err = NewListing(in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pricing.period", vErr.Field)

	in.Pricing = &Pricing{Amount: 120, Currency: "EUR", Period: PeriodDaily}
	_, err = NewListing(in)
	assert.NoError(t, err)
}

func TestApplyUpdate_TypeMustStayInCategory(t *testing.T) {
	l, err := NewListing(validPlaceInput())
	require.NoError(t, err)

	wrong := TypeChef
	err = l.ApplyUpdate(UpdatePatch{Type: &wrong})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)
	assert.Equal(t, TypeHostel, l.Type, "failed update must not partially apply")

	right := TypeHotel
	require.NoError(t, l.ApplyUpdate(UpdatePatch{Type: &right}))
	assert.Equal(t, TypeHotel, l.Type)
}

func TestApplyUpdate_MergesOnlySuppliedFields(t *testing.T) {
	l, err := NewListing(validPlaceInput())
	require.NoError(t, err)

	title := "Renamed Hostel"
	rating := 4.5
	require.NoError(t, l.ApplyUpdate(UpdatePatch{Title: &title, Rating: &rating}))

	assert.Equal(t, "Renamed Hostel", l.Title)
	assert.Equal(t, 4.5, l.Rating)
	assert.Equal(t, CategoryPlaces, l.Category)
	assert.Equal(t, TypeHostel, l.Type)
}

func TestApplyUpdate_VerifiedCannotReturnToPending(t *testing.T) {
	l, err := NewListing(validPlaceInput())
	require.NoError(t, err)
	l.Verified = true
	l.Status = StatusActive

	pending := StatusPending
	err = l.ApplyUpdate(UpdatePatch{Status: &pending})
	assert.Error(t, err)
	assert.Equal(t, StatusActive, l.Status)

	suspended := StatusSuspended
	require.NoError(t, l.ApplyUpdate(UpdatePatch{Status: &suspended}))
	assert.Equal(t, StatusSuspended, l.Status)
}

func TestApplyUpdate_WrongVariantPayloadRejected(t *testing.T) {
	l, err := NewListing(validPlaceInput())
	require.NoError(t, err)

	err = l.ApplyUpdate(UpdatePatch{People: validPeopleInput().People})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "details", vErr.Field)
	assert.Nil(t, l.People)
}

func TestTouch_NeverMovesBackwards(t *testing.T) {
	l := &Listing{UpdatedAt: time.Now()}
	before := l.UpdatedAt

	l.Touch(before.Add(-time.Hour))
	assert.True(t, l.UpdatedAt.After(before))

	prev := l.UpdatedAt
	l.Touch(time.Now().Add(time.Second))
	assert.True(t, l.UpdatedAt.After(prev))
}

func TestClone_IsDeep(t *testing.T) {
	in := validPeopleInput()
	in.Tags = []string{"a", "b"}
	l, err := NewListing(in)
	require.NoError(t, err)

	c := l.Clone()
	c.Tags[0] = "mutated"
	c.People.Skills[0] = "mutated"
	c.People.Availability.Days[0] = "mutated"

	assert.Equal(t, "a", l.Tags[0])
	assert.Equal(t, "portrait", l.People.Skills[0])
	assert.Equal(t, "mon", l.People.Availability.Days[0])
}
