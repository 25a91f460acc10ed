package seed

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/store"
)

// EnsureAdministrator creates the administrator unless one with the same
// email already exists. created reports which case happened.
func EnsureAdministrator(ctx context.Context, s *store.Store, in store.AdministratorInput) (*model.Administrator, bool, error) {
	existing, err := s.FindAdministratorByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	admin, err := s.CreateAdministrator(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

// SampleEstates fills an empty catalogue with a few demo listings.
func SampleEstates(db *gorm.DB, log logrus.FieldLogger) error {
	estates := []model.Estate{
		{
			Type: model.EstateTypeApartment, Location: "Minsk, Nemiga", Cost: 125000, Currency: model.CurrencyUSD,
			Bedrooms: model.BedroomsTwo, Area: "64", Floor: "5/9",
			Description: "Bright flat in the city centre, five minutes from the metro.",
		},
		{
			Type: model.EstateTypeApartment, Location: "Minsk, Uruchye", Cost: 54000, Currency: model.CurrencyUSD,
			Bedrooms: model.BedroomsStudio, Area: "31", Floor: "12/19",
			Description: "Compact studio in a new building.",
		},
		{
			Type: model.EstateTypeHouse, Location: "Ratomka", Cost: 240000, Currency: model.CurrencyUSD,
			Bedrooms: model.BedroomsFour, Area: "180", Floor: "2",
			Description: "Family house with a garden and garage.",
		},
		{
			Type: model.EstateTypeHouse, Location: "Brest", Cost: 310000, Currency: model.CurrencyBYN,
			Bedrooms: model.BedroomsThree, Area: "120", Floor: "1",
			Description: "Single-storey house near the fortress.",
		},
	}

	for _, estate := range estates {
		result := db.Where(model.Estate{Type: estate.Type, Location: estate.Location}).FirstOrCreate(&estate)
		if result.Error != nil {
			log.WithError(result.Error).WithField("location", estate.Location).Error("Error creating sample estate")
			return result.Error
		}
	}

	log.WithField("count", len(estates)).Info("Sample estates seeded")
	return nil
}
