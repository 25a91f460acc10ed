package model

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"dreamhouse_backend/pkg/utils/validation"
)

type EstateType string

const (
	EstateTypeHouse     EstateType = "house"
	EstateTypeApartment EstateType = "apartment"
)

var EstateTypes = []EstateType{EstateTypeHouse, EstateTypeApartment}

func (t EstateType) Valid() bool {
	switch t {
	case EstateTypeHouse, EstateTypeApartment:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBYN Currency = "BYN"
)

var Currencies = []Currency{CurrencyUSD, CurrencyBYN}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyBYN:
		return true
	}
	return false
}

// Bedrooms is the room count shown on a listing: "1" to "5" or "studio".
type Bedrooms string

const (
	BedroomsOne    Bedrooms = "1"
	BedroomsTwo    Bedrooms = "2"
	BedroomsThree  Bedrooms = "3"
	BedroomsFour   Bedrooms = "4"
	BedroomsFive   Bedrooms = "5"
	BedroomsStudio Bedrooms = "studio"
)

var BedroomOptions = []Bedrooms{BedroomsOne, BedroomsTwo, BedroomsThree, BedroomsFour, BedroomsFive, BedroomsStudio}

func (b Bedrooms) Valid() bool {
	for _, o := range BedroomOptions {
		if b == o {
			return true
		}
	}
	return false
}

type Estate struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	Slug                  string     `json:"slug" gorm:"size:240;index"`
	Type                  EstateType `json:"type" gorm:"size:20;not null;index;check:chk_estate_type,type IN ('house','apartment')"`
	Location              string     `json:"location" gorm:"size:200;not null"`
	Cost                  float64    `json:"cost" gorm:"not null;default:0;check:chk_estate_cost,cost >= 0"`
	Currency              Currency   `json:"currency" gorm:"size:10;not null;default:USD;check:chk_estate_currency,currency IN ('USD','BYN')"`
	Bedrooms              Bedrooms   `json:"bedrooms" gorm:"size:10;not null;index;check:chk_estate_bedrooms,bedrooms IN ('1','2','3','4','5','studio')"`
	Area                  string     `json:"area" gorm:"size:20"`
	Floor                 string     `json:"floor" gorm:"size:20"`
	Description           string     `json:"description" gorm:"type:text"`
	AdditionalInformation string     `json:"additional_information" gorm:"type:text"`
	Photo                 string     `json:"photo" gorm:"type:text"`
	UserID                *uint      `json:"user_id" gorm:"index"`
	AdminID               *uint      `json:"admin_id" gorm:"index"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	User  *User          `json:"-" gorm:"foreignKey:UserID"`
	Admin *Administrator `json:"-" gorm:"foreignKey:AdminID"`
}

func (Estate) TableName() string {
	return "estate"
}

// Validate checks the closed vocabularies and a non-negative cost.
func (e *Estate) Validate() error {
	ve := &validation.ValidationError{}
	if !e.Type.Valid() {
		ve.Add("type", "Must be one of: house, apartment")
	}
	if !e.Currency.Valid() {
		ve.Add("currency", "Must be one of: USD, BYN")
	}
	if !e.Bedrooms.Valid() {
		ve.Add("bedrooms", "Must be one of: 1, 2, 3, 4, 5, studio")
	}
	if e.Cost < 0 {
		ve.Add("cost", "Must not be negative")
	}
	if strings.TrimSpace(e.Location) == "" {
		ve.Add("location", "This field is required")
	}
	return ve.OrNil()
}

// BeforeSave rejects rows outside the vocabulary and refreshes the slug.
func (e *Estate) BeforeSave(tx *gorm.DB) error {
	if e.Currency == "" {
		e.Currency = CurrencyUSD
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.Slug = slug.Make(string(e.Type) + " " + e.Location)
	return nil
}
