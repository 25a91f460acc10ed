// Package search builds filtered, paginated listing queries.
package search

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/pkg/utils/validation"
)

// OpenEndedPriceRange selects listings costing 200000 or more.
const OpenEndedPriceRange = "200000-more"

const openEndedMin = 200000

type PriceRange struct {
	Min float64
	Max *float64 // nil means no upper bound
}

// Criteria holds the optional search filters. Zero fields match everything.
type Criteria struct {
	Bedrooms model.Bedrooms
	Type     model.EstateType
	Price    *PriceRange
}

// ParseCriteria validates raw query values. Unknown vocabulary values and
// malformed price ranges are reported as field errors.
func ParseCriteria(bedrooms, estateType, priceRange string) (Criteria, error) {
	var c Criteria
	ve := &validation.ValidationError{}

	if bedrooms = strings.TrimSpace(bedrooms); bedrooms != "" {
		c.Bedrooms = model.Bedrooms(bedrooms)
		if !c.Bedrooms.Valid() {
			ve.Add("bedrooms", "Must be one of: 1, 2, 3, 4, 5, studio")
		}
	}

	if estateType = strings.TrimSpace(estateType); estateType != "" {
		c.Type = model.EstateType(estateType)
		if !c.Type.Valid() {
			ve.Add("type", "Must be one of: house, apartment")
		}
	}

	if priceRange = strings.TrimSpace(priceRange); priceRange != "" {
		pr, ok := parsePriceRange(priceRange)
		if !ok {
			ve.Add("price_range", `Must be "<min>-<max>" or "`+OpenEndedPriceRange+`"`)
		}
		c.Price = pr
	}

	if err := ve.OrNil(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func parsePriceRange(s string) (*PriceRange, bool) {
	if s == OpenEndedPriceRange {
		return &PriceRange{Min: openEndedMin}, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return nil, false
	}
	min, err := strconv.Atoi(lo)
	if err != nil || min < 0 {
		return nil, false
	}
	max, err := strconv.Atoi(hi)
	if err != nil || max < min {
		return nil, false
	}

	upper := float64(max)
	return &PriceRange{Min: float64(min), Max: &upper}, true
}

// IsEmpty reports whether no filter is set.
func (c Criteria) IsEmpty() bool {
	return c.Bedrooms == "" && c.Type == "" && c.Price == nil
}

// Apply adds one parameterised condition per set filter.
func (c Criteria) Apply(q *gorm.DB) *gorm.DB {
	if c.Bedrooms != "" {
		q = q.Where("bedrooms = ?", c.Bedrooms)
	}
	if c.Type != "" {
		q = q.Where("type = ?", c.Type)
	}
	if c.Price != nil {
		q = q.Where("cost >= ?", c.Price.Min)
		if c.Price.Max != nil {
			q = q.Where("cost <= ?", *c.Price.Max)
		}
	}
	return q
}
