package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidPriceRange = errors.New("minimum price cannot exceed maximum price")
	ErrInvalidYearRange  = errors.New("minimum year cannot exceed maximum year")
)

// SearchCriteria is the optional filter set applied conjunctively over the
// catalog. Substring filters are case-insensitive "contains". An exact Year
// takes precedence over the MinYear/MaxYear range.
type SearchCriteria struct {
	Brand       string
	Model       string
	Color       string
	MinPrice    *float64
	MaxPrice    *float64
	Year        *int
	MinYear     *int
	MaxYear     *int
	IsAvailable *bool
}

// Validate rejects the whole query when any bound is out of range.
func (c SearchCriteria) Validate() error {
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return ErrNegativePrice
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return ErrNegativePrice
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return ErrInvalidPriceRange
	}
	for _, year := range []*int{c.Year, c.MinYear, c.MaxYear} {
		if year != nil && !YearInRange(*year) {
			return ErrInvalidYear
		}
	}
	if c.MinYear != nil && c.MaxYear != nil && *c.MinYear > *c.MaxYear {
		return ErrInvalidYearRange
	}
	return nil
}

// Matches reports whether the vehicle satisfies every supplied filter.
func (c SearchCriteria) Matches(v *Vehicle) bool {
	if v == nil {
		return false
	}
	if !containsFold(v.Brand, c.Brand) || !containsFold(v.Model, c.Model) || !containsFold(v.Color, c.Color) {
		return false
	}
	if c.MinPrice != nil && v.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && v.Price > *c.MaxPrice {
		return false
	}
	if c.Year != nil {
		if v.Year != *c.Year {
			return false
		}
	} else {
		if c.MinYear != nil && v.Year < *c.MinYear {
			return false
		}
		if c.MaxYear != nil && v.Year > *c.MaxYear {
			return false
		}
	}
	if c.IsAvailable != nil && v.IsSold == *c.IsAvailable {
		return false
	}
	return true
}

func containsFold(value, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

// SortSearchResults orders search output: unsold before sold, then price ascending.
func SortSearchResults(list []*Vehicle) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsSold != list[j].IsSold {
			return !list[i].IsSold
		}
		return list[i].Price < list[j].Price
	})
}

// SortByPrice orders an already homogeneous listing by price ascending.
func SortByPrice(list []*Vehicle) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Price < list[j].Price
	})
}
