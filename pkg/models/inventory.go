package models

import (
	"encoding/json"

	"github.com/dealerdesk/dealerdesk/pkg/db"
)

type CarInventory = db.CarInventory

// CarFilter carries the fetch_cars constraints. Numeric fields use -1 for
// "no constraint", string fields use the empty string. Fields omitted from
// the JSON default to the no-constraint sentinel, not the Go zero value.
type CarFilter struct {
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`      // minimum model year
	MaxYear     int     `json:"max_year"`  // maximum model year
	Price       float64 `json:"price"`     // minimum price
	MaxPrice    float64 `json:"max_price"` // maximum price
	Mileage     int     `json:"mileage"`   // maximum mileage
	Color       string  `json:"color"`
	StockNumber string  `json:"stock_number"`
	VIN         string  `json:"vin"`
}

// NewCarFilter returns a filter with every constraint unset.
func NewCarFilter() CarFilter {
	return CarFilter{Year: -1, MaxYear: -1, Price: -1, MaxPrice: -1, Mileage: -1}
}

func (f *CarFilter) UnmarshalJSON(data []byte) error {
	type plain CarFilter
	p := plain(NewCarFilter())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = CarFilter(p)
	return nil
}

// ReviewVideoRequest asks for review videos of a specific car.
type ReviewVideoRequest struct {
	CarMake  string `json:"car_make"`
	CarModel string `json:"car_model"`
	Year     int    `json:"year,omitempty"`
}

// Video is one review video in a search result.
type Video struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Channel     string `json:"channel,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// VideoSearchResult is the payload returned by the video search collaborator.
// A failed search carries the error detail instead of failing the call.
type VideoSearchResult struct {
	Videos []Video `json:"videos"`
	Error  string  `json:"error,omitempty"`
}
