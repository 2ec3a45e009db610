package models

import "time"

// Image is the picture shown in the dialog, taken from the activated card.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ModalContent is everything the product dialog displays. A nil Image means
// the image slot is hidden.
type ModalContent struct {
	Title        string `json:"title"`
	Image        *Image `json:"image,omitempty"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Unit         string `json:"unit"`
	Availability string `json:"availability"`
	SKU          string `json:"sku"`
	Found        bool   `json:"found"`
}

type ProductsResponse struct {
	Keys        []string   `json:"keys"`
	Count       int        `json:"count"`
	KeyField    string     `json:"key_field,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

type CatalogStatistics struct {
	Count                    int                `json:"count"`
	KeyField                 string             `json:"key_field,omitempty"`
	AvailabilityDistribution map[string]int     `json:"availability_distribution"`
	CurrencyDistribution     map[string]int     `json:"currency_distribution"`
	LowestPrice              map[string]float64 `json:"lowest_price"`
	AveragePrice             map[string]float64 `json:"average_price"`
	HighestPrice             map[string]float64 `json:"highest_price"`
}
