package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/models"
)

func Derive(table *catalog.Table) *models.CatalogStatistics {
	stats := &models.CatalogStatistics{
		Count:                    table.Len(),
		KeyField:                 table.KeyField(),
		AvailabilityDistribution: make(map[string]int),
		CurrencyDistribution:     make(map[string]int),
		LowestPrice:              make(map[string]float64),
		AveragePrice:             make(map[string]float64),
		HighestPrice:             make(map[string]float64),
	}

	// Group prices by currency
	currencyPrices := make(map[string][]float64)

	for _, record := range table.Records() {
		if availability := record.Get("availability"); availability != "" {
			stats.AvailabilityDistribution[availability]++
		}

		currency := record.Get("currency")
		if currency != "" {
			stats.CurrencyDistribution[currency]++
		}

		price, ok := parsePrice(record.Get("price"))
		if !ok {
			continue
		}
		currencyPrices[currency] = append(currencyPrices[currency], price)
	}

	for currency, prices := range currencyPrices {
		lowestPrice := prices[0]
		highestPrice := prices[0]
		sum := 0.0

		for _, p := range prices {
			if p < lowestPrice {
				lowestPrice = p
			}
			if p > highestPrice {
				highestPrice = p
			}
			sum += p
		}
		stats.LowestPrice[currency] = lowestPrice
		stats.HighestPrice[currency] = highestPrice
		stats.AveragePrice[currency] = math.Round(sum/float64(len(prices))*100) / 100
	}

	return stats
}

// parsePrice accepts "1.50" as well as the "1,50" decimal comma spreadsheets
// often export.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}
