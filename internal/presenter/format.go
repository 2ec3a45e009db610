package presenter

import (
	"github.com/rm-hull/product-sheets/internal/cards"
	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/models"
)

const (
	DESCRIPTION_UNAVAILABLE = "information unavailable"
	PLACEHOLDER             = "—"
)

// Format builds the dialog content for key. record may be nil; every field
// falls back on its own when missing or empty. The title is always the key
// and the image always comes from the card, never from the record.
func Format(key string, record catalog.Record, card *cards.Card) models.ModalContent {
	content := models.ModalContent{
		Title:        key,
		Description:  orDefault(record.Get("description"), DESCRIPTION_UNAVAILABLE),
		Price:        formatPrice(record.Get("price"), record.Get("currency")),
		Unit:         orDefault(record.Get("unit"), PLACEHOLDER),
		Availability: orDefault(record.Get("availability"), PLACEHOLDER),
		SKU:          orDefault(record.Get("sku"), PLACEHOLDER),
		Found:        record != nil,
	}

	if card != nil && card.Image != nil {
		image := *card.Image
		content.Image = &image
	}

	return content
}

func formatPrice(price, currency string) string {
	switch {
	case price != "" && currency != "":
		return price + " " + currency
	case price != "":
		return price
	case currency != "":
		return currency
	default:
		return PLACEHOLDER
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
