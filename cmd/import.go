package cmd

import (
	"context"
	"io"
	"log"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Import loads the sheet once and writes the table to w as JSON.
func Import(ctx context.Context, w io.Writer) error {

	_, repo, loader, err := bootstrap()
	if err != nil {
		return err
	}

	count, err := loadOnce(ctx, loader)
	if err != nil {
		return err
	}
	log.Printf("imported %d product records", count)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(repo.Current().Records())
}
