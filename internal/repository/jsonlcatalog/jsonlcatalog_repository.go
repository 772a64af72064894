package jsonlcatalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"offerPilot/domain"

	"github.com/google/uuid"
)

// Repository parses newline-delimited JSON vendor catalog dumps, one
// vendor object per line.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type vendorLine struct {
	VendorID   string              `json:"vendor_id"`
	VendorName string              `json:"vendor_name"`
	Category   string              `json:"category"`
	Tags       []string            `json:"tags"`
	Offer      domain.OfferDetails `json:"offer_details"`
}

// ParseVendors reads a vendor catalog dump. Lines without a vendor_id get
// one assigned so re-imports of the same dump upsert rather than duplicate
// only when the dump itself carries stable ids.
func (r *Repository) ParseVendors(reader io.Reader) ([]domain.Vendor, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var vendors []domain.Vendor
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry vendorLine
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode vendor on line %d: %w", lineNo, err)
		}

		if entry.VendorName == "" {
			return nil, domain.NewSchemaError("vendor_name")
		}
		if entry.VendorID == "" {
			entry.VendorID = uuid.NewString()
		}

		vendors = append(vendors, domain.Vendor{
			VendorID:   entry.VendorID,
			VendorName: entry.VendorName,
			Category:   entry.Category,
			Tags:       entry.Tags,
			Offer:      entry.Offer,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vendor catalog: %w", err)
	}

	return vendors, nil
}
