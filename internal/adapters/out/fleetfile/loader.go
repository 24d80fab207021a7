// Package fleetfile reads the initial courier roster from a JSON file of the form
//
//	[{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]
package fleetfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/pkg/errs"
)

type courierDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Load decodes the roster. Every courier starts AVAILABLE; every invalid entry is reported.
func Load(r io.Reader) ([]*courier.Courier, error) {
	var dtos []courierDTO
	if err := json.NewDecoder(r).Decode(&dtos); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("fleet", err)
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	var invalid []error
	for i, dto := range dtos {
		c, err := courier.NewCourier(dto.ID, dto.Name)
		if err != nil {
			invalid = append(invalid, fmt.Errorf("fleet entry %d: %w", i, err))
			continue
		}
		couriers = append(couriers, c)
	}
	if len(invalid) > 0 {
		return nil, errors.Join(invalid...)
	}

	return couriers, nil
}

func LoadFile(path string) ([]*courier.Courier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
