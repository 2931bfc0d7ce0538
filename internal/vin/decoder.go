// Package vin decodes 17-character VINs through the NHTSA vPIC API and
// normalizes the response into the marketplace's constrained vehicle
// vocabulary.
package vin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yotayard/yotayard/internal/domain"
)

var (
	ErrVINLength      = errors.New("VIN must be exactly 17 characters")
	ErrLookupFailed   = errors.New("failed to lookup VIN, please try again or enter details manually")
	ErrNoData         = errors.New("no vehicle data found for this VIN")
	ErrIncompleteData = errors.New("incomplete vehicle data from VIN lookup")
)

type Decoder struct {
	client Client
}

func NewDecoder(client Client) *Decoder {
	return &Decoder{client: client}
}

// Normalize strips whitespace and uppercases a raw VIN.
func Normalize(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// Decode looks up a VIN and maps the source attributes into a Vehicle.
// Every failure is one of the package sentinel errors; on success
// Make/Model/Year are non-empty and the enum fields are never empty
// (unset ones default to Other/Unknown).
func (d *Decoder) Decode(ctx context.Context, rawVIN string) (*domain.Vehicle, error) {
	cleanVIN := Normalize(rawVIN)
	if len(cleanVIN) != 17 {
		return nil, ErrVINLength
	}

	attrs, err := d.client.Decode(ctx, cleanVIN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(attrs) == 0 {
		return nil, ErrNoData
	}

	v := &domain.Vehicle{VIN: cleanVIN}

	// Engine attributes are accumulated and combined at the end.
	var displacementL, engineConfig, cylinders, engineModel string

	for _, attr := range attrs {
		// vPIC reports "not provided" as the literal strings "0" or "null".
		if attr.Value == "" || attr.Value == "0" || attr.Value == "null" {
			continue
		}

		switch attr.Variable {
		case "Make":
			v.Make = attr.Value
		case "Model":
			v.Model = attr.Value
		case "Model Year":
			v.Year = attr.Value
		case "Body Class":
			v.BodyType = mapBodyType(attr.Value)
		case "Vehicle Type":
			// Body Class takes priority when both are present.
			if v.BodyType == "" {
				v.BodyType = mapBodyType(attr.Value)
			}
		case "Transmission Style", "Transmission Type", "Transmission", "Trans":
			// Last seen wins when several variables populate this.
			v.Transmission = mapTransmission(attr.Value)
		case "Fuel Type - Primary", "Fuel Type":
			v.FuelType = mapFuelType(attr.Value)
		case "Drive Type", "Drive Train", "Wheel Drive Type", "Drive", "Wheel Drive":
			v.Drivetrain = mapDrivetrain(attr.Value)
		case "Series":
			v.Series = attr.Value
		case "Trim":
			v.Trim = attr.Value
		case "Trim2":
			v.CabSize = mapCabSize(attr.Value)
		case "Cab Type":
			// Trim2 takes priority.
			if v.CabSize == "" {
				v.CabSize = mapCabSize(attr.Value)
			}
		case "Doors":
			n, err := strconv.Atoi(attr.Value)
			if err != nil {
				n = 0
			}
			v.Doors = n
		case "Displacement (L)":
			displacementL = attr.Value
		case "Engine Configuration":
			engineConfig = attr.Value
		case "Engine Number of Cylinders":
			cylinders = attr.Value
		case "Engine Model":
			engineModel = attr.Value
		}
	}

	if displacementL != "" || engineConfig != "" || cylinders != "" {
		v.Engine = formatEngineDescription(displacementL, engineConfig, cylinders, engineModel)
	} else if engineModel != "" {
		v.Engine = engineModel
	}

	if v.Make == "" || v.Model == "" || v.Year == "" {
		return nil, ErrIncompleteData
	}

	if v.BodyType == "" {
		v.BodyType = domain.BodyOther
	}
	if v.Transmission == "" {
		v.Transmission = domain.TransmissionUnknown
	}
	if v.FuelType == "" {
		v.FuelType = domain.FuelOther
	}
	if v.Drivetrain == "" {
		v.Drivetrain = domain.DrivetrainUnknown
	}

	return v, nil
}
