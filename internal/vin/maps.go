package vin

import (
	"strings"

	"github.com/yotayard/yotayard/internal/domain"
)

// Mapping tables translating vPIC vocabulary into the marketplace
// enums. Unrecognized inputs always fall through to a defined default.

var bodyTypeMap = map[string]domain.BodyType{
	"Sedan":                                domain.BodySedan,
	"Sedan/Saloon":                         domain.BodySedan,
	"SUV":                                  domain.BodySUV,
	"Truck":                                domain.BodyTruck,
	"Van":                                  domain.BodyVan,
	"Wagon":                                domain.BodyWagon,
	"Coupe":                                domain.BodyCoupe,
	"Hatchback":                            domain.BodyWagon,
	"Convertible":                          domain.BodyCoupe,
	"Pickup":                               domain.BodyTruck,
	"Minivan":                              domain.BodyVan,
	"Crossover":                            domain.BodySUV,
	"Passenger Car":                        domain.BodySedan,
	"Multipurpose Passenger Vehicle (MPV)": domain.BodySUV,
	"Motorcycle":                           domain.BodyOther,
	"Trailer":                              domain.BodyOther,
	"Low Speed Vehicle (LSV)":              domain.BodyOther,
	"Bus":                                  domain.BodyOther,
	"Incomplete Vehicle":                   domain.BodyOther,
}

func mapBodyType(raw string) domain.BodyType {
	if bt, ok := bodyTypeMap[raw]; ok {
		return bt
	}
	return domain.BodyOther
}

// Any non-manual mechanism (CVT, automated manual, direct drive, EV
// reduction gear) reads as Auto from a driver's point of view.
var transmissionMap = map[string]domain.Transmission{
	"Automatic":                          domain.TransmissionAuto,
	"Manual":                             domain.TransmissionManual,
	"CVT":                                domain.TransmissionAuto,
	"Semi-Automatic":                     domain.TransmissionAuto,
	"Automated Manual":                   domain.TransmissionAuto,
	"Direct Drive":                       domain.TransmissionAuto,
	"Electric":                           domain.TransmissionAuto,
	"AUTOMATIC":                          domain.TransmissionAuto,
	"MANUAL":                             domain.TransmissionManual,
	"A/T":                                domain.TransmissionAuto,
	"M/T":                                domain.TransmissionManual,
	"Continuously Variable":              domain.TransmissionAuto,
	"Continuously Variable Transmission": domain.TransmissionAuto,
}

func mapTransmission(raw string) domain.Transmission {
	if t, ok := transmissionMap[raw]; ok {
		return t
	}
	return domain.TransmissionUnknown
}

var fuelTypeMap = map[string]domain.FuelType{
	"Gasoline":       domain.FuelGas,
	"Diesel":         domain.FuelDiesel,
	"Hybrid":         domain.FuelHybrid,
	"Electric":       domain.FuelEV,
	"Plug-in Hybrid": domain.FuelHybrid,
	"Flex Fuel":      domain.FuelGas,
	"Natural Gas":    domain.FuelOther,
	"Propane":        domain.FuelOther,
	"Hydrogen":       domain.FuelOther,
	"Biodiesel":      domain.FuelDiesel,
	"E85":            domain.FuelGas,
	"GASOLINE":       domain.FuelGas,
	"DIESEL":         domain.FuelDiesel,
	"HYBRID":         domain.FuelHybrid,
	"ELECTRIC":       domain.FuelEV,
}

func mapFuelType(raw string) domain.FuelType {
	if f, ok := fuelTypeMap[raw]; ok {
		return f
	}
	return domain.FuelOther
}

var drivetrainMap = map[string]domain.Drivetrain{
	"FWD":               domain.DrivetrainFWD,
	"RWD":               domain.DrivetrainRWD,
	"AWD":               domain.DrivetrainAWD,
	"4WD":               domain.Drivetrain4WD,
	"4x4":               domain.Drivetrain4WD,
	"4X4":               domain.Drivetrain4WD,
	"4x2":               domain.DrivetrainRWD,
	"4X2":               domain.DrivetrainRWD,
	"2WD":               domain.DrivetrainRWD,
	"Front-Wheel Drive": domain.DrivetrainFWD,
	"Rear-Wheel Drive":  domain.DrivetrainRWD,
	"All-Wheel Drive":   domain.DrivetrainAWD,
	"Four-Wheel Drive":  domain.Drivetrain4WD,
	"Part-time 4WD":     domain.Drivetrain4WD,
	"Full-time 4WD":     domain.Drivetrain4WD,
	"FRONT-WHEEL DRIVE": domain.DrivetrainFWD,
	"REAR-WHEEL DRIVE":  domain.DrivetrainRWD,
	"ALL-WHEEL DRIVE":   domain.DrivetrainAWD,
	"FOUR-WHEEL DRIVE":  domain.Drivetrain4WD,
	"Front Wheel Drive": domain.DrivetrainFWD,
	"Rear Wheel Drive":  domain.DrivetrainRWD,
	"All Wheel Drive":   domain.DrivetrainAWD,
	"Four Wheel Drive":  domain.Drivetrain4WD,
}

// mapDrivetrain checks substrings in priority order before the exact
// table, because vPIC returns compound strings like
// "4WD/4-Wheel Drive/4x4".
func mapDrivetrain(raw string) domain.Drivetrain {
	in := strings.ToLower(raw)

	switch {
	case strings.Contains(in, "4wd"), strings.Contains(in, "4x4"),
		strings.Contains(in, "four-wheel"), strings.Contains(in, "4-wheel"):
		return domain.Drivetrain4WD
	case strings.Contains(in, "awd"), strings.Contains(in, "all-wheel"):
		return domain.DrivetrainAWD
	case strings.Contains(in, "fwd"), strings.Contains(in, "front-wheel"):
		return domain.DrivetrainFWD
	case strings.Contains(in, "rwd"), strings.Contains(in, "rear-wheel"),
		strings.Contains(in, "2wd"), strings.Contains(in, "4x2"):
		return domain.DrivetrainRWD
	}

	if d, ok := drivetrainMap[raw]; ok {
		return d
	}
	return domain.DrivetrainUnknown
}

var cabSizeMap = map[string]string{
	"Double Cab":   "Double Cab",
	"Single Cab":   "Single Cab",
	"Crew Cab":     "Crew Cab",
	"Super Cab":    "Super Cab",
	"Extra Cab":    "Extra Cab",
	"Regular Cab":  "Single Cab",
	"Extended Cab": "Double Cab",
	"King Cab":     "Crew Cab",
	"Quad Cab":     "Super Cab",
}

// mapCabSize has no "unknown" bucket: unrecognized values pass through
// verbatim.
func mapCabSize(raw string) string {
	in := strings.ToLower(raw)

	switch {
	case strings.Contains(in, "double"), strings.Contains(in, "extended"):
		return "Double Cab"
	case strings.Contains(in, "single"), strings.Contains(in, "regular"):
		return "Single Cab"
	case strings.Contains(in, "crew"), strings.Contains(in, "king"):
		return "Crew Cab"
	case strings.Contains(in, "super"), strings.Contains(in, "quad"):
		return "Super Cab"
	case strings.Contains(in, "extra"):
		return "Extra Cab"
	}

	if c, ok := cabSizeMap[raw]; ok {
		return c
	}
	return raw
}
