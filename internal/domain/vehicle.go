package domain

type BodyType string

const (
	BodySedan BodyType = "Sedan"
	BodySUV   BodyType = "SUV"
	BodyTruck BodyType = "Truck"
	BodyVan   BodyType = "Van"
	BodyWagon BodyType = "Wagon"
	BodyCoupe BodyType = "Coupe"
	BodyOther BodyType = "Other"
)

type Transmission string

const (
	TransmissionAuto    Transmission = "Auto"
	TransmissionManual  Transmission = "Manual"
	TransmissionUnknown Transmission = "Unknown"
)

type FuelType string

const (
	FuelGas    FuelType = "Gas"
	FuelDiesel FuelType = "Diesel"
	FuelHybrid FuelType = "Hybrid"
	FuelEV     FuelType = "EV"
	FuelOther  FuelType = "Other"
)

type Drivetrain string

const (
	DrivetrainFWD     Drivetrain = "FWD"
	DrivetrainRWD     Drivetrain = "RWD"
	DrivetrainAWD     Drivetrain = "AWD"
	Drivetrain4WD     Drivetrain = "4WD"
	DrivetrainUnknown Drivetrain = "Unknown"
)

// Vehicle holds the normalized attributes produced by a VIN decode.
// Make/Model/Year are passthrough from the lookup source; the enum
// fields are mapped into the marketplace vocabulary.
type Vehicle struct {
	VIN          string
	Make         string
	Model        string
	Year         string
	Trim         string
	Series       string
	BodyType     BodyType
	Transmission Transmission
	FuelType     FuelType
	Drivetrain   Drivetrain
	CabSize      string
	Doors        int
	Engine       string
}
