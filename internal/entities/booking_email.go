package entities

type BookingEmailData struct {
	CustomerName     string
	BookingCode      string
	MotorcycleName   string
	PickupFormatted  string
	DropoffFormatted string
	PeriodLabel      string
	Status           string
	CurrentYear      int
}
