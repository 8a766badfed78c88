package domain

// InputPayload is the stored reservation export read from inputDataPath.
// Only Clients[0] is consumed by the dispatcher.
//
// Numeric fields are float64 because the export writes them as plain JSON
// numbers; nothing downstream needs them as integers.
type InputPayload struct {
	Clients []Client `json:"Clients"`
}

type Client struct {
	ClientID    string      `json:"ClientID"`
	Reservation Reservation `json:"Reservation"`
	SendEmail   bool        `json:"sendEmail"`
	Feedback    string      `json:"feedback"`
}

type Reservation struct {
	ID                 float64 `json:"id"`
	Hotel              Hotel   `json:"hotel"`
	ConfirmationNumber float64 `json:"confirmationNumber"`
	Guests             float64 `json:"guests"`
	CreditPrefix       float64 `json:"creditPrefix"`
	CreditSuffix       float64 `json:"creditSuffix"`
	Points             float64 `json:"points"`
	CheckInDate        string  `json:"checkInDate"`
	CheckOutDate       string  `json:"checkOutDate"`
	CheckedIn          bool    `json:"checkedIn"`
	GuestName          string  `json:"guestName"`
	GuestEmail         string  `json:"guestEmail"`
	GuestClientID      string  `json:"guestClientId"` // DAS client id of the guest's device
}

// Hotel is carried in the payload but not used for notifications.
type Hotel struct {
	ID           float64 `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	ImageName    string  `json:"imageName"`
	CheckInTime  string  `json:"checkInTime"`
	CheckOutTime string  `json:"checkOutTime"`
	Rating       float64 `json:"rating"`
	ConciergeURL string  `json:"conciergeUrl"`
}
