package mail

// RecoveryData feeds the abandoned-form recovery templates. TrackingID is
// the pixel id generated for this send; the sender turns it into the pixel
// URL at injection time.
type RecoveryData struct {
	Name       string
	Postcode   string
	TrackingID string
}

// ConfirmationData feeds the booking confirmation template.
type ConfirmationData struct {
	Name          string
	Postcode      string
	CollectionDay string
	PriceDisplay  string
}

type EmailSender struct {
	Host            string
	Port            int
	User            string
	Password        string
	From            string
	TrackingBaseURL string
}
