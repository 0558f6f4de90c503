package entity

// Notification is one outbound message handed to the notifier.
// At least one of HTMLBody and TextBody is set.
type Notification struct {
	Recipient string
	Subject   string
	HTMLBody  string
	TextBody  string
}
