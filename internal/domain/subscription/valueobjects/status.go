package valueobjects

// SubscriptionStatus is the billing provider's subscription status vocabulary.
// Values are case-sensitive and stored verbatim.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusOnTrial   SubscriptionStatus = "on_trial"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether s is part of the provider vocabulary.
func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

// IsLive reports whether the status alone makes a subscription current,
// independent of any end date.
func (s SubscriptionStatus) IsLive() bool {
	return liveStatuses[s]
}

var liveStatuses = map[SubscriptionStatus]bool{
	StatusActive:  true,
	StatusOnTrial: true,
	StatusPastDue: true,
	StatusPaused:  true,
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusOnTrial:   true,
	StatusPastDue:   true,
	StatusPaused:    true,
	StatusCancelled: true,
	StatusExpired:   true,
}

// LiveStatusStrings returns the live statuses as strings, for SQL filters.
func LiveStatusStrings() []string {
	return []string{
		StatusActive.String(),
		StatusOnTrial.String(),
		StatusPastDue.String(),
		StatusPaused.String(),
	}
}

// ParseStatus converts a provider string, reporting whether it is known.
func ParseStatus(raw string) (SubscriptionStatus, bool) {
	s := SubscriptionStatus(raw)
	return s, s.IsValid()
}
