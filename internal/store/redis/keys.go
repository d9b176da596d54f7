package redis

import "strings"

const (
	// KeyPrefixDocument holds one wire-shape document per username.
	KeyPrefixDocument = "bio:doc:"
	// KeyPrefixUser holds one JSON account record per username.
	KeyPrefixUser = "bio:user:"
	// KeyPrefixEmail maps a lower-cased email to its username.
	KeyPrefixEmail = "bio:email:"
	// KeyPrefixClicks is a hash of link id -> click count per username.
	KeyPrefixClicks = "bio:clicks:"
	// KeyPrefixLastClick is a hash of link id -> unix millis of the latest click.
	KeyPrefixLastClick = "bio:clicked:"
)

// DocumentKey returns the key of a user's document.
func DocumentKey(username string) string {
	return KeyPrefixDocument + username
}

// UserKey returns the key of an account record.
func UserKey(username string) string {
	return KeyPrefixUser + username
}

// EmailKey returns the key of the email index entry.
func EmailKey(email string) string {
	return KeyPrefixEmail + NormalizeEmail(email)
}

// ClicksKey returns the key of a user's click counters.
func ClicksKey(username string) string {
	return KeyPrefixClicks + username
}

// LastClickKey returns the key of a user's latest click timestamps.
func LastClickKey(username string) string {
	return KeyPrefixLastClick + username
}

// NormalizeEmail trims and lower-cases an email for indexing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
