package patterns

// Badge names, used as keys into BadgeKeywords and for logging.
const (
	BadgeEmailConfirmed = "email_confirmed"
	BadgeExperienced    = "experienced"
	BadgeCompleted      = "completed"
	BadgeTypicalReply   = "typical_reply"
	BadgeInteractive    = "interactive"
)

// BadgeKeywords maps each verification badge to its keyword set. A badge is
// set when any keyword is a substring of the fragment's lower-cased text.
// Keyword sets are disjoint across badges so toggling one badge's keyword
// never flips another.
var BadgeKeywords = map[string][]string{
	BadgeEmailConfirmed: {"email confirmed", "verified email", "email verified", "verified"},
	BadgeExperienced:    {"experienced", "expert", "professional"},
	BadgeCompleted:      {"completed", "finished", "done"},
	BadgeTypicalReply:   {"typical reply", "quick reply", "fast response"},
	BadgeInteractive:    {"interactive", "active", "online"},
}
