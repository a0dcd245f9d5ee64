package domain

// DefaultSessionID is the session name used when callers do not supply one.
// Lookups for this name auto-create the session on first use.
const DefaultSessionID = "default"

// NormalizeID maps an empty session identifier to DefaultSessionID.
func NormalizeID(id string) string {
	if id == "" {
		return DefaultSessionID
	}
	return id
}
