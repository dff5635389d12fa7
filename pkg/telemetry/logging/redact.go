package logging

// MaskToken returns a loggable form of a credential. The first four
// characters are kept so operators can tell tokens apart; everything else
// is replaced. Tokens too short to keep a prefix are fully masked.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****"
}
