package domain

// MFARecord is the per-username second-factor state. The store owns these
// exclusively and serializes mutation per username.
type MFARecord struct {
	Username string // unique key
	Secret   string // base32-encoded TOTP secret
	Enabled  bool
}

// MFASetup is returned from enrollment: the raw secret for manual entry and
// the otpauth:// URI for QR-code rendering.
type MFASetup struct {
	Secret        string `json:"secret"`
	EnrollmentURI string `json:"enrollment_uri"`
	Issuer        string `json:"issuer"`
	Account       string `json:"account"`
}
