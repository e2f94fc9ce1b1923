package models

// User represents a registered account, including the transient OTP state
// used by the phone-verification and password-reset flows.
//
// Phone is always stored as a string; request bodies that carry it as a
// number are normalized before it reaches this struct, so lookups by phone
// never miss on a string-vs-number mismatch.
type User struct {
	BaseModel
	Name   string `json:"name"`
	UserID string `gorm:"column:userid;uniqueIndex" json:"userid"`
	Pwd    string `gorm:"column:pwd" json:"-"`
	Email  string `json:"email"`
	Phone  string `gorm:"index" json:"phone"`

	// OTP holds the last issued code, empty when none is outstanding.
	// A successful verification does not clear it; only expiry, a new
	// issuance, or a password reset does.
	OTP       string `gorm:"column:otp" json:"-"`
	OTPExpiry *int64 `gorm:"column:otp_expiry" json:"-"`
}
