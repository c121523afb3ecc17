package entities

// Gender values accepted by the profile form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// CachedCredentials is the locally persisted projection of the user profile,
// written after a confirmed remote save (or directly at sign-up) and read for
// startup routing and offline profile display. The JSON field names match the
// blob layout the mobile app stores under the credentials key.
type CachedCredentials struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	ImageURL    *string `json:"image"`
	DateOfBirth *string `json:"dob"` // ISO-8601
	Gender      *string `json:"gender"`
}

// Present reports whether the cache counts as a logged-in record: at least a
// username or an email must be set.
func (c *CachedCredentials) Present() bool {
	return c != nil && (c.Username != "" || c.Email != "")
}
