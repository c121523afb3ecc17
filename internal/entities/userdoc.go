package entities

// UserDocument is the users/{uid} record in the remote document store. Field
// names follow the wire schema: the display name travels as "name" and is
// mapped to the form's username on load. The record carries no identifier
// field; it is keyed externally by the session identity.
type UserDocument struct {
	Name        string  `firestore:"name" json:"name"`
	Email       string  `firestore:"email" json:"email"`
	Password    string  `firestore:"password" json:"password"`
	ImageURL    *string `firestore:"imageUrl" json:"imageUrl"`
	DateOfBirth *string `firestore:"dob" json:"dob"` // ISO-8601
	Gender      string  `firestore:"gender" json:"gender"`
	CreatedAt   string  `firestore:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string  `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
