package entities

// Book is a catalog entry as shown on the trending shelf, in search results
// and on the favorites shelf. The ID is the opaque OpenLibrary work key and is
// assumed unique within any one collection, but is not cross-validated against
// the remote source.
type Book struct {
	ID          string `json:"id" binding:"required"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Cover       string `json:"cover,omitempty"`
	PublishYear int    `json:"publishYear,omitempty"`
	Description string `json:"description,omitempty"`
}
