package models

// AboutPlaceholder is the content inserted when the about table is empty.
const AboutPlaceholder = "No about info yet. Please edit this section."

// About is the singleton "About Me" record. The first row found is canonical.
type About struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}
