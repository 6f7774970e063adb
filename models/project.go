package models

// Project is one portfolio entry served on the public site.
type Project struct {
	ID          string       `json:"id"`
	Subtitle    string       `json:"subtitle"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Preview     string       `json:"preview,omitempty"`
	Video       string       `json:"video,omitempty"`
	Tech        []string     `json:"tech"`
	Links       ProjectLinks `json:"links"`
}

// ProjectLinks holds the outbound links for a project.
type ProjectLinks struct {
	Website string `json:"website,omitempty"`
	GitHub  string `json:"github,omitempty"`
	Video   string `json:"video,omitempty"`
}

// ContactMessage is a contact-form submission forwarded to the owner.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
