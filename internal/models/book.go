package models

// Book lives only in process memory and is lost on restart.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"`
}
