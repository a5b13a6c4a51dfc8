package store

import (
	"sync"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
)

// BookStore holds books in process memory. All compound read-modify-write
// work, id assignment included, happens under one mutex so concurrent
// creates cannot hand out the same id. Contents are lost on restart and
// ids are never reused while the process lives.
type BookStore struct {
	mu     sync.Mutex
	nextID int64
	books  []models.Book
}

func NewBookStore() *BookStore {
	return &BookStore{nextID: 1}
}

// NewSeededBookStore returns a store preloaded with the demo catalogue.
func NewSeededBookStore() *BookStore {
	return &BookStore{nextID: 7, books: []models.Book{
		{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book!", Rating: 5, PublishedDate: 2030},
		{ID: 2, Title: "Be Fast with FastAPI", Author: "codingwithroby", Description: "A great book!", Rating: 5, PublishedDate: 2030},
		{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "A awesome book!", Rating: 5, PublishedDate: 2029},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book Description", Rating: 2, PublishedDate: 2028},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book Description", Rating: 3, PublishedDate: 2027},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book Description", Rating: 1, PublishedDate: 2026},
	}}
}

// List returns a copy of the catalogue, optionally filtered by rating
// and/or published date (0 means no filter).
func (s *BookStore) List(rating, publishedDate int) []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Book{}
	for _, b := range s.books {
		if rating != 0 && b.Rating != rating {
			continue
		}
		if publishedDate != 0 && b.PublishedDate != publishedDate {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *BookStore) Get(id int64) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the next id and appends. The counter only moves forward,
// so a deleted id is never handed out again within one process lifetime.
func (s *BookStore) Create(book *models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = s.nextID
	s.nextID++
	s.books = append(s.books, *book)
}

// Update replaces every field of the book with the given id.
func (s *BookStore) Update(book models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = book
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the book; deleting the same id twice reports ErrNotFound.
func (s *BookStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
