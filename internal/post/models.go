package post

import "time"

// Post is a blog entry. The same struct is persisted by every backend:
// JSON for the flat file, bson for Mongo and db column names for Postgres.
type Post struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	Title     string    `json:"title" bson:"title" db:"title"`
	Content   string    `json:"content" bson:"content" db:"content"`
	Label     string    `json:"label" bson:"label" db:"label"`
	Slug      string    `json:"slug" bson:"slug" db:"slug"`
	Image     *string   `json:"image" bson:"image" db:"image"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Image != nil {
		img := *p.Image
		cp.Image = &img
	}
	return &cp
}
