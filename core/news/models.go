package news

type NewsItem struct {
	ID       int    `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	Date     string `json:"date" db:"date"`
	Category string `json:"category" db:"category"`
}
