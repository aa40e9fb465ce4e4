package readmodel

// ProductRM is the caller-facing view of a catalog product. Offer parameters are never exposed.
type ProductRM struct {
	ProductID      string
	Kind           string
	Price          string
	LocalizedPrice string
	Currency       string
	Title          string
	Description    string
}
