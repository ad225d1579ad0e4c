package domain

// ProductStatus describes the publication state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

// Product is a catalog entry.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	SKU            string            `json:"sku"`
	Status         ProductStatus     `json:"status"`
	Stock          int               `json:"stock"`
	Images         []string          `json:"images,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Highlights     []string          `json:"highlights,omitempty"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
	CreatedBy      string            `json:"createdBy,omitempty"`
}

// ReviewStatus describes the moderation state of a review.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a product review awaiting or past moderation.
type Review struct {
	ID           string        `json:"id"`
	ProductID    string        `json:"productId"`
	Product      *Product      `json:"product,omitempty"`
	UserID       string        `json:"userId"`
	User         *User         `json:"user,omitempty"`
	Rating       int           `json:"rating"`
	Title        string        `json:"title"`
	Comment      string        `json:"comment"`
	Status       ReviewStatus  `json:"status"`
	CreatedAt    string        `json:"createdAt"`
	HelpfulVotes *HelpfulVotes `json:"helpfulVotes,omitempty"`
	Verified     bool          `json:"verified,omitempty"`
}

// HelpfulVotes aggregates helpfulness feedback on a review.
type HelpfulVotes struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"notHelpful"`
}
