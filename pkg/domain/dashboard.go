package domain

// DashboardStats is the aggregate snapshot the console's landing view shows.
type DashboardStats struct {
	Users    UserStats    `json:"users"`
	Orders   OrderStats   `json:"orders"`
	Products ProductStats `json:"products"`
	Reviews  ReviewStats  `json:"reviews"`
}

type UserStats struct {
	Total        int     `json:"total"`
	Active       int     `json:"active"`
	NewThisMonth int     `json:"newThisMonth"`
	Growth       float64 `json:"growth"`
}

type OrderStats struct {
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	Processing int     `json:"processing"`
	Completed  int     `json:"completed"`
	Revenue    float64 `json:"revenue"`
	Growth     float64 `json:"growth"`
}

type ProductStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

type ReviewStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	AverageRating float64 `json:"averageRating"`
	Growth        float64 `json:"growth"`
}

// AnalyticsPoint is one bucket in a period analytics series.
type AnalyticsPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Users   int     `json:"users"`
}

// Analytics is the response of the dashboard analytics endpoint.
type Analytics struct {
	Period string           `json:"period"`
	Series []AnalyticsPoint `json:"series"`
}
