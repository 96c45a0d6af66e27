package schemas

// ErrorDTO is the uniform failure envelope: success is always false, the
// code identifies the error condition and the message explains it.
type ErrorDTO struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageDTO is the uniform success envelope for operations that return no
// resource data.
type MessageDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegistrationDTO returns the signed activation ticket; the matching code
// travels out-of-band by mail.
type RegistrationDTO struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ActivationToken string `json:"activationToken"`
}

// SessionDTO is returned by login, social auth and the refresh route. The
// refresh token only travels in its cookie.
type SessionDTO struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

// UserDTO wraps a single user record.
type UserDTO struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// UserListDTO wraps the admin user listing.
type UserListDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Users   []User `json:"users"`
}

// ProductDTO wraps a single product record.
type ProductDTO struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Product *Product `json:"product"`
}

// ProductListDTO wraps a product listing.
type ProductListDTO struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

// SearchNamesDTO wraps the distinct search-name listing for the search bar.
type SearchNamesDTO struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	SearchNames []string `json:"searchNames"`
}

// CategoryListDTO wraps the product category listing.
type CategoryListDTO struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Categories []ProductCategory `json:"productCategories"`
}

// OrderListDTO wraps an order listing.
type OrderListDTO struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Orders  []Order `json:"orders"`
}

// CommentListDTO wraps a comment listing.
type CommentListDTO struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Comments []Comment `json:"comments"`
}

// NotificationListDTO wraps a notification listing.
type NotificationListDTO struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Notifications []Notification `json:"notifications"`
}

// FAQListDTO wraps the FAQ listing.
type FAQListDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	FAQs    []FAQ  `json:"faqs"`
}

// MonthlyCount is one bucket of the analytics rollups: how many records
// were created in the given month.
type MonthlyCount struct {
	MonthYear string `json:"monthYear"`
	MonthName string `json:"monthName"`
	Count     int    `json:"count"`
}

// AnalyticsDTO wraps the twelve-month creation rollup.
type AnalyticsDTO struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []MonthlyCount `json:"data"`
}

// PaginatedDTO wraps an offset/limit paginated listing.
type PaginatedDTO struct {
	Success    bool        `json:"success"`
	Records    interface{} `json:"records"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination carries the offset, limit and total record count of a
// paginated response.
type Pagination struct {
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
}

// MetadataDTO is returned by the version route.
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}
