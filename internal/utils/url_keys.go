package utils

const (
	// UserIdKey is the key for user IDs used in routing parameters.
	UserIdKey = "userId"

	// ProductIdKey is the key for product IDs used in routing parameters.
	ProductIdKey = "productId"

	// CategoryIdKey is the key for category IDs used in routing parameters.
	CategoryIdKey = "categoryId"

	// OrderIdKey is the key for order IDs used in routing parameters.
	OrderIdKey = "orderId"

	// CommentIdKey is the key for comment IDs used in routing parameters.
	CommentIdKey = "commentId"

	// NotificationIdKey is the key for notification IDs used in routing parameters.
	NotificationIdKey = "notificationId"

	// FaqIdKey is the key for FAQ IDs used in routing parameters.
	FaqIdKey = "faqId"

	// EmailKey is the key for the email used in routing parameters.
	EmailKey = "email"

	// SearchNameKey is the key for the search name used in routing parameters.
	SearchNameKey = "searchName"

	// ColumnParamKey is the key for the filter column used in query parameters.
	ColumnParamKey = "column"

	// PatternParamKey is the key for the filter pattern used in query parameters.
	PatternParamKey = "pattern"

	// SortParamKey is the key for the sort direction used in query parameters.
	SortParamKey = "sort"

	// SortByParamKey is the key for the sort column used in query parameters.
	SortByParamKey = "sortBy"

	// OffsetParamKey is the key for offset used in pagination query parameters.
	OffsetParamKey = "offset"

	// LimitParamKey is the key for limit used in pagination query parameters.
	LimitParamKey = "limit"
)
