package schemas

// CustomError carries a stable error code alongside the user-facing message.
// The code is part of the API contract, the message is not.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	BadRequest = &CustomError{
		Code:    "ERR-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	MissingFields = &CustomError{
		Code:    "ERR-002",
		Message: "Please provide all the required fields.",
	}
	InvalidPassword = &CustomError{
		Code:    "ERR-003",
		Message: "The password must be 8 to 24 characters long with at least one uppercase letter, one lowercase letter, one number and one special character from !@#$%.",
	}
	UsernameTaken = &CustomError{
		Code:    "ERR-004",
		Message: "The username is already in use. Please choose another one.",
	}
	EmailTaken = &CustomError{
		Code:    "ERR-005",
		Message: "The email is already in use. Please choose another one.",
	}
	PhoneTaken = &CustomError{
		Code:    "ERR-006",
		Message: "The phone is already in use. Please choose another one.",
	}
	InvalidToken = &CustomError{
		Code:    "ERR-007",
		Message: "The token is invalid or has expired. Please request a new one.",
	}
	CodeMismatch = &CustomError{
		Code:    "ERR-008",
		Message: "Invalid activation code used.",
	}
	InvalidCredentials = &CustomError{
		Code:    "ERR-009",
		Message: "Invalid email or password.",
	}
	Unauthenticated = &CustomError{
		Code:    "ERR-010",
		Message: "Please login before accessing the resource.",
	}
	SessionExpired = &CustomError{
		Code:    "ERR-011",
		Message: "User not logged in. Please login to access these resources.",
	}
	Forbidden = &CustomError{
		Code:    "ERR-012",
		Message: "Your role is not allowed to access this route.",
	}
	NotFound = &CustomError{
		Code:    "ERR-013",
		Message: "No record matches the provided identifier.",
	}
	UserNotFound = &CustomError{
		Code:    "ERR-014",
		Message: "There is no user with the specified email address.",
	}
	NoOpUpdate = &CustomError{
		Code:    "ERR-015",
		Message: "Updated information cannot be the same as the available one.",
	}
	PasswordlessAccount = &CustomError{
		Code:    "ERR-016",
		Message: "The password can't be updated for this account.",
	}
	DuplicateComment = &CustomError{
		Code:    "ERR-017",
		Message: "The user already has a comment for this product.",
	}
	PasswordsDontMatch = &CustomError{
		Code:    "ERR-018",
		Message: "Both passwords must match.",
	}
	DatabaseError = &CustomError{
		Code:    "ERR-020",
		Message: "The database call failed. Please try again later.",
	}
	CacheError = &CustomError{
		Code:    "ERR-021",
		Message: "The session store call failed. Please try again later.",
	}
	EmailNotSent = &CustomError{
		Code:    "ERR-022",
		Message: "The email could not be sent. Please try again later.",
	}
	MediaUploadFailed = &CustomError{
		Code:    "ERR-023",
		Message: "The image could not be processed. Please try again later.",
	}
	InternalServerError = &CustomError{
		Code:    "ERR-024",
		Message: "An internal server error occurred. Please try again later.",
	}
	RouteNotFound = &CustomError{
		Code:    "ERR-025",
		Message: "The requested route does not exist.",
	}
)
