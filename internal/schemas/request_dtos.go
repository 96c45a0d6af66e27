// Package schemas defines the request structures for the API routes.
package schemas

import "encoding/json"

// RegistrationRequest is the payload for POST /api/auth/register.
// The password policy (8-24 chars, upper, lower, digit, symbol of !@#$%)
// is enforced by the password_validation rule.
type RegistrationRequest struct {
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_validation"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Avatar   string `json:"avatar" validate:"omitempty"`
}

// ActivationRequest carries the signed ticket back together with the
// out-of-band activation code.
type ActivationRequest struct {
	ActivationToken string `json:"activationToken" validate:"required"`
	ActivationCode  string `json:"activationCode" validate:"required,numeric,len=4"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SocialAuthRequest is the payload for POST /api/auth/social-auth.
type SocialAuthRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,max=20,username_validation"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

// UpdateInfoRequest changes username and/or phone of the caller.
type UpdateInfoRequest struct {
	Username string `json:"username" validate:"omitempty,max=20,username_validation"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// UpdatePasswordRequest changes the password of the caller.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password_validation"`
}

// UpdateProfilePictureRequest replaces the avatar of the caller.
type UpdateProfilePictureRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

// UpdateRoleRequest promotes or demotes the user with the given email.
type UpdateRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=user admin"`
}

// ResetMailRequest asks for a password reset mail containing the given link.
type ResetMailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Link  string `json:"link" validate:"required,url"`
}

// ForgotPasswordRequest sets a new password for the user in the path.
type ForgotPasswordRequest struct {
	Password        string `json:"password" validate:"required,password_validation"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// CreateProductRequest is the payload for POST /api/products/add-product.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=128"`
	CategoryID  string  `json:"categoryId" validate:"required,uuid"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Photo       string  `json:"photo" validate:"required"`
	SearchName  string  `json:"searchName" validate:"required,max=128"`
}

// UpdateProductRequest carries partial product updates; zero-valued fields
// keep the stored value.
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"omitempty,max=128"`
	CategoryID  string  `json:"categoryId" validate:"omitempty,uuid"`
	Price       float64 `json:"price" validate:"omitempty,gt=0"`
	Description string  `json:"description" validate:"omitempty"`
	Rating      float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Stock       int     `json:"stock" validate:"omitempty,gte=0"`
	Photo       string  `json:"photo" validate:"omitempty"`
}

// CreateCategoryRequest is the payload for POST /api/products/add-product-category.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Photo string `json:"photo" validate:"required"`
}

// UpdateCategoryRequest renames a product category.
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// CreateOrderRequest is the payload for POST /api/orders/new-order.
// Products and PaymentInfo are passed through to the orders table untouched.
type CreateOrderRequest struct {
	TotalPrice  float64         `json:"totalPrice" validate:"required,gt=0"`
	Products    json.RawMessage `json:"products" validate:"required"`
	PaymentInfo json.RawMessage `json:"paymentInfo" validate:"required"`
}

// UpdateOrderRequest changes the status of an order.
type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=paid shipped delivered cancelled"`
}

// CreateCommentRequest is the payload for POST /api/comments/new-comment.
type CreateCommentRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Content   string `json:"content" validate:"required,max=512"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpdateCommentRequest carries partial comment updates.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"omitempty,max=512"`
	Rating  int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// CreateFAQRequest is the payload for POST /api/faq/new-faq.
type CreateFAQRequest struct {
	Question string `json:"question" validate:"required,max=512"`
	Answer   string `json:"answer" validate:"required"`
}

// UpdateFAQRequest carries partial FAQ updates.
type UpdateFAQRequest struct {
	Question string `json:"question" validate:"omitempty,max=512"`
	Answer   string `json:"answer" validate:"omitempty"`
}
