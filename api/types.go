// Package api holds the JSON request and response bodies of the HTTP surface.
package api

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,password"`
	Age      int    `json:"age" validate:"required,min=1,max=120"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer manager"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type GetMoviesParams struct {
	AgeLimit *int    `validate:"omitempty,min=1"`
	SortBy   *string `validate:"omitempty,oneof=title ageLimit id"`
	Order    *string `validate:"omitempty,oneof=ASC DESC asc desc"`
}

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	AgeLimit    int    `json:"ageLimit" validate:"required,min=1,max=99"`
}

type BulkCreateMoviesRequest struct {
	Movies []CreateMovieRequest `json:"movies" validate:"required,min=1,max=100,dive"`
}

// UpdateMovieRequest is a partial update; omitted fields keep their value.
type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	AgeLimit    *int    `json:"ageLimit" validate:"omitempty,min=1,max=99"`
}

type MovieResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AgeLimit    int       `json:"ageLimit"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

type CreateSessionRequest struct {
	MovieId    uuid.UUID          `json:"movieId" validate:"required"`
	RoomNumber int                `json:"roomNumber" validate:"required,min=1"`
	Date       openapi_types.Date `json:"date" validate:"required"`
	TimeSlot   int                `json:"timeSlot" validate:"required,timeslot"`
}

type BulkCreateSessionsRequest struct {
	RoomNumbers []int `json:"roomNumbers" validate:"required,min=1,max=7,dive,min=1"`
}

type SessionResponse struct {
	Id         uuid.UUID          `json:"id"`
	MovieId    uuid.UUID          `json:"movieId"`
	Movie      *MovieResponse     `json:"movie,omitempty"`
	RoomNumber int                `json:"roomNumber"`
	Date       openapi_types.Date `json:"date"`
	TimeSlot   int                `json:"timeSlot"`
	TimeRange  string             `json:"timeRange"`
	Booked     bool               `json:"booked"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type CreateTicketRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
}

type TicketResponse struct {
	Id          uuid.UUID        `json:"id"`
	UserId      uuid.UUID        `json:"userId"`
	SessionId   uuid.UUID        `json:"sessionId"`
	PurchasedAt time.Time        `json:"purchasedAt"`
	Used        bool             `json:"used"`
	Session     *SessionResponse `json:"session,omitempty"`
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}
