package domain

import "errors"

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrSessionAlreadyBooked = errors.New("session already booked")
	ErrDuplicateSession     = errors.New("a session already exists for this date, room and time slot")
	ErrInvalidTimeSlot      = errors.New("time slot must be between 1 and 7")
	ErrTooManyRooms         = errors.New("cannot schedule more than 7 rooms in a single day")
	ErrInvalidSort          = errors.New("invalid sort field or order")
	ErrInvalidRole          = errors.New("invalid user role")
)

// IsConflict reports whether err is a client-correctable state conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionAlreadyBooked) ||
		errors.Is(err, ErrDuplicateSession) ||
		errors.Is(err, ErrUserAlreadyExists)
}

// IsValidation reports whether err was caused by input the domain rejects.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrTooManyRooms) ||
		errors.Is(err, ErrInvalidSort) ||
		errors.Is(err, ErrInvalidRole)
}
