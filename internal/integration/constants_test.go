package integration_test

import (
	"time"

	"github.com/google/uuid"
)

const (
	// User related constants
	TestUserName     = "johndoe"
	TestUserPassword = "Test123!@#"
	TestUserAge      = 30

	TestManagerName = "manager"

	// Movie related constants
	TestMovieTitle       = "Test Movie"
	TestMovieDescription = "A test movie description."
	TestMovieAgeLimit    = 16
)

var (
	TestUserId    = uuid.MustParse("6f1c1e0e-3b0a-4f53-9b57-0c6f2f1d9a01")
	TestManagerId = uuid.MustParse("6f1c1e0e-3b0a-4f53-9b57-0c6f2f1d9a02")
	TestMovieId   = uuid.MustParse("2b4f8c3a-7d1e-4a0b-8f6e-1c2d3e4f5a01")
	TestSessionId = uuid.MustParse("9e8d7c6b-5a49-4382-9170-6f5e4d3c2b01")

	TestSessionDate = time.Date(2024, 8, 21, 0, 0, 0, 0, time.UTC)
)
