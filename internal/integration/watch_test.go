package integration_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/stretchr/testify/suite"
)

type WatchTestSuite struct {
	BaseSuite
}

func TestWatchSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(WatchTestSuite))
}

func (s *WatchTestSuite) TestWatchAndHistory() {
	t := s.T()
	seedUsers(t, s.app)
	insertTestMovie(t, s.app, TestMovieId, TestMovieTitle, TestMovieAgeLimit)
	insertTestSession(t, s.app, TestSessionId, TestMovieId, 2, domain.SlotNoon, true)

	ticketId := uuid.MustParse("0c3e5a7b-1d2f-4e6a-8b9c-0d1e2f3a4b02")
	insertTestTicket(t, s.app, ticketId, TestUserId, TestSessionId, false)

	watched := fmt.Sprintf(`{
		"id": "%s",
		"userId": "%s",
		"sessionId": "%s",
		"used": true
	}`, ticketId, TestUserId, TestSessionId)

	historyEntry := fmt.Sprintf(`{
		"id": "%s",
		"userId": "%s",
		"sessionId": "%s",
		"used": true,
		"session": {
			"id": "%s",
			"movieId": "%s",
			"movie": {"id": "%s", "title": "%s", "description": "%s", "ageLimit": %d},
			"roomNumber": 2,
			"date": "2024-08-21",
			"timeSlot": 2,
			"timeRange": "12:00-14:00",
			"booked": true
		}
	}`, ticketId, TestUserId, TestSessionId,
		TestSessionId, TestMovieId, TestMovieId, TestMovieTitle, TestMovieDescription, TestMovieAgeLimit)

	scenarios := []Scenario{
		{
			Name:             "history is empty before watching",
			Method:           "GET",
			URL:              "/watch/history",
			Cookies:          userCookies,
			ExpectedStatus:   200,
			ExpectedResponse: `{"tickets": []}`,
		},
		{
			Name:             "returns 404 for an unknown ticket",
			Method:           "POST",
			URL:              fmt.Sprintf("/watch/%s", uuid.New()),
			Cookies:          managerCookies,
			ExpectedStatus:   404,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
		{
			Name:             "watching marks the ticket used",
			Method:           "POST",
			URL:              fmt.Sprintf("/watch/%s", ticketId),
			Cookies:          userCookies,
			ExpectedStatus:   200,
			ExpectedResponse: watched,
		},
		{
			Name:             "watching again keeps it used",
			Method:           "POST",
			URL:              fmt.Sprintf("/watch/%s", ticketId),
			Cookies:          userCookies,
			ExpectedStatus:   200,
			ExpectedResponse: watched,
		},
		{
			Name:             "history lists the watched ticket with its movie",
			Method:           "GET",
			URL:              "/watch/history",
			Cookies:          userCookies,
			ExpectedStatus:   200,
			ExpectedResponse: fmt.Sprintf(`{"tickets": [%s]}`, historyEntry),
		},
		{
			Name:             "the manager's own history is empty",
			Method:           "GET",
			URL:              "/watch/history",
			Cookies:          managerCookies,
			ExpectedStatus:   200,
			ExpectedResponse: `{"tickets": []}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *WatchTestSuite) TestHealthcheck() {
	scenarios := []Scenario{
		{
			Name:           "reports UP with reachable dependencies",
			Method:         "GET",
			URL:            "/health",
			ExpectedStatus: 200,
			ExpectedResponse: `{
				"status": "UP",
				"systemInfo": {"environment": "test"}
			}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
