package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validMarkerRequest() MarkerRequest {
	return MarkerRequest{
		Name:      "Fort Santiago",
		Category:  "historical",
		Latitude:  14.5935,
		Longitude: 120.9705,
		OpenTime:  "08:00",
		CloseTime: "18:00",
	}
}

func TestValidateMarker(t *testing.T) {
	assert.NoError(t, validateMarker(validMarkerRequest()))
}

func TestValidateMarkerRequiresName(t *testing.T) {
	req := validMarkerRequest()
	req.Name = "   "
	assert.Error(t, validateMarker(req))
}

func TestValidateMarkerRejectsUnknownCategory(t *testing.T) {
	req := validMarkerRequest()
	req.Category = "casino"
	assert.Error(t, validateMarker(req))
}

func TestValidateMarkerRejectsCoordinatesOutsideIntramuros(t *testing.T) {
	req := validMarkerRequest()
	req.Latitude = 14.5
	assert.Error(t, validateMarker(req))
}

func TestValidateMarkerRejectsNegativeFee(t *testing.T) {
	req := validMarkerRequest()
	req.EntranceFee = -50
	assert.Error(t, validateMarker(req))
}

func TestValidateMarkerOpeningHours(t *testing.T) {
	req := validMarkerRequest()
	req.CloseTime = ""
	assert.Error(t, validateMarker(req), "open without close")

	req = validMarkerRequest()
	req.OpenTime = "8am"
	assert.Error(t, validateMarker(req), "non HH:MM format")

	req = validMarkerRequest()
	req.OpenTime = "09:00"
	req.CloseTime = "09:00"
	assert.Error(t, validateMarker(req), "equal open and close")

	req = validMarkerRequest()
	req.OpenTime = ""
	req.CloseTime = ""
	assert.NoError(t, validateMarker(req), "hours are optional")
}

func validEventRequest() EventRequest {
	return EventRequest{
		Title:     "Intramuros Night Walk",
		StartDate: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC),
	}
}

func TestValidateEvent(t *testing.T) {
	assert.NoError(t, validateEvent(validEventRequest()))
}

func TestValidateEventRequiresTitle(t *testing.T) {
	req := validEventRequest()
	req.Title = ""
	assert.Error(t, validateEvent(req))
}

func TestValidateEventRequiresDates(t *testing.T) {
	req := validEventRequest()
	req.EndDate = time.Time{}
	assert.Error(t, validateEvent(req))
}

func TestValidateEventRejectsReversedDates(t *testing.T) {
	req := validEventRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	assert.Error(t, validateEvent(req))
}

func TestValidateEventCoordinates(t *testing.T) {
	req := validEventRequest()
	req.Latitude = 14.5935
	assert.Error(t, validateEvent(req), "latitude without longitude")

	req.Longitude = 120.9705
	assert.NoError(t, validateEvent(req))

	req.Longitude = 121.5
	assert.Error(t, validateEvent(req), "outside Intramuros")
}

func TestValidateNotification(t *testing.T) {
	req := NotificationRequest{Title: "Holiday Hours", Message: "Fort Santiago closes early.", Audience: "all"}
	assert.NoError(t, validateNotification(req))

	req.Audience = "everyone"
	assert.Error(t, validateNotification(req))

	req.Audience = "guests"
	req.Message = " "
	assert.Error(t, validateNotification(req))
}
