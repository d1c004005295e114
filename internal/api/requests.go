// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/squadmatch/internal/models"
	"github.com/tomtom215/squadmatch/internal/validation"
)

// AnswerPayload is one questionnaire answer in a classify request.
type AnswerPayload struct {
	QuestionID string `json:"question_id" validate:"required"`
	OptionID   string `json:"option_id" validate:"required"`
}

// ClassifyRequest is the body of POST /classify. UserID is optional:
// when present the resulting traits are persisted for that user,
// otherwise the endpoint is a pure computation.
type ClassifyRequest struct {
	UserID  string          `json:"user_id" validate:"omitempty,min=1,max=128"`
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,max=50,dive"`
}

// BatchRequest carries the validated query parameters of the batch
// match endpoint.
type BatchRequest struct {
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}

// ScheduleRequest is the body of PUT /users/{id}/schedule.
type ScheduleRequest struct {
	Slots []SlotPayload `json:"slots" validate:"max=8,dive"`
}

// SlotPayload is one recurring availability slot.
type SlotPayload struct {
	Day  string `json:"day" validate:"required,day_type"`
	Slot string `json:"slot" validate:"required,time_slot"`
}

// toModel converts validated payload slots to model slots.
func (s ScheduleRequest) toModel() []models.ScheduleSlot {
	slots := make([]models.ScheduleSlot, 0, len(s.Slots))
	for _, p := range s.Slots {
		slots = append(slots, models.ScheduleSlot{
			Day:  models.DayType(p.Day),
			Slot: models.TimeSlot(p.Slot),
		})
	}
	return slots
}

// validateRequest validates a struct and converts failures to the API
// error shape.
func validateRequest(v interface{}) *models.APIError {
	err := validation.ValidateStruct(v)
	if err == nil {
		return nil
	}
	return &models.APIError{
		Code:    ErrCodeValidationFailed,
		Message: err.Error(),
		Details: err.Fields,
	}
}

// getIntParam extracts an integer query parameter with a default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
