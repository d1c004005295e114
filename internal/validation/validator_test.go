// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package validation

import (
	"strings"
	"testing"
)

type slotRequest struct {
	Day  string `validate:"required,day_type"`
	Slot string `validate:"required,time_slot"`
}

type pageRequest struct {
	Limit int `validate:"min=1,max=100"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&slotRequest{Day: "weekday", Slot: "evening"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if err := ValidateStruct(&pageRequest{Limit: 20}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateStructDayType(t *testing.T) {
	err := ValidateStruct(&slotRequest{Day: "holiday", Slot: "evening"})
	if err == nil {
		t.Fatal("expected failure for unknown day type")
	}
	if len(err.Fields) != 1 || err.Fields[0].Tag != "day_type" {
		t.Fatalf("unexpected fields: %+v", err.Fields)
	}
	if !strings.Contains(err.Error(), "weekday") {
		t.Fatalf("message should name valid values: %q", err.Error())
	}
}

func TestValidateStructTimeSlot(t *testing.T) {
	err := ValidateStruct(&slotRequest{Day: "weekend", Slot: "midnight"})
	if err == nil {
		t.Fatal("expected failure for unknown time slot")
	}
	if err.Fields[0].Tag != "time_slot" {
		t.Fatalf("unexpected tag: %s", err.Fields[0].Tag)
	}
}

func TestValidateStructCollectsAllFailures(t *testing.T) {
	err := ValidateStruct(&slotRequest{})
	if err == nil {
		t.Fatal("expected failure for empty request")
	}
	if len(err.Fields) != 2 {
		t.Fatalf("expected both fields reported, got %+v", err.Fields)
	}
}

func TestValidateStructBounds(t *testing.T) {
	if err := ValidateStruct(&pageRequest{Limit: 0}); err == nil {
		t.Fatal("expected failure below minimum")
	}
	err := ValidateStruct(&pageRequest{Limit: 500})
	if err == nil {
		t.Fatal("expected failure above maximum")
	}
	if !strings.Contains(err.Error(), "100") {
		t.Fatalf("message should carry the bound: %q", err.Error())
	}
}
