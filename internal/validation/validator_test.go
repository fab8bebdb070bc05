// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package validation

import (
	"strings"
	"testing"
)

type testFixRequest struct {
	Latitude       float64 `validate:"latitude"`
	Longitude      float64 `validate:"longitude"`
	AccuracyMeters float64 `validate:"gte=0"`
	TimestampMs    int64   `validate:"required,gt=0"`
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStructValid(t *testing.T) {
	req := testFixRequest{
		Latitude:       54.0,
		Longitude:      -8.0,
		AccuracyMeters: 5,
		TimestampMs:    1700000000000,
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		req       testFixRequest
		wantField string
		wantTag   string
	}{
		{
			"latitude out of range",
			testFixRequest{Latitude: 91, Longitude: 0, TimestampMs: 1},
			"Latitude", "latitude",
		},
		{
			"longitude out of range",
			testFixRequest{Latitude: 0, Longitude: -181, TimestampMs: 1},
			"Longitude", "longitude",
		},
		{
			"negative accuracy",
			testFixRequest{Latitude: 0, Longitude: 0, AccuracyMeters: -1, TimestampMs: 1},
			"AccuracyMeters", "gte",
		},
		{
			"missing timestamp",
			testFixRequest{Latitude: 0, Longitude: 0},
			"TimestampMs", "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestTranslatedMessages(t *testing.T) {
	req := testFixRequest{Latitude: 91, Longitude: 0, TimestampMs: 1}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "valid latitude") {
		t.Errorf("Error() = %q, want translated latitude message", msg)
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	req := testFixRequest{Latitude: 91, Longitude: 0, TimestampMs: 1}
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Latitude" {
		t.Errorf("Details[field] = %v, want Latitude", apiErr.Details["field"])
	}
	if apiErr.Details["tag"] != "latitude" {
		t.Errorf("Details[tag] = %v, want latitude", apiErr.Details["tag"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	req := testFixRequest{Latitude: 91, Longitude: 181}
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T, want field list", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("got %d field entries, want 3", len(fields))
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("Message = %q, want combined messages", apiErr.Message)
	}
}
