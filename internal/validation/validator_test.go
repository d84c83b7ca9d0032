// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type pointInput struct {
	Lat    *float64 `validate:"required,latitude"`
	Lon    *float64 `validate:"required,longitude"`
	Status string   `validate:"required,delivery_status"`
	Color  string   `validate:"required,hexcolor"`
}

func f64(v float64) *float64 { return &v }

func TestValidateStruct_Point(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   pointInput
		wantTag string
	}{
		{
			name:  "valid",
			input: pointInput{Lat: f64(36.7), Lon: f64(3.05), Status: "alert", Color: "#1e3a8a"},
		},
		{
			name:  "zero coordinates are present",
			input: pointInput{Lat: f64(0), Lon: f64(0), Status: "normal", Color: "#fff"},
		},
		{
			name:    "missing latitude",
			input:   pointInput{Lon: f64(3.05), Status: "normal", Color: "#1e3a8a"},
			wantTag: "required",
		},
		{
			name:    "latitude out of range",
			input:   pointInput{Lat: f64(91), Lon: f64(3.05), Status: "normal", Color: "#1e3a8a"},
			wantTag: "latitude",
		},
		{
			name:    "unknown status",
			input:   pointInput{Lat: f64(36.7), Lon: f64(3.05), Status: "lost", Color: "#1e3a8a"},
			wantTag: "delivery_status",
		},
		{
			name:    "bad color",
			input:   pointInput{Lat: f64(36.7), Lon: f64(3.05), Status: "normal", Color: "navy"},
			wantTag: "hexcolor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := err[0].Tag; got != tt.wantTag {
				t.Errorf("tag = %q, want %q", got, tt.wantTag)
			}
		})
	}
}

func TestParseBBox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"-8.7,18.9,12,37.1", false},
		{" -8.7 , 18.9 , 12 , 37.1 ", false},
		{"1,2,3", true},
		{"a,2,3,4", true},
		{"5,0,1,1", true},
		{"-181,0,0,1", true},
		{"0,0,0,0", false},
	}
	for _, tt := range tests {
		_, err := ParseBBox(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBBox(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

type queryInput struct {
	BBox string `validate:"omitempty,bbox"`
	Page int    `query:"page" json:"-" validate:"gte=1"`
	Zoom int    `validate:"min=0,max=22"`
	Q    string `validate:"max=64"`
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&queryInput{BBox: "nope", Page: 1})
	if single == nil {
		t.Fatal("expected error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "BBox" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&queryInput{Zoom: 40, Q: strings.Repeat("x", 65), Page: 1})
	if multi == nil {
		t.Fatal("expected error")
	}
	apiErr = multi.ToAPIError()
	if !strings.Contains(apiErr.Message, "Zoom: Zoom must be at most 22") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "64 characters") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(42)
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if err[0].Field != "unknown" {
		t.Errorf("Field() = %q", err[0].Field)
	}
}

func TestValidateStruct_TagNames(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&queryInput{})
	if len(err) != 1 {
		t.Fatalf("ValidateStruct() = %v, want one failure", err)
	}
	if err[0].Field != "page" {
		t.Errorf("Field = %q, want query tag name", err[0].Field)
	}
	if err[0].Message != "page must be greater than or equal to 1" {
		t.Errorf("Message = %q", err[0].Message)
	}
}
