package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Kolkata", timezone: "Asia/Kolkata", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, _ := LoadLocation("Asia/Kolkata")
	got, err := ParseDateInLocation("2024-01-02", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation() = %v, want %v", got, want)
	}
	if _, err := ParseDateInLocation("02/01/2024", loc); err == nil {
		t.Error("ParseDateInLocation() expected error for DD/MM/YYYY input")
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 17, 42, 9, 11, time.UTC)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(ts); !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Asia/Kolkata") {
		t.Error("ValidateTimezone(Asia/Kolkata) = false")
	}
	if !ValidateTimezone("") {
		t.Error("ValidateTimezone(\"\") = false")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone(Mars/Olympus) = true")
	}
}
