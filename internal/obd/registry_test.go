package obd

import (
	"sort"
	"testing"
)

func TestGetPID(t *testing.T) {
	tests := []struct {
		code string
		name string
		unit string
	}{
		{"0C", "Engine RPM", "rpm"},
		{"05", "Engine coolant temperature", "°C"},
		{"0D", "Vehicle speed", "km/h"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			def, ok := GetPID(tt.code)
			if !ok {
				t.Fatalf("GetPID(%q) not found", tt.code)
			}
			if def.Name != tt.name {
				t.Errorf("GetPID(%q).Name = %q, want %q", tt.code, def.Name, tt.name)
			}
			if def.Unit != tt.unit {
				t.Errorf("GetPID(%q).Unit = %q, want %q", tt.code, def.Unit, tt.unit)
			}
		})
	}
}

func TestGetPIDUnknown(t *testing.T) {
	if _, ok := GetPID("FF"); ok {
		t.Error("GetPID(\"FF\") should not be found")
	}
}

func TestListPIDsReturnsCopy(t *testing.T) {
	list := ListPIDs()
	if len(list) == 0 {
		t.Fatal("ListPIDs returned empty table")
	}

	list["0C"] = PIDDefinition{Name: "tampered"}

	def, _ := GetPID("0C")
	if def.Name != "Engine RPM" {
		t.Error("mutating the returned map must not affect the registry")
	}
}

func TestPIDCodesSorted(t *testing.T) {
	codes := PIDCodes()
	if !sort.StringsAreSorted(codes) {
		t.Errorf("PIDCodes not sorted: %v", codes)
	}
	if len(codes) != len(ListPIDs()) {
		t.Errorf("PIDCodes length %d != table size %d", len(codes), len(ListPIDs()))
	}
}

func TestGetDTC(t *testing.T) {
	desc, ok := GetDTC("P0420")
	if !ok {
		t.Fatal("GetDTC(\"P0420\") not found")
	}
	if desc == "" {
		t.Error("empty DTC description")
	}

	if _, ok := GetDTC("P9999"); ok {
		t.Error("GetDTC(\"P9999\") should not be found")
	}
}

func TestDescribeDTCFallback(t *testing.T) {
	if got := DescribeDTC("P9999"); got != "Unknown diagnostic trouble code" {
		t.Errorf("DescribeDTC fallback = %q", got)
	}
	if got := DescribeDTC("P0300"); got != "Random/multiple cylinder misfire detected" {
		t.Errorf("DescribeDTC(\"P0300\") = %q", got)
	}
}

func TestLambdaWindow(t *testing.T) {
	if LambdaRichLimit >= LambdaLeanLimit {
		t.Errorf("rich limit %f must be below lean limit %f", LambdaRichLimit, LambdaLeanLimit)
	}
}
