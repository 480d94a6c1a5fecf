package analyzer

import "testing"

func TestIsProductClass(t *testing.T) {
	testCases := []struct {
		className string
		expected  bool
	}{
		{"bottle", true},
		{"handbag", true},
		{"cell phone", true},
		{"laptop", true},
		{"teddy bear", true},
		{"person", true},
		{"traffic light", false},
		{"stop sign", false},
		{"", false},
		{"Bottle", false}, // class names are matched verbatim
	}

	for _, tc := range testCases {
		t.Run(tc.className, func(t *testing.T) {
			if got := IsProductClass(tc.className); got != tc.expected {
				t.Errorf("IsProductClass(%q) = %v, expected %v", tc.className, got, tc.expected)
			}
		})
	}
}

func TestProductClasses_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool, len(ProductClasses))
	for _, name := range ProductClasses {
		if seen[name] {
			t.Errorf("Duplicate product class: %q", name)
		}
		seen[name] = true
	}
}

func TestProductClasses_AllRecognized(t *testing.T) {
	for _, name := range ProductClasses {
		if !IsProductClass(name) {
			t.Errorf("Listed product class %q not recognized", name)
		}
	}
}
