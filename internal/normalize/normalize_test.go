package normalize

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Breakfast", "breakfast"},
		{"spaces to dashes", "quick dinner", "quick-dinner"},
		{"underscores and slashes", "quick_and/easy", "quick-and-easy"},
		{"accents decomposed", "Crème Brûlée", "creme-brulee"},
		{"punctuation dropped", "mom's pie!", "moms-pie"},
		{"dash collapse", "--slow--cook--", "slow-cook"},
		{"cyrillic dropped", "Завтрак", ""},
		{"empty", "", ""},
		{"numbers kept", "Top 10", "top-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  flour ", "flour"},
		{"brown   sugar", "brown sugar"},
		{"olive\toil", "olive oil"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Name(tt.input); got != tt.expected {
			t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSearchKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Flour", "flour"},
		{"МУКА", "мука"},
		{"Мука пшеничная", "мука пшеничная"},
		{"  Salt ", "salt"},
	}

	for _, tt := range tests {
		if got := SearchKey(tt.input); got != tt.expected {
			t.Errorf("SearchKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#ff00aa", "#FF00AA"},
		{" #49B64E ", "#49B64E"},
		{"ff00aa", ""},
		{"#ff00a", ""},
		{"#gggggg", ""},
	}

	for _, tt := range tests {
		if got := Color(tt.input); got != tt.expected {
			t.Errorf("Color(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
