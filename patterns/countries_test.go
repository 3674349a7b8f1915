package patterns

import "testing"

// Every alias in the table — code, name, demonym — must map to its
// canonical name, case-insensitively.
func TestCanonicalCountryRoundTrip(t *testing.T) {
	for _, c := range Countries {
		for _, alias := range []string{c.Code, c.Name, c.Demonym} {
			got, ok := CanonicalCountry(alias)
			if !ok {
				t.Errorf("CanonicalCountry(%q) not found", alias)
				continue
			}
			if got != c.Name {
				t.Errorf("CanonicalCountry(%q) = %q, want %q", alias, got, c.Name)
			}
		}
	}
}

func TestCanonicalCountryCaseInsensitive(t *testing.T) {
	tests := []struct {
		alias, want string
	}{
		{"ae", "UAE"},
		{"GERMANY", "Germany"},
		{"chinese", "China"},
		{"United Arab Emirates", "UAE"},
		{"united states", "USA"},
		{"great britain", "UK"},
	}
	for _, tt := range tests {
		got, ok := CanonicalCountry(tt.alias)
		if !ok || got != tt.want {
			t.Errorf("CanonicalCountry(%q) = %q, %v; want %q, true", tt.alias, got, ok, tt.want)
		}
	}
}

func TestCanonicalCountryUnknown(t *testing.T) {
	for _, alias := range []string{"Atlantis", "XX", ""} {
		if got, ok := CanonicalCountry(alias); ok {
			t.Errorf("CanonicalCountry(%q) = %q, want not found", alias, got)
		}
	}
}

func TestFindCountry(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"Buyer from UAE needs 500 pieces", "UAE", true},
		{"shipping to Germany next week", "Germany", true},
		{"an Emirati trading house", "UAE", true},
		{"United Arab Emirates importer", "UAE", true},
		{"Location: BD", "Bangladesh", true},
		{"nothing to see here", "", false},
	}
	for _, tt := range tests {
		got, ok := FindCountry(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FindCountry(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

// Bare ISO-2 codes must only be honored in upper case: "in", "it", "us"
// are ordinary English words.
func TestFindCountryLowercaseCodeIgnored(t *testing.T) {
	for _, text := range []string{"put it in the box", "send it to us"} {
		if got, ok := FindCountry(text); ok {
			t.Errorf("FindCountry(%q) = %q, want no match", text, got)
		}
	}
}
