package llm

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "email", "email"},
		{"plain fence", "```\nemail\n```", "email"},
		{"json fence", "```json\n[{\"op\":\"drop_duplicates\"}]\n```", `[{"op":"drop_duplicates"}]`},
		{"surrounding whitespace", "  ```\nphone\n```  ", "phone"},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.in); got != tt.want {
			t.Errorf("%s: StripCodeFence(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2]`, `[1,2]`},
		{"prose around array", `Here you go: [{"op":"drop_duplicates"}] hope that helps`, `[{"op":"drop_duplicates"}]`},
		{"no array", "sorry, cannot help", "sorry, cannot help"},
		{"bracket without close", "a [ b", "a [ b"},
	}
	for _, tt := range tests {
		if got := ExtractJSONArray(tt.in); got != tt.want {
			t.Errorf("%s: ExtractJSONArray(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
