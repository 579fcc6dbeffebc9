package track

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCompany(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{name: "two names", text: "{Konami,Square Enix}", want: []string{"Konami", "Square Enix"}},
		{name: "single name", text: "{Konami}", want: []string{"Konami"}},
		{name: "empty group", text: "{}", want: nil},
		{name: "only whitespace inside", text: "{   }", want: nil},
		{name: "trailing comma", text: "{Konami,Square Enix,}", want: []string{"Konami", "Square Enix"}},
		{name: "names are trimmed", text: "{ Gary , Amim }", want: []string{"Gary", "Amim"}},
		{name: "empty entries dropped", text: "{A,,B}", want: []string{"A", "B"}},
		{name: "duplicates preserved", text: "{A,A}", want: []string{"A", "A"}},
		{name: "surrounding whitespace", text: "  {Gary}  ", want: []string{"Gary"}},
		{name: "no braces", text: "A,B", wantErr: true},
		{name: "missing close", text: "{A,B", wantErr: true},
		{name: "missing open", text: "A,B}", wantErr: true},
		{name: "empty string", text: "", wantErr: true},
		{name: "lone brace", text: "{", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompany(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompany(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCompany) {
					t.Errorf("ParseCompany(%q) error = %v, want ErrInvalidCompany", tt.text, err)
				}
				return
			}
			if !reflect.DeepEqual(got.Names, tt.want) {
				t.Errorf("ParseCompany(%q) = %v, want %v", tt.text, got.Names, tt.want)
			}
		})
	}
}

func TestCompanyString(t *testing.T) {
	c, err := ParseCompany("{Gary, Amim}")
	if err != nil {
		t.Fatalf("ParseCompany() error = %v", err)
	}
	if got := c.String(); got != "{Gary, Amim}" {
		t.Errorf("String() = %q, want %q", got, "{Gary, Amim}")
	}
	if c.Empty() {
		t.Error("Empty() = true for a two-name group")
	}
}
