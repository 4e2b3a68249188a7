package normalize

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "ascii untouched", in: "090-1234-5678", want: "090-1234-5678"},
		{name: "full-width digits", in: "０９０１２３４５６７８", want: "09012345678"},
		{name: "full-width dash", in: "１２３－４５６７", want: "123-4567"},
		{name: "prolonged sound mark", in: "１２３ー４５６７", want: "123-4567"},
		{name: "en dash", in: "03–1234–5678", want: "03-1234-5678"},
		{name: "letters untouched", in: "ＡＢＣ１", want: "ＡＢＣ1"},
		{name: "kana untouched", in: "やまだ", want: "やまだ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "０９０ー１２３４ー５６７８", "abc－１", "１２３-４５６７", "テスト"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestChanged(t *testing.T) {
	if Changed("123") {
		t.Fatalf("ascii digits should not be reported as changed")
	}
	if !Changed("１２３") {
		t.Fatalf("full-width digits should be reported as changed")
	}
}
