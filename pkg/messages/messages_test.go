package messages

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults_AreJapanese(t *testing.T) {
	table := Defaults()
	if table.Locale() != "ja" {
		t.Fatalf("expected ja locale, got %q", table.Locale())
	}
	if got := table.Message(RequiredName); got != "お名前を入力してください。" {
		t.Fatalf("unexpected requiredName message %q", got)
	}
}

func TestBuiltin_EveryLocaleHasEveryKey(t *testing.T) {
	ja := Builtin("ja").Keys()
	for _, locale := range Locales() {
		keys := Builtin(locale).Keys()
		if diff := cmp.Diff(ja, keys); diff != "" {
			t.Fatalf("locale %s key mismatch (-ja +%s):\n%s", locale, locale, diff)
		}
	}
}

func TestBuiltin_RegionFallsBackToLanguage(t *testing.T) {
	if got := Builtin("en-US").Locale(); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
	if got := Builtin("fr").Locale(); got != DefaultLocale {
		t.Fatalf("expected default locale for unknown, got %q", got)
	}
}

func TestMerge_OverridesKeyByKey(t *testing.T) {
	base := Builtin("en")
	merged := base.Merge(map[string]string{
		"requiredName": "  Who are you?  ",
		"emesse1":      "Pick a plan.",
		"tel":          "   ",
		"email":        "<b>Bad</b> email & such",
	})

	if got := merged.Message(RequiredName); got != "Who are you?" {
		t.Fatalf("expected trimmed override, got %q", got)
	}
	if got := merged.Message(Key("emesse1")); got != "Pick a plan." {
		t.Fatalf("expected custom key, got %q", got)
	}
	if got := merged.Message(Tel); got != base.Message(Tel) {
		t.Fatalf("blank override should keep built-in, got %q", got)
	}
	if got := merged.Message(Email); got != "Bad email & such" {
		t.Fatalf("expected markup stripped, got %q", got)
	}
	if got := base.Message(RequiredName); got != "Please enter your name." {
		t.Fatalf("merge must not mutate the receiver, got %q", got)
	}
}

func TestResolve_FallsBackForUnknownKeys(t *testing.T) {
	table := Defaults()
	if got := table.Message(Key("emesse9")); got != table.Message(Required) {
		t.Fatalf("expected generic required fallback, got %q", got)
	}
	if got := table.Resolve(Key("emesse9"), Checkbox); got != table.Message(Checkbox) {
		t.Fatalf("expected checkbox fallback, got %q", got)
	}

	var zero Table
	if got := zero.Message(Tel); got != Defaults().Message(Tel) {
		t.Fatalf("zero table should behave like defaults, got %q", got)
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"locale":"en","messages":{"required":"Needed."}}`)},
		"ja.yaml": {Data: []byte("messages:\n  required: 必須です。\n")},
		"bad.txt": {Data: []byte(`{"messages": [`)},
	}

	en, err := LoadFS(fsys, "en.json")
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if en.Locale() != "en" || en.Message(Required) != "Needed." {
		t.Fatalf("unexpected json table: %q %q", en.Locale(), en.Message(Required))
	}

	ja, err := LoadFS(fsys, "ja.yaml")
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if ja.Locale() != "ja" || ja.Message(Required) != "必須です。" {
		t.Fatalf("unexpected yaml table: %q %q", ja.Locale(), ja.Message(Required))
	}

	if _, err := LoadFS(fsys, "bad.txt"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadFS(fsys, "missing.json"); err == nil {
		t.Fatalf("expected read error")
	}
}
