package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"/sounds/corefire/theme.mp3":           "sounds/corefire/theme.mp3",
		"sounds/corefire/theme.mp3":            "sounds/corefire/theme.mp3",
		"assets/sounds/corefire/track1.mp3":    "sounds/corefire/track1.mp3",
		"/abs/repo/assets/sounds/a/track2.ogg": "sounds/a/track2.ogg",
		"/sounds/../sounds/README.txt":         "sounds/README.txt",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasAudio(t *testing.T) {
	if !HasAudio("/sounds/README.txt") {
		t.Fatal("expected embedded sounds directory")
	}
	if HasAudio("/sounds/corefire/theme.mp3") {
		t.Fatal("no track files are embedded")
	}
}
