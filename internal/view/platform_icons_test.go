package view

import (
	"strings"
	"testing"
)

func TestPlatformOptionsOrder(t *testing.T) {
	options := PlatformOptions()
	want := []string{"facebook", "github", "instagram", "x", "youtube", "tiktok", "twitch", "linkedin"}

	if len(options) != len(want) {
		t.Fatalf("expected %d platforms, got %d", len(want), len(options))
	}
	for i, name := range want {
		if options[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, options[i].Name)
		}
		if !strings.HasPrefix(options[i].Icon, "<svg") {
			t.Fatalf("platform %s should carry inline svg", name)
		}
	}
}

func TestPlatformIconSVGFallback(t *testing.T) {
	if got := PlatformIconSVG("GitHub"); got != platformIconLookup["github"].SVG {
		t.Fatalf("lookup should be case insensitive")
	}
	fallback := PlatformIconSVG("")
	if fallback != defaultPlatformIcon.SVG {
		t.Fatalf("empty name should fall back to default icon")
	}
	if PlatformIconSVG("myspace") != fallback {
		t.Fatalf("unknown platform should fall back to default icon")
	}
}
