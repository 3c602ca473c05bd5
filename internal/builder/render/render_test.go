package render

import (
	"strings"
	"testing"

	"github.com/tijara/storefront-service/internal/model"
)

func block(id, btype string, settings map[string]interface{}, content map[string]model.LocalizedText) model.ContentBlock {
	return model.ContentBlock{ID: id, Type: btype, Settings: settings, Content: content}
}

func TestRender_UnknownTypeDoesNotBreakPage(t *testing.T) {
	blocks := []model.ContentBlock{
		block("b1", BlockBanner, nil, map[string]model.LocalizedText{
			"text": {AR: "عرض خاص", EN: "Special offer"},
		}),
		block("b2", "countdown_timer", nil, nil), // not a known type
		block("b3", BlockRichText, nil, map[string]model.LocalizedText{
			"body": {EN: "About us"},
		}),
	}

	out := Render(blocks, model.LangEN)

	if !strings.Contains(out, "Special offer") {
		t.Error("banner before the unknown block should render")
	}
	if !strings.Contains(out, "About us") {
		t.Error("rich text after the unknown block should render")
	}
	if !strings.Contains(out, `unknown block type "countdown_timer"`) {
		t.Error("unknown block should leave a placeholder comment")
	}
}

func TestRender_LanguageSelectionAndDirection(t *testing.T) {
	blocks := []model.ContentBlock{
		block("b1", BlockHero, nil, map[string]model.LocalizedText{
			"title": {AR: "مرحبا", EN: "Welcome"},
		}),
	}

	ar := Render(blocks, model.LangAR)
	if !strings.Contains(ar, "مرحبا") {
		t.Error("arabic render should use the ar sub-value")
	}
	if !strings.Contains(ar, `dir="rtl"`) {
		t.Error("arabic render should be rtl")
	}

	en := Render(blocks, model.LangEN)
	if !strings.Contains(en, "Welcome") {
		t.Error("english render should use the en sub-value")
	}
	if !strings.Contains(en, `dir="ltr"`) {
		t.Error("english render should be ltr")
	}
}

func TestRender_LanguageFallback(t *testing.T) {
	blocks := []model.ContentBlock{
		block("b1", BlockBanner, nil, map[string]model.LocalizedText{
			"text": {EN: "English only"},
		}),
	}

	out := Render(blocks, model.LangAR)
	if !strings.Contains(out, "English only") {
		t.Error("missing ar value should fall back to en")
	}
}

func TestRenderBlock_EscapesContent(t *testing.T) {
	b := block("b1", BlockBanner, nil, map[string]model.LocalizedText{
		"text": {EN: `<script>alert("x")</script>`},
	})

	out := RenderBlock(b, model.LangEN)
	if strings.Contains(out, "<script>") {
		t.Fatal("content must be HTML-escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatal("escaped content should still be present")
	}
}

func TestRenderBlock_ProductGridSettings(t *testing.T) {
	b := block("grid", BlockProductGrid,
		map[string]interface{}{"limit": float64(12), "columns": float64(3), "category": "shoes"},
		map[string]model.LocalizedText{"title": {EN: "Best sellers"}})

	out := RenderBlock(b, model.LangEN)
	for _, want := range []string{`data-limit="12"`, `data-columns="3"`, `data-category="shoes"`, "Best sellers"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestRenderBlock_ProductGridDefaults(t *testing.T) {
	b := block("grid", BlockProductGrid, nil, nil)
	out := RenderBlock(b, model.LangEN)
	if !strings.Contains(out, `data-limit="8"`) || !strings.Contains(out, `data-columns="4"`) {
		t.Fatalf("defaults not applied: %q", out)
	}
}

func TestRender_DeterministicOrder(t *testing.T) {
	blocks := []model.ContentBlock{
		block("first", BlockBanner, nil, map[string]model.LocalizedText{"text": {EN: "AAA"}}),
		block("second", BlockBanner, nil, map[string]model.LocalizedText{"text": {EN: "BBB"}}),
	}

	out := Render(blocks, model.LangEN)
	if strings.Index(out, "AAA") > strings.Index(out, "BBB") {
		t.Fatal("blocks must render in list order")
	}
}
