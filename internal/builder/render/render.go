// Package render turns a page's ordered content blocks into storefront
// HTML. Rendering is a total function of (type, settings, content,
// language): an unrecognized block type yields a placeholder comment and
// never fails the rest of the page.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/tijara/storefront-service/internal/model"
)

const (
	BlockHero         = "hero"
	BlockBanner       = "banner"
	BlockProductGrid  = "product_grid"
	BlockRichText     = "rich_text"
	BlockImageGallery = "image_gallery"
	BlockFeatures     = "features"
	BlockNewsletter   = "newsletter"
)

// Render walks the block list in order and concatenates each section.
func Render(blocks []model.ContentBlock, lang string) string {
	var sb strings.Builder
	dir := "ltr"
	if lang == model.LangAR {
		dir = "rtl"
	}
	fmt.Fprintf(&sb, `<main dir=%q lang=%q>`, dir, lang)
	for _, b := range blocks {
		sb.WriteString(RenderBlock(b, lang))
	}
	sb.WriteString(`</main>`)
	return sb.String()
}

// RenderBlock renders one section. All content passes through HTML
// escaping; settings drive structure only.
func RenderBlock(b model.ContentBlock, lang string) string {
	switch b.Type {
	case BlockHero:
		return renderHero(b, lang)
	case BlockBanner:
		return renderBanner(b, lang)
	case BlockProductGrid:
		return renderProductGrid(b, lang)
	case BlockRichText:
		return renderRichText(b, lang)
	case BlockImageGallery:
		return renderImageGallery(b)
	case BlockFeatures:
		return renderFeatures(b, lang)
	case BlockNewsletter:
		return renderNewsletter(b, lang)
	default:
		return fmt.Sprintf("<!-- unknown block type %q skipped -->", b.Type)
	}
}

func renderHero(b model.ContentBlock, lang string) string {
	title := text(b, "title", lang)
	subtitle := text(b, "subtitle", lang)
	cta := text(b, "cta", lang)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="hero" data-block=%q>`, b.ID)
	if img := settingString(b, "image"); img != "" {
		fmt.Fprintf(&sb, `<img src=%q alt=%q/>`, html.EscapeString(img), title)
	}
	fmt.Fprintf(&sb, `<h1>%s</h1>`, title)
	if subtitle != "" {
		fmt.Fprintf(&sb, `<p>%s</p>`, subtitle)
	}
	if cta != "" {
		fmt.Fprintf(&sb, `<a class="cta" href=%q>%s</a>`, html.EscapeString(settingString(b, "cta_link")), cta)
	}
	sb.WriteString(`</section>`)
	return sb.String()
}

func renderBanner(b model.ContentBlock, lang string) string {
	return fmt.Sprintf(`<section class="banner" data-block=%q><p>%s</p></section>`,
		b.ID, text(b, "text", lang))
}

// renderProductGrid emits the grid shell; the storefront frontend hydrates
// it from the products endpoint using the data attributes.
func renderProductGrid(b model.ContentBlock, lang string) string {
	limit := settingInt(b, "limit", 8)
	columns := settingInt(b, "columns", 4)
	category := settingString(b, "category")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="product-grid" data-block=%q data-limit="%d" data-columns="%d"`,
		b.ID, limit, columns)
	if category != "" {
		fmt.Fprintf(&sb, ` data-category=%q`, html.EscapeString(category))
	}
	sb.WriteString(`>`)
	if title := text(b, "title", lang); title != "" {
		fmt.Fprintf(&sb, `<h2>%s</h2>`, title)
	}
	sb.WriteString(`</section>`)
	return sb.String()
}

func renderRichText(b model.ContentBlock, lang string) string {
	return fmt.Sprintf(`<section class="rich-text" data-block=%q>%s</section>`,
		b.ID, text(b, "body", lang))
}

func renderImageGallery(b model.ContentBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="gallery" data-block=%q>`, b.ID)
	if imgs, ok := b.Settings["images"].([]interface{}); ok {
		for _, raw := range imgs {
			if src, ok := raw.(string); ok {
				fmt.Fprintf(&sb, `<img src=%q/>`, html.EscapeString(src))
			}
		}
	}
	sb.WriteString(`</section>`)
	return sb.String()
}

func renderFeatures(b model.ContentBlock, lang string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<section class="features" data-block=%q>`, b.ID)
	if title := text(b, "title", lang); title != "" {
		fmt.Fprintf(&sb, `<h2>%s</h2>`, title)
	}
	// Feature items live in content as item_1, item_2, ... in list order.
	count := settingInt(b, "items", 3)
	sb.WriteString(`<ul>`)
	for i := 1; i <= count; i++ {
		item := text(b, fmt.Sprintf("item_%d", i), lang)
		if item == "" {
			continue
		}
		fmt.Fprintf(&sb, `<li>%s</li>`, item)
	}
	sb.WriteString(`</ul></section>`)
	return sb.String()
}

func renderNewsletter(b model.ContentBlock, lang string) string {
	return fmt.Sprintf(
		`<section class="newsletter" data-block=%q><h2>%s</h2><form><input type="email"/><button>%s</button></form></section>`,
		b.ID, text(b, "title", lang), text(b, "button", lang))
}

func text(b model.ContentBlock, field, lang string) string {
	if b.Content == nil {
		return ""
	}
	return html.EscapeString(b.Content[field].Get(lang))
}

func settingString(b model.ContentBlock, key string) string {
	if v, ok := b.Settings[key].(string); ok {
		return v
	}
	return ""
}

func settingInt(b model.ContentBlock, key string, fallback int) int {
	switch v := b.Settings[key].(type) {
	case float64:
		// json decodes numbers into float64.
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
