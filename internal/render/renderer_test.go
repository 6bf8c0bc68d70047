package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/cafefinder/internal/models"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderCards_Empty(t *testing.T) {
	renderer := MustNew()

	html, err := renderer.RenderCards(nil)
	require.NoError(t, err)
	assert.Equal(t, "", html)

	html, err = renderer.RenderCards([]models.Place{})
	require.NoError(t, err)
	assert.Equal(t, "", html)
}

func TestRenderCards_OrderAndContent(t *testing.T) {
	renderer := MustNew()

	html, err := renderer.RenderCards([]models.Place{
		models.NewPlace("First", "/photo?reference=abc", "One"),
		models.NewPlace("Second", "/static/no_image.svg", "Two"),
	})
	require.NoError(t, err)

	doc := parse(t, html)
	cards := doc.Find("div.border")
	require.Equal(t, 2, cards.Length())

	assert.Equal(t, "First", cards.Eq(0).Find("h3").Text())
	assert.Equal(t, "One", cards.Eq(0).Find("div.text-gray-700").Text())
	src, _ := cards.Eq(0).Find("img").Attr("src")
	assert.Equal(t, "/photo?reference=abc", src)

	assert.Equal(t, "Second", cards.Eq(1).Find("h3").Text())
	src, _ = cards.Eq(1).Find("img").Attr("src")
	assert.Equal(t, "/static/no_image.svg", src)
}

func TestRenderCards_EscapesText(t *testing.T) {
	renderer := MustNew()

	html, err := renderer.RenderCards([]models.Place{
		models.NewPlace(`Tom & Jerry's "<b>Cafe</b>"`, "/photo?reference=a&b", `<script>alert(1)</script>`),
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<b>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&amp;")
	assert.Contains(t, html, "&lt;script&gt;")

	doc := parse(t, html)
	assert.Equal(t, `Tom & Jerry's "<b>Cafe</b>"`, doc.Find("h3").Text())
	assert.Equal(t, `<script>alert(1)</script>`, doc.Find("div.text-gray-700").Text())
	src, _ := doc.Find("img").Attr("src")
	assert.Equal(t, "/photo?reference=a&b", src)
}

func TestRenderPage_PrefillsForm(t *testing.T) {
	renderer := MustNew()

	query := models.SearchQuery{
		Location:   "47.5,19.0",
		Keyword:    `"quoted" <kw>`,
		Type:       "cafe",
		UserPrompt: "Any </textarea> tricks?",
	}
	html, err := renderer.RenderPage("", query)
	require.NoError(t, err)

	doc := parse(t, html)
	location, _ := doc.Find("input#location").Attr("value")
	assert.Equal(t, "47.5,19.0", location)
	keyword, _ := doc.Find("input#keyword").Attr("value")
	assert.Equal(t, `"quoted" <kw>`, keyword)
	placeType, _ := doc.Find("input#type").Attr("value")
	assert.Equal(t, "cafe", placeType)
	assert.Equal(t, "Any </textarea> tricks?", doc.Find("textarea#prompt").Text())

	assert.Equal(t, 1, doc.Find("form#searchForm").Length())
	assert.Equal(t, 0, doc.Find("#results").Children().Length())
	assert.Contains(t, html, "X-Requested-With")
	assert.Contains(t, html, "cdn.tailwindcss.com")
}

func TestRenderPage_EmbedsCards(t *testing.T) {
	renderer := MustNew()

	cards, err := renderer.RenderCards([]models.Place{models.NewPlace("Cafe", "/static/no_image.svg", "Nice")})
	require.NoError(t, err)

	html, err := renderer.RenderPage(cards, models.DefaultSearchQuery())
	require.NoError(t, err)

	doc := parse(t, html)
	assert.Equal(t, "Cafe", doc.Find("#results h3").Text())
}
