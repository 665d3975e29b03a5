package post

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":                  "hello-world",
		"  Leading and trailing  ":     "leading-and-trailing",
		"Go 1.24 -- what's new?":       "go-124-whats-new",
		"multiple   spaces\tand\ntabs": "multiple-spaces-and-tabs",
		"---dashes---":                 "dashes",
		"Ünïcödé Tïtle":                "ncd-ttle",
		"!!!":                          "",
		"":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	titles := []string{"Hello World", "A -- B", "  x  y  ", "Already-a-slug", "Ünïcödé"}
	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "slug of %q is not stable", title)
		assert.Equal(t, once, Slugify(title), "slug of %q is not deterministic", title)
	}
}

func TestUniqueSlug(t *testing.T) {
	created := time.UnixMilli(1700000000123)
	assert.Equal(t, "hello-world-1700000000123", UniqueSlug("Hello World", created))
	assert.Equal(t, "1700000000123", UniqueSlug("???", created))
}

func TestClone(t *testing.T) {
	img := "http://x/img.png"
	p := &Post{ID: 1, Title: "t", Image: &img}
	cp := p.Clone()
	*cp.Image = "changed"
	cp.Title = "other"
	assert.Equal(t, "http://x/img.png", *p.Image)
	assert.Equal(t, "t", p.Title)
	assert.Nil(t, (*Post)(nil).Clone())
}
