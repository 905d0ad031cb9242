package extract

import (
	"reflect"
	"testing"

	"github.com/nao1215/urlsweep/internal/model"
)

func TestFromMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("inline links", func(t *testing.T) {
		t.Parallel()

		urls := FromMarkdown(`See [the guide](https://docs.test/guide) and [api](https://api.test/v1).`)
		if len(urls) < 2 {
			t.Fatalf("expected at least 2 URLs, got %v", urls)
		}
		if urls[0] != "https://docs.test/guide" || urls[1] != "https://api.test/v1" {
			t.Errorf("unexpected inline targets: %v", urls)
		}
	})

	t.Run("relative inline target is still extracted raw", func(t *testing.T) {
		t.Parallel()

		// Eligibility is the filter's job, not the extractor's.
		urls := FromMarkdown(`[local](./relative.md)`)
		if !contains(urls, "./relative.md") {
			t.Errorf("expected raw relative target, got %v", urls)
		}
	})

	t.Run("reference definitions at line start", func(t *testing.T) {
		t.Parallel()

		content := "intro\n[ref]: https://ref.test/page\nbody [ref]\n"
		urls := FromMarkdown(content)
		if !contains(urls, "https://ref.test/page") {
			t.Errorf("expected reference target, got %v", urls)
		}
	})

	t.Run("indented reference definition is not matched", func(t *testing.T) {
		t.Parallel()

		// Only line-start definitions count; the bare-URL pattern may
		// still pick the URL up, which is fine.
		urls := FromMarkdown("  [ref]: ./not-a-definition\n")
		if contains(urls, "./not-a-definition") {
			t.Errorf("indented definition should not match: %v", urls)
		}
	})

	t.Run("bare URLs bounded by punctuation", func(t *testing.T) {
		t.Parallel()

		urls := FromMarkdown("Visit https://bare.test/path, or (https://paren.test/x) today.")
		if !contains(urls, "https://bare.test/path") {
			t.Errorf("expected bare URL without trailing comma, got %v", urls)
		}
		if !contains(urls, "https://paren.test/x") {
			t.Errorf("expected URL without closing paren, got %v", urls)
		}
	})

	t.Run("duplicates are retained", func(t *testing.T) {
		t.Parallel()

		urls := FromMarkdown("[a](https://dup.test) [b](https://dup.test)")
		n := 0
		for _, u := range urls {
			if u == "https://dup.test" {
				n++
			}
		}
		if n < 2 {
			t.Errorf("expected duplicate raw URLs, got %v", urls)
		}
	})
}

func TestFromHTML(t *testing.T) {
	t.Parallel()

	t.Run("href and src attributes", func(t *testing.T) {
		t.Parallel()

		content := `<a HREF="https://link.test/a">a</a><img src='https://img.test/b.png'>`
		urls := FromHTML(content)

		want := []string{"https://link.test/a", "https://img.test/b.png"}
		if !reflect.DeepEqual(urls, want) {
			t.Errorf("expected %v, got %v", want, urls)
		}
	})

	t.Run("relative targets are ignored", func(t *testing.T) {
		t.Parallel()

		urls := FromHTML(`<a href="/relative">x</a><a href="mailto:a@b.test">y</a>`)
		if len(urls) != 0 {
			t.Errorf("expected no URLs, got %v", urls)
		}
	})
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	t.Run("generic files run both extractors", func(t *testing.T) {
		t.Parallel()

		file := model.ScannedFile{
			Content:  "[md](https://md.test) <a href=\"https://html.test\">h</a>",
			Category: model.CategoryGeneric,
		}
		urls := FromFile(file)
		if !contains(urls, "https://md.test") || !contains(urls, "https://html.test") {
			t.Errorf("expected both extractors to run, got %v", urls)
		}
	})

	t.Run("markdown files do not run html extraction", func(t *testing.T) {
		t.Parallel()

		file := model.ScannedFile{
			Content:  `<a href="https://html-only.test">h</a>`,
			Category: model.CategoryMarkdown,
		}
		// The bare-URL pattern still sees the absolute URL inside the
		// attribute; it stops at the closing quote.
		urls := FromFile(file)
		if contains(urls, `https://html-only.test">h</a>`) {
			t.Errorf("html extraction leaked into markdown: %v", urls)
		}
	})
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
