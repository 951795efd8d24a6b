package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeQuery(t *testing.T) {
	assert.Equal(t, "samsung%20galaxy%20s24", EscapeQuery("samsung galaxy s24", "%20"))
	assert.Equal(t, "samsung+galaxy+s24", EscapeQuery("samsung galaxy s24", "+"))

	// A literal plus must not turn into a space
	assert.Equal(t, "c%2B%2B%20book", EscapeQuery("c++ book", "%20"))
	assert.Equal(t, "a%26b", EscapeQuery("a&b", "+"))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://www.jumia.com.ng/phone-123.html",
		ResolveURL("https://www.jumia.com.ng", "/phone-123.html"))
	assert.Equal(t, "https://slot.ng/phone.html",
		ResolveURL("https://www.jumia.com.ng", "https://slot.ng/phone.html"))
	assert.Equal(t, "/phone.html", ResolveURL("", "/phone.html"))
}

func TestSiteRoot(t *testing.T) {
	root := SiteRoot("https://www.jumia.com.ng/catalog/?q=")
	assert.Equal(t, "https://www.jumia.com.ng/", root)
	assert.Equal(t, "http://127.0.0.1:8080/", SiteRoot("http://127.0.0.1:8080/catalog/?q="))

	// Relative links land on the site root, not under the search path
	assert.Equal(t, "https://www.jumia.com.ng/phone-123.html", ResolveURL(root, "phone-123.html"))
	assert.Equal(t, "https://www.jumia.com.ng/phone-123.html", ResolveURL(root, "/phone-123.html"))
}
