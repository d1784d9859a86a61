package referral

import (
	"net/url"
	"strings"
)

const shareText = "Join Flowva and start earning rewards! Use my referral link:"

// Link appends the ref query parameter to base
func Link(base, code string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base + "?ref=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("ref", code)
	u.RawQuery = q.Encode()
	return u.String()
}

// Share builds the social share URLs for link
func Share(link string) ShareLinks {
	text := escape(shareText)
	u := escape(link)
	return ShareLinks{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u + "&quote=" + text,
		Twitter:  "https://twitter.com/intent/tweet?text=" + text + "&url=" + u,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
		WhatsApp: "https://wa.me/?text=" + text + "%20" + u,
	}
}

// escape matches encodeURIComponent, which leaves spaces as %20
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
