package referral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	require.Equal(t, "https://app.flowvahub.com/signup/?ref=ann12", Link("https://app.flowvahub.com/signup/", "ann12"))
	require.Equal(t, "https://x.test/join?ref=ann12&src=mail", Link("https://x.test/join?src=mail", "ann12"))
}

func TestShare(t *testing.T) {
	links := Share("https://app.flowvahub.com/signup/?ref=ann12")
	encoded := "https%3A%2F%2Fapp.flowvahub.com%2Fsignup%2F%3Fref%3Dann12"

	require.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url="+encoded, links.LinkedIn)
	require.Contains(t, links.Twitter, "text=Join%20Flowva%20and%20start%20earning%20rewards%21")
	require.Contains(t, links.Facebook, "u="+encoded+"&quote=")
	require.Contains(t, links.WhatsApp, "%20"+encoded)
}
