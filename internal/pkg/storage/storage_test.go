package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestValidateIcon(t *testing.T) {
	data, mime, err := ValidateIcon(bytes.NewReader(pngHeader), MaxIconSize)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	require.Len(t, data, len(pngHeader))

	_, _, err = ValidateIcon(bytes.NewReader(nil), MaxIconSize)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, _, err = ValidateIcon(bytes.NewReader(pngHeader), 4)
	require.ErrorIs(t, err, ErrFileTooLarge)

	_, _, err = ValidateIcon(bytes.NewReader([]byte("plain text, not an image")), MaxIconSize)
	require.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestPublicURL(t *testing.T) {
	require.Equal(t, "https://cdn.test/icons/a.png", PublicURL("https://cdn.test", "", "b", "/icons/a.png"))
	require.Equal(t, "http://minio:9000/b/icons/a.png", PublicURL("", "http://minio:9000", "b", "icons/a.png"))
	require.Equal(t, "https://b.s3.amazonaws.com/icons/a.png", PublicURL("", "", "b", "icons/a.png"))
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	require.True(t, IsNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	require.False(t, IsNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	require.False(t, IsNotFound(errors.New("boom")))
}

func TestExtensionForMime(t *testing.T) {
	require.Equal(t, ".png", ExtensionForMime("image/png"))
	require.Equal(t, "", ExtensionForMime("application/pdf"))
}
