package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synesthesie/gallery/internal/config"
)

func TestPresignImageGet(t *testing.T) {
	cfg := &config.Config{
		MediaS3Endpoint:        "https://s3.example.com",
		MediaS3Region:          "us-east-1",
		MediaS3AccessKeyID:     "AKIDEXAMPLE",
		MediaS3SecretAccessKey: "secret",
		MediaS3UsePathStyle:    true,
		MediaImagesBucket:      "gallery-images",
	}
	svc, err := NewS3Service(cfg)
	require.NoError(t, err)

	url, err := svc.PresignImageGet(context.Background(), "images/a.png", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://s3.example.com/gallery-images/images/a.png?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
}
