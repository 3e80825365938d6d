package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/trimtime/trimtime-api/internal/config"
	"github.com/trimtime/trimtime-api/internal/httperr"
)

const (
	maxPhotoWidth = 1024
	webpQuality   = 80
)

// PhotoStore keeps shop photos in S3, normalised to WebP.
type PhotoStore struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client:   s3.New(opts),
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3Endpoint,
	}
}

func (p *PhotoStore) Enabled() bool {
	return p.bucket != ""
}

// UploadShopPhoto decodes JPEG/PNG, downscales to at most maxPhotoWidth and
// stores the result as WebP under a stable per-shop key. Returns the public
// object URL.
func (p *PhotoStore) UploadShopPhoto(ctx context.Context, shopID uint, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("shops/%d/photo.webp", shopID)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return p.objectURL(key), nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxPhotoWidth {
		return src
	}

	h := b.Dy() * maxPhotoWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func (p *PhotoStore) objectURL(key string) string {
	if p.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", p.endpoint, p.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}
