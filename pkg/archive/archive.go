package archive

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/digest/pkg/content"
)

const htmlContentType = "text/html; charset=utf-8"

// Object describes an archived document.
type Object struct {
	Key  string
	URL  string
	Size int64
}

// Archive writes rendered digests to a bucket.
type Archive struct {
	client *s3.Client
	cfg    Config
}

// New builds an S3 client from cfg. No request is made.
func New(cfg Config) (*Archive, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.RetryMaxAttempts = cfg.MaxAttempts
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &Archive{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Key returns the object key for a kind and run day.
func (a *Archive) Key(kind content.Kind, day time.Time) string {
	parts := make([]string, 0, 4)
	for seg := range strings.SplitSeq(a.cfg.Prefix, "/") {
		if seg = sanitizePathSegment(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	parts = append(parts, sanitizePathSegment(kind.String()), day.Format(time.DateOnly)+".html")
	return strings.Join(parts, "/")
}

// Put uploads html for the given kind and day, replacing any earlier
// upload for the same day.
func (a *Archive) Put(ctx context.Context, kind content.Kind, day time.Time, html string) (*Object, error) {
	key := a.Key(kind, day)
	size := int64(len(html))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.cfg.Bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(html),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(htmlContentType),
		CacheControl:  aws.String("public, max-age=86400"),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &Object{Key: key, URL: a.publicURL(key), Size: size}, nil
}

func (a *Archive) publicURL(key string) string {
	if a.cfg.PublicURL != "" {
		return strings.TrimSuffix(a.cfg.PublicURL, "/") + "/" + key
	}

	if a.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(a.cfg.Endpoint, "/")
		if a.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, a.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", endpoint, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.cfg.Bucket, a.cfg.Region, key)
}

var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment strips traversal and unsafe characters from a key segment.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = pathSegmentRegex.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}
