package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/pageza/fitbuddy/backend/internal/types"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 client the loader needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads a catalog from a local file or an S3 object
type Loader struct {
	s3 ObjectGetter
}

// NewLoader creates a Loader. getter may be nil when only local files are used.
func NewLoader(getter ObjectGetter) *Loader {
	return &Loader{s3: getter}
}

// IsS3Location reports whether location is an s3://bucket/key URI
func IsS3Location(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// Load reads and decodes the catalog at location
func (l *Loader) Load(ctx context.Context, location string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if IsS3Location(location) {
		data, err = l.readS3(ctx, location)
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			err = fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	exercises, err := Decode(data, path.Ext(location))
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", location, err)
	}
	return New(exercises), nil
}

func (l *Loader) readS3(ctx context.Context, location string) ([]byte, error) {
	if l.s3 == nil {
		return nil, errors.New("catalog location is on S3 but no S3 client is configured")
	}
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object: %w", err)
	}
	return data, nil
}

// ParseS3Location splits s3://bucket/key into its parts
func ParseS3Location(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !IsS3Location(location) || !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q, expected s3://bucket/key", location)
	}
	return bucket, key, nil
}

// Decode parses a catalog document. ext selects YAML for .yaml and .yml, JSON otherwise.
func Decode(data []byte, ext string) ([]types.Exercise, error) {
	var exercises []types.Exercise
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &exercises); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&exercises); err != nil {
			return nil, err
		}
	}
	if exercises == nil {
		exercises = []types.Exercise{}
	}
	return exercises, nil
}
