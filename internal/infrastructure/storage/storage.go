// Package storage holds the photo bucket drivers.
package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBucket is where letter photos are written when no bucket is configured.
const DefaultBucket = "letter-photos"

// Config holds the object storage settings shared by both drivers.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PublicURL is the base objects are served from. Empty means
	// "<scheme>://<endpoint>/<bucket>".
	PublicURL string
}

func (c Config) bucket() string {
	if c.Bucket == "" {
		return DefaultBucket
	}
	return c.Bucket
}

// publicBase returns the prefix object names are appended to.
func (c Config) publicBase() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	endpoint := strings.TrimRight(c.Endpoint, "/")
	if !strings.Contains(endpoint, "://") {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		endpoint = scheme + "://" + endpoint
	}
	return endpoint + "/" + c.bucket()
}

func objectURL(base, name string) string {
	return base + "/" + url.PathEscape(name)
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// publicReadPolicy lets anyone GET objects in bucket, nothing else.
func publicReadPolicy(bucket string) (string, error) {
	p := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: map[string][]string{"AWS": {"*"}},
			Action:    []string{"s3:GetObject"},
			Resource:  []string{"arn:aws:s3:::" + bucket + "/*"},
		}},
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode bucket policy: %w", err)
	}
	return string(b), nil
}
