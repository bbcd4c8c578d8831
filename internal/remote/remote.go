/*
Copyright © 2018 the plantdata authors.
This file is part of plantdata.

plantdata is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plantdata is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plantdata.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package remote moves input and output files between the local
// filesystem and web servers or blob storage.
package remote

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cenkalti/backoff"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
	"github.com/sirupsen/logrus"
)

// Fetcher makes remote files available locally.
type Fetcher struct {
	// Dir is the directory downloaded files are saved in. If empty,
	// a temporary directory is created on first use.
	Dir string

	// Client is used for HTTP downloads. If nil, http.DefaultClient is used.
	Client *http.Client

	// MaxRetries is the number of times a failed HTTP download is retried.
	MaxRetries uint64

	// Log receives download progress and retry messages. If nil,
	// logrus.StandardLogger() is used.
	Log logrus.FieldLogger
}

func (f *Fetcher) log() logrus.FieldLogger {
	if f.Log == nil {
		return logrus.StandardLogger()
	}
	return f.Log
}

func (f *Fetcher) dir() (string, error) {
	if f.Dir != "" {
		return f.Dir, nil
	}
	dir, err := ioutil.TempDir("", "plantdata")
	if err != nil {
		return "", fmt.Errorf("remote: failed creating temporary download directory: %v", err)
	}
	f.Dir = dir
	return dir, nil
}

// Fetch returns a local path for the file at path. If path is an existing
// local file, it is returned unchanged. If it is an http or https URL or a
// blob (see IsBlob), the file is downloaded and the path to the downloaded
// file is returned.
func (f *Fetcher) Fetch(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	switch {
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		return f.fetchHTTP(ctx, path)
	case IsBlob(path):
		return f.fetchBlob(ctx, path)
	default:
		return "", fmt.Errorf("remote: file %s does not exist", path)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("remote: %v", err)
	}
	dir, err := f.dir()
	if err != nil {
		return "", err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	out, err := localName(dir, u.Path)
	if err != nil {
		return "", err
	}
	log := f.log().WithField("url", path)

	var status string
	err = backoff.RetryNotify(
		func() error {
			req, err := http.NewRequest("GET", path, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req.WithContext(ctx))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 500 {
				return fmt.Errorf("remote: downloading %s: %s", path, resp.Status)
			}
			if resp.StatusCode != http.StatusOK {
				// Client errors will not be fixed by retrying.
				status = resp.Status
				return nil
			}
			w, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("remote: failed creating file for download: %v", err)
			}
			if _, err = io.Copy(w, resp.Body); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.MaxRetries),
		func(err error, d time.Duration) {
			log.Warnf("%v: retrying in %v", err, d)
		},
	)
	if err != nil {
		return "", err
	}
	if status != "" {
		return "", fmt.Errorf("remote: downloading %s: %s", path, status)
	}
	log.WithField("file", out).Debug("downloaded")
	return out, nil
}

// localName creates an empty file in dir for downloading the file at
// path and returns its name. Names are unique within dir, so files from
// different locations that share a base name do not overwrite each other.
// The base name of path is kept as the suffix so that file types can
// still be recognized by extension.
func localName(dir, path string) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == "/" {
		base = "download"
	}
	w, err := ioutil.TempFile(dir, "*-"+base)
	if err != nil {
		return "", fmt.Errorf("remote: failed creating file for download: %v", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("remote: failed creating file for download: %v", err)
	}
	return w.Name(), nil
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// The currently accepted storage providers are "file" for the local filesystem
// (e.g., for testing), "gs" for Google Cloud Storage, and "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("remote.OpenBucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.NewBucket(u.Hostname())
	case "gs":
		return gsBucket(ctx, u.Hostname())
	case "s3":
		return s3Bucket(ctx, u.Hostname())
	default:
		return nil, fmt.Errorf("remote.OpenBucket: invalid provider %s", u.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s, err := session.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, s, name)
}

// split returns the bucket and key of a blob path.
func split(path string) (bucket, key string, err error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", fmt.Errorf("remote: %v", err)
	}
	return u.Scheme + "://" + u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

func (f *Fetcher) fetchBlob(ctx context.Context, path string) (string, error) {
	bucketName, key, err := split(path)
	if err != nil {
		return "", err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return "", err
	}
	dir, err := f.dir()
	if err != nil {
		return "", err
	}
	r, err := bucket.NewReader(ctx, key)
	if err != nil {
		return "", fmt.Errorf("remote: opening %s: %v", path, err)
	}
	defer r.Close()
	out, err := localName(dir, key)
	if err != nil {
		return "", err
	}
	w, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("remote: failed creating file for download: %v", err)
	}
	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("remote: downloading %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	f.log().WithFields(logrus.Fields{"blob": path, "file": out}).Debug("downloaded")
	return out, nil
}

// Upload copies the local file src to the blob dst.
func Upload(ctx context.Context, src, dst string) error {
	r, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("remote: opening file '%s' for upload: %v", src, err)
	}
	defer r.Close()
	bucketName, key, err := split(dst)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("remote: opening bucket to upload file '%s': %v", dst, err)
	}
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("remote: opening writer to upload file '%s': %v", dst, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("remote: uploading file '%s' to '%s': %v", src, dst, err)
	}
	return w.Close()
}
