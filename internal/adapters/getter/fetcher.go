// Package getter fetches the source document through hashicorp/go-getter,
// which covers local files, git repositories and object stores
// (e.g. "file::./packets.json", "git::https://host/repo.git//data.json",
// "s3::https://bucket.s3.amazonaws.com/packets.json").
package getter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-getter"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/source"
	"github.com/bft-labs/i2p/pkg/log"
)

// Fetcher implements ports.SourceFetcher with go-getter.
type Fetcher struct {
	src     string
	pwd     string
	pwdErr  error
	timeout time.Duration
	logger  log.Logger
}

var getwd = os.Getwd

// NewFetcher creates a fetcher for src. Relative file paths resolve against
// the working directory at construction time. A positive timeout bounds
// each Fetch call.
func NewFetcher(src string, timeout time.Duration, logger log.Logger) *Fetcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	pwd, err := getwd()
	if err != nil {
		logger.Warn("resolve working directory", log.String("src", src), log.Err(err))
	}
	return &Fetcher{src: src, pwd: pwd, pwdErr: err, timeout: timeout, logger: logger}
}

// Fetch downloads src into a temporary directory and parses it.
func (f *Fetcher) Fetch(ctx context.Context) (domain.SourceDocument, error) {
	start := time.Now()

	if f.pwdErr != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: fmt.Errorf("resolve working directory: %w", f.pwdErr)}
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "i2p-source-*")
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: fmt.Errorf("create temp dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "document.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  f.src,
		Dst:  dst,
		Pwd:  f.pwd,
		Mode: getter.ClientModeFile,
	}
	err = client.Get()
	// go-getter flattens its errors to text, so a cancelled or expired
	// context is checked separately.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if err != nil {
			ctxErr = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: ctxErr}
	}
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: err}
	}

	info, err := os.Stat(dst)
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: err}
	}
	if info.Size() > source.MaxDocumentSize {
		return domain.SourceDocument{}, &domain.FetchError{
			URL: f.src,
			Err: fmt.Errorf("document size %d exceeds limit of %d bytes", info.Size(), source.MaxDocumentSize),
		}
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.src, Err: err}
	}

	doc, err := source.Decode(data)
	if err != nil {
		return domain.SourceDocument{}, err
	}

	f.logger.Debug("fetched source document",
		log.String("src", f.src),
		log.Int("bytes", len(data)),
		log.Duration("took", time.Since(start)),
	)
	return doc, nil
}
