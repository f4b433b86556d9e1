package classify

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/envelope"
	"github.com/deploymenttheory/go-assetprobe/internal/pipeline"
	"github.com/deploymenttheory/go-assetprobe/internal/resourcemap"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

// Handle processes a classification request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Build the registry and pipeline once; workers share them read-only
	registry := cipher.Default()
	if req.KeyFile != "" {
		kr, err := cipher.LoadKeyring(req.KeyFile)
		if err != nil {
			return nil, app.WrapError("failed to load key file", err)
		}
		if registry, err = cipher.NewRegistry(kr); err != nil {
			return nil, app.WrapError("failed to build publisher registry", err)
		}
	}
	p := pipeline.New(pipeline.Options{
		Registry:          registry,
		Logger:            ctx.Logger,
		UnwrapEnvelopes:   req.UnwrapEnvelopes,
		MaxUnwrappedBytes: req.MaxUnwrappedBytes,
	})
	publisher, err := p.Publisher(req.Publisher)
	if err != nil {
		return nil, app.WrapError("unknown publisher", err)
	}

	store := resourcemap.NewStore()
	if _, err := store.Load(req.ResourceMap); err != nil {
		return nil, app.WrapError("failed to load resource map", err)
	}
	sources := sourceCounts(store.Entries())

	// 3. Expand inputs
	files, err := collectFiles(req.Paths, req.Recursive)
	if err != nil {
		return nil, app.WrapError("failed to read input paths", err)
	}
	ctx.Log("starting classification", "files", len(files), "publisher", publisher.Ident(), "workers", req.Workers)

	// 4. Classify with a bounded pool; results keep input order
	results := make([]FileResult, len(files))
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		progress = app.ProgressUpdate{Total: int64(len(files)), StartedAt: startTime}
	)

	for w := 0; w < req.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = classifyFile(ctx, p, files[i], publisher, req.Fingerprint, sources)

				mu.Lock()
				progress.Completed++
				progress.ElapsedTime = time.Since(startTime)
				ctx.Progress(results[i].Name, progress.Percent())
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, app.NewError(app.ErrCodeInternal, "classification cancelled", err)
	}

	response := &Response{
		RunID:     ctx.RunID,
		Publisher: publisher.DisplayName(),
		Files:     results,
		Counts:    make(map[string]int),
		Elapsed:   time.Since(startTime),
	}
	for _, r := range results {
		if r.Failed() {
			response.Failed++
			continue
		}
		response.Counts[r.Format]++
	}

	ctx.Log("classification completed", "files", len(results), "failed", response.Failed, "elapsed", response.Elapsed)
	return response, nil
}

func classifyFile(ctx *app.Context, p *pipeline.Pipeline, path string, publisher types.PublisherID, fingerprint bool, sources map[string]int) FileResult {
	result := FileResult{Path: path, Name: filepath.Base(path)}

	f, err := p.Open(path, publisher)
	if err != nil {
		result.Error = err.Error()
		result.ErrorCode = app.ErrorCode(err)
		ctx.Error("failed to classify file", "path", path, "error", err)
		return result
	}
	defer f.Close()

	result.Size = f.Len()
	result.Format = f.Type.String()
	result.MapEntries = sources[result.Name]

	if f.Type == types.FileTypeZip {
		entries, err := envelope.ZipEntries(f.Reader)
		if err != nil {
			ctx.Log("zip directory unreadable", "path", path, "error", err)
		} else {
			result.ZipEntries = len(entries)
		}
	}

	if fingerprint {
		sum, err := fingerprintStream(f.Reader)
		if err != nil {
			ctx.Log("fingerprint failed", "path", path, "error", err)
		} else {
			result.Fingerprint = sum
		}
	}
	return result
}

// fingerprintStream hashes the preprocessed stream with BLAKE3.
func fingerprintStream(r *stream.Reader) (string, error) {
	if err := r.Rewind(); err != nil {
		return "", err
	}
	defer r.Rewind()

	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// sourceCounts counts resource map entries per source file name.
func sourceCounts(entries []resourcemap.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[filepath.Base(e.Source)]++
	}
	return counts
}

// collectFiles expands directories into the regular files they contain.
// Without recursive only the direct children of a directory are taken.
func collectFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
