package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/samurai100996/property-preview/models"
)

// MaxFileSize is the per-file upload cap.
const MaxFileSize = 5 << 20 // 5 MiB

// UploadFile describes one user-selected file before it reaches the blob
// store. Open is called at upload time so the pipeline never buffers the
// whole batch in memory.
type UploadFile struct {
	Name string
	Type string
	Size int64
	Open func() (io.ReadCloser, error)
}

// ProgressFunc receives a monotonically non-decreasing percentage (0-100)
// keyed by the original filename.
type ProgressFunc func(name string, pct int)

// BatchResult reports one batch: successful descriptors ordered by the
// original selection index, and per-file errors keyed by filename.
// A file never appears in both.
type BatchResult struct {
	Files  []models.FileDescriptor `json:"files"`
	Errors map[string]string       `json:"errors"`
}

// Pipeline uploads batches of files concurrently and accumulates the
// resulting descriptors. Busy is true from the moment any batch starts
// until every file of every in-flight batch has settled; batches may
// overlap when more files are appended while earlier ones still upload.
type Pipeline struct {
	store   BlobStore
	maxSize int64

	mu       sync.Mutex
	inflight int
	uploaded []models.FileDescriptor
}

func NewPipeline(store BlobStore) *Pipeline {
	return &Pipeline{store: store, maxSize: MaxFileSize}
}

func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inflight > 0
}

// Uploaded returns a copy of the accumulated descriptor list.
func (p *Pipeline) Uploaded() []models.FileDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.FileDescriptor, len(p.uploaded))
	copy(out, p.uploaded)
	return out
}

// RemoveAt drops the descriptor at index i, preserving the relative order
// of the rest. The stored blob is not deleted; an orphaned object is the
// accepted cost of a purely local edit.
func (p *Pipeline) RemoveAt(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.uploaded) {
		return fmt.Errorf("index %d out of range", i)
	}
	p.uploaded = append(p.uploaded[:i], p.uploaded[i+1:]...)
	return nil
}

// UploadBatch validates and uploads a batch. Oversized files are rejected
// individually and never block their siblings. Accepted files upload
// concurrently; results keep the original selection order so the first
// selected image stays the cover photo regardless of completion order.
func (p *Pipeline) UploadBatch(ctx context.Context, files []UploadFile, progress ProgressFunc) BatchResult {
	if progress == nil {
		progress = func(string, int) {}
	}

	p.mu.Lock()
	p.inflight++
	p.mu.Unlock()

	results := make([]*models.FileDescriptor, len(files))
	errs := make(map[string]string)
	var errMu sync.Mutex
	var wg sync.WaitGroup

	// Size-check everything up front: oversized rejections land in the
	// error map before any upload goroutine can touch it.
	accepted := make([]int, 0, len(files))
	for i, file := range files {
		if file.Size > p.maxSize {
			errs[file.Name] = fmt.Sprintf("%s exceeds the %d MiB size limit", file.Name, p.maxSize>>20)
			continue
		}
		accepted = append(accepted, i)
	}

	for _, i := range accepted {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()
			desc, err := p.uploadOne(ctx, file, progress)
			if err != nil {
				errMu.Lock()
				errs[file.Name] = fmt.Sprintf("failed to upload %s: %v", file.Name, err)
				errMu.Unlock()
				return
			}
			results[i] = desc
		}(i, files[i])
	}

	wg.Wait()

	batch := BatchResult{Errors: errs}
	p.mu.Lock()
	for _, desc := range results {
		if desc != nil {
			batch.Files = append(batch.Files, *desc)
			p.uploaded = append(p.uploaded, *desc)
		}
	}
	p.inflight--
	p.mu.Unlock()

	return batch
}

func (p *Pipeline) uploadOne(ctx context.Context, file UploadFile, progress ProgressFunc) (*models.FileDescriptor, error) {
	progress(file.Name, 0)

	r, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	key := ObjectKey(file.Name)
	url, err := p.store.Put(ctx, key, file.Type, &progressReader{
		r:        r,
		total:    file.Size,
		name:     file.Name,
		progress: progress,
	})
	if err != nil {
		return nil, err
	}

	progress(file.Name, 100)
	return &models.FileDescriptor{URL: url, Type: file.Type, Name: file.Name}, nil
}

// progressReader reports upload progress as the store consumes the file.
// Reported percentages never decrease and never reach 100 before the
// upload has actually settled.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	last     int
	name     string
	progress ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if pr.total > 0 {
		pct := int(pr.read * 100 / pr.total)
		if pct > 99 {
			pct = 99
		}
		if pct > pr.last {
			pr.last = pct
			pr.progress(pr.name, pct)
		}
	}
	return n, err
}
