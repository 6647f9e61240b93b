package sites

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gobind/domain/core"
	"gobind/domain/genomic"
	"gobind/internal/errors"
)

// FileSink owns one append-only temp file per motif. Every motif stream has
// exactly one writer goroutine consuming a channel of batches, so writes from
// many scan workers interleave per batch but never corrupt a record. The temp
// files are the hand-off contract to the statistics stage.
type FileSink struct {
	dir      string
	channels map[string]chan []genomic.Occurrence

	wg sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewFileSink creates the sink with one stream per catalog motif. Streams are
// created eagerly from the fixed catalog and never resized afterwards.
func NewFileSink(dir string, motifIDs []string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create site sink directory")
	}
	s := &FileSink{
		dir:      dir,
		channels: make(map[string]chan []genomic.Occurrence, len(motifIDs)),
	}
	for _, id := range motifIDs {
		ch := make(chan []genomic.Occurrence, 64)
		s.channels[id] = ch
		s.wg.Add(1)
		go s.consume(id, ch)
	}
	return s, nil
}

// Append routes one batch to the motif's stream. The send is the atomic unit:
// a batch is either fully written or not written at all.
func (s *FileSink) Append(motifID string, batch []genomic.Occurrence) error {
	if len(batch) == 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return core.ErrSinkClosed
	}
	ch, ok := s.channels[motifID]
	if !ok {
		return core.NewIntegrityError(motifID, core.ErrUnknownMotif)
	}
	ch <- batch
	return nil
}

// Close closes every stream and waits for the writers to drain. After Close
// returns every surviving temp file is durably written. A failed stream is
// isolated to its motif: the partial file is gone, the failure is logged here,
// and the statistics stage skips that motif while its siblings proceed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return core.ErrSinkClosed
	}
	s.closed = true
	for _, ch := range s.channels {
		close(ch)
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.errMu.Lock()
	defer s.errMu.Unlock()
	for _, err := range s.errs {
		log.Printf("sites: %v", err)
	}
	return nil
}

// TempPath returns the motif's temp stream path within dir.
func TempPath(dir, motifID string) string {
	return filepath.Join(dir, SafeName(motifID)+".tmp")
}

// SafeName makes a motif id usable as a file name.
func SafeName(motifID string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(motifID)
}

func (s *FileSink) consume(motifID string, ch <-chan []genomic.Occurrence) {
	defer s.wg.Done()

	path := TempPath(s.dir, motifID)
	f, err := os.Create(path)
	if err != nil {
		s.recordErr(errors.Wrapf(err, "failed to create site stream for motif %s", motifID))
		for range ch {
			// Drain so producers never block on a dead stream.
		}
		_ = os.Remove(path)
		return
	}
	w := bufio.NewWriter(f)

	failed := false
	for batch := range ch {
		if failed {
			continue
		}
		for _, occ := range batch {
			if err := writeLine(w, occ); err != nil {
				s.recordErr(errors.Wrapf(err, "failed to append to site stream for motif %s", motifID))
				failed = true
				break
			}
		}
	}

	if err := w.Flush(); err != nil && !failed {
		s.recordErr(errors.Wrapf(err, "failed to flush site stream for motif %s", motifID))
		failed = true
	}
	if err := f.Close(); err != nil && !failed {
		s.recordErr(errors.Wrapf(err, "failed to close site stream for motif %s", motifID))
		failed = true
	}
	if failed {
		// A partial stream must not feed statistics.
		_ = os.Remove(path)
	}
}

func writeLine(w *bufio.Writer, occ genomic.Occurrence) error {
	if _, err := w.WriteString(EncodeLine(occ)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func (s *FileSink) recordErr(err error) {
	s.errMu.Lock()
	s.errs = append(s.errs, errors.WithCode(errors.CodeSiteStream, err))
	s.errMu.Unlock()
}
