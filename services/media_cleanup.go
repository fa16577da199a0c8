package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/mediastore"

	"go.uber.org/zap"
)

// IMediaCleaner artık referans edilmeyen medyanın silinmesini sıraya alır.
type IMediaCleaner interface {
	Enqueue(refs ...string)
}

// MediaCleanupQueue silme işlerini çalıştırır. workers == 0 ise iş çağıranın
// goroutine'inde hemen yapılır, aksi halde arka plandaki worker'lara verilir.
// Hatalar loglanır ve en fazla maxAttempts kez denenir; çağırana asla dönmez.
type MediaCleanupQueue struct {
	store       mediastore.Store
	maxAttempts int
	timeout     time.Duration
	backoff     time.Duration

	jobs chan string
	wg   sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
	closed   bool
}

// NewMediaCleanupQueue yeni bir kuyruk oluşturur ve gerekirse worker'ları başlatır.
func NewMediaCleanupQueue(store mediastore.Store, workers, maxAttempts int) *MediaCleanupQueue {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	q := &MediaCleanupQueue{
		store:       store,
		maxAttempts: maxAttempts,
		timeout:     30 * time.Second,
		backoff:     500 * time.Millisecond,
		inflight:    make(map[string]struct{}),
	}
	if workers > 0 {
		q.jobs = make(chan string, 256)
		for i := 0; i < workers; i++ {
			q.wg.Add(1)
			go q.worker()
		}
	}
	return q
}

// Enqueue her referansı bir kez sıraya alır. Boş, tekrar eden veya depoya ait olmayan
// (harici) referanslar atlanır.
func (q *MediaCleanupQueue) Enqueue(refs ...string) {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		if !q.store.Owns(ref) {
			configslog.Log.Debug("Harici medya referansı, silme atlandı", zap.String("ref", ref))
			continue
		}
		q.dispatch(ref)
	}
}

func (q *MediaCleanupQueue) dispatch(ref string) {
	if q.jobs == nil {
		q.process(ref, false)
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.process(ref, false)
		return
	}
	if _, busy := q.inflight[ref]; busy {
		q.mu.Unlock()
		return
	}
	select {
	case q.jobs <- ref:
		q.inflight[ref] = struct{}{}
		q.mu.Unlock()
		return
	default:
	}
	q.mu.Unlock()

	// Kuyruk dolu; işi kaybetmemek için burada yap
	configslog.SLog.Warnf("Medya silme kuyruğu dolu, senkron siliniyor: %s", ref)
	q.process(ref, false)
}

func (q *MediaCleanupQueue) worker() {
	defer q.wg.Done()
	for ref := range q.jobs {
		q.process(ref, true)
		q.done(ref)
	}
}

func (q *MediaCleanupQueue) done(ref string) {
	q.mu.Lock()
	delete(q.inflight, ref)
	q.mu.Unlock()
}

func (q *MediaCleanupQueue) process(ref string, withBackoff bool) {
	for attempt := 1; attempt <= q.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.store.Delete(ctx, ref)
		cancel()

		if err == nil {
			configslog.SLog.Infof("Medya silindi: %s", ref)
			return
		}
		if errors.Is(err, mediastore.ErrNotOwned) || errors.Is(err, mediastore.ErrInvalidName) {
			configslog.Log.Warn("Medya silinemez, atlanıyor", zap.String("ref", ref), zap.Error(err))
			return
		}
		configslog.Log.Warn("Medya silme denemesi başarısız",
			zap.String("ref", ref),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", q.maxAttempts),
			zap.Error(err),
		)
		if withBackoff && attempt < q.maxAttempts {
			time.Sleep(time.Duration(attempt) * q.backoff)
		}
	}
	configslog.Log.Error("Medya silinemedi, referanssız dosya kalabilir", zap.String("ref", ref))
}

// Close yeni işleri senkron moda alır ve bekleyen işlerin bitmesini bekler.
func (q *MediaCleanupQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	if q.jobs != nil {
		close(q.jobs)
		q.wg.Wait()
	}
}

var _ IMediaCleaner = (*MediaCleanupQueue)(nil)
