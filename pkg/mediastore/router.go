package mediastore

import (
	"context"
	"io"
)

// Router yüklemeleri birincil depoya yazar, silmeleri referansın sahibi olan depoya yönlendirir.
// Böylece sürücü değiştirildikten sonra eski referanslar da temizlenebilir.
type Router struct {
	primary Store
	others  []Store
}

// NewRouter birincil depo ve (varsa) sadece silme için kullanılan ek depolarla Router oluşturur.
func NewRouter(primary Store, others ...Store) *Router {
	return &Router{primary: primary, others: others}
}

func (r *Router) Save(ctx context.Context, originalName string, rd io.Reader) (string, error) {
	return r.primary.Save(ctx, originalName, rd)
}

// Delete sahibi olmayan (harici) referanslar için ErrNotOwned döner.
func (r *Router) Delete(ctx context.Context, ref string) error {
	if s := r.owner(ref); s != nil {
		return s.Delete(ctx, ref)
	}
	return ErrNotOwned
}

func (r *Router) Owns(ref string) bool {
	return r.owner(ref) != nil
}

// Local yönlendiricideki yerel depoyu döner (dosya servis etmek için).
func (r *Router) Local() *LocalStore {
	for _, s := range append([]Store{r.primary}, r.others...) {
		if l, ok := s.(*LocalStore); ok {
			return l
		}
	}
	return nil
}

func (r *Router) owner(ref string) Store {
	if ref == "" {
		return nil
	}
	if r.primary.Owns(ref) {
		return r.primary
	}
	for _, s := range r.others {
		if s.Owns(ref) {
			return s
		}
	}
	return nil
}

var _ Store = (*Router)(nil)
