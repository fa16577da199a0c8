// Package di uygulama bağımlılıklarını samber/do konteynerinde toplar.
package di

import (
	"github.com/samber/do/v2"
)

// NewContainer tüm provider'ları kaydeder. Servisler ilk istendiklerinde oluşturulur.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Altyapı
	do.Provide(injector, ProvideConfig)
	do.Provide(injector, ProvideDatabase)
	do.Provide(injector, ProvideTokenService)
	do.Provide(injector, ProvideValidator)
	do.Provide(injector, ProvideMediaStore)
	do.Provide(injector, ProvideMediaCleanup)
	do.Provide(injector, ProvideRateLimiter)
	do.Provide(injector, ProvideInvitationSender)

	// Repository'ler
	do.Provide(injector, ProvideRepositories)

	// Servisler
	do.Provide(injector, ProvideAuthService)
	do.Provide(injector, ProvidePersonalizeService)
	do.Provide(injector, ProvideGuestService)
	do.Provide(injector, ProvideRSVPService)
	do.Provide(injector, ProvideWellWishService)
	do.Provide(injector, ProvideInvitationService)

	// Handler'lar
	do.Provide(injector, ProvideHandlers)

	return injector
}
