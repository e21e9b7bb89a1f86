package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/workers"
)

var errNotAllComponentsProvided = errors.New("client app: not all components provided")

// App is the headless sync agent: it signs the device's account in, seeds
// the sync tracker from persisted state, reconciles the vault once in the
// foreground and then keeps it reconciled in the background until the
// process receives a stop signal.
type App struct {
	services   *service.ClientServices
	localStore *store.ClientStorages
	cfg        config.ClientConfig
	log        *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp wires the agent runtime. All components are required.
func NewApp(services *service.ClientServices, localStore *store.ClientStorages, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if services == nil || localStore == nil || cfg == nil || log == nil {
		return nil, errNotAllComponentsProvided
	}

	return &App{
		services:   services,
		localStore: localStore,
		cfg:        *cfg,
		log:        log,
	}, nil
}

// Run implements Client. It blocks until SIGTERM/SIGINT/SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// Seed the tracker before anything can sync or write: a committed
	// edit from a previous run must keep its dirty flag and counter.
	state, err := a.localStore.VaultRepository.GetSyncState(ctx)
	if err != nil {
		return fmt.Errorf("load persisted sync state: %w", err)
	}
	a.services.Tracker.Restore(state)

	if err := a.signIn(ctx); err != nil {
		return err
	}

	a.initialSync(ctx)

	workers.New(workers.NewSyncWorker(ctx, a.services.SyncJob, a.cfg.Workers.SyncInterval)).Run()
	defer a.services.SyncJob.Stop()

	<-ctx.Done()
	a.log.Info().Str("func", "Run").Msg("stop signal received, shutting down agent")

	return nil
}

// signIn authenticates with the configured credentials, registering the
// account on first contact. Login and unseal happen in the auth service;
// a successful sign-in leaves the crypto service armed with the vault key.
func (a *App) signIn(ctx context.Context) error {
	login, password := a.cfg.Agent.Login, a.cfg.Agent.Password

	accountID, _, err := a.services.AuthService.Login(ctx, login, password)
	if err == nil {
		a.log.Info().Str("func", "signIn").Str("account", accountID.String()).Msg("signed in")
		return nil
	}
	if !errors.Is(err, service.ErrWrongPassword) {
		return fmt.Errorf("sign in: %w", err)
	}

	// The server does not reveal whether the account exists or the
	// password is wrong. Try a first-contact registration; a taken login
	// means the password really was wrong.
	if regErr := a.services.AuthService.Register(ctx, login, password); regErr != nil {
		if errors.Is(regErr, store.ErrLoginAlreadyExists) {
			return fmt.Errorf("sign in: %w", err)
		}
		return fmt.Errorf("register account: %w", regErr)
	}

	a.log.Info().Str("func", "signIn").Str("login", login).Msg("registered new account")
	return nil
}

// initialSync runs one foreground cycle so the device starts from a
// reconciled vault. Version incompatibility aside, failures are not
// fatal: the vault stays dirty and the background job retries.
func (a *App) initialSync(ctx context.Context) {
	summary, err := a.services.SyncService.Sync(ctx)
	switch {
	case err == nil:
		a.log.Info().Str("func", "initialSync").
			Uint64("revision", summary.Revision).
			Int("attempts", summary.Attempts).
			Msg("initial sync completed")

	case errors.Is(err, service.ErrVersionIncompatible):
		a.log.Error().Err(err).Str("func", "initialSync").
			Msg("vault schema is ahead of this build, upgrade the agent")

	case errors.Is(err, service.ErrSyncConflict), errors.Is(err, service.ErrAlreadySyncing):
		// Expected control flow: the vault stays dirty and the next
		// background tick picks it up.

	default:
		a.log.Warn().Err(err).Str("func", "initialSync").
			Msg("initial sync failed, continuing with the local vault")
	}
}
