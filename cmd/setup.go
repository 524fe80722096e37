package cmd

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/actions"
	"github.com/example/parkctl/internal/history"
	"github.com/example/parkctl/internal/notify"
	"github.com/example/parkctl/internal/parkanizer"
	"github.com/example/parkctl/internal/secrets"
)

// runtime bundles what every online command needs: an authenticated
// client plus the listeners to attach to actions.
type runtime struct {
	client    *parkanizer.Client
	hist      *history.Store
	notifiers []notify.Notifier
}

func newRuntime(ctx context.Context) (*runtime, error) {
	store, err := secretsStore()
	if err != nil {
		return nil, err
	}

	client := parkanizer.New(parkanizer.Config{
		BaseURL: cfg.Parkanizer.BaseURL,
		Store:   store,
	})
	if err := client.Login(ctx, parkanizer.Credentials{
		Username: cfg.Parkanizer.Username,
		Password: cfg.Parkanizer.Password,
	}); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	rt := &runtime{client: client}
	rt.notifiers = append(rt.notifiers, notify.LogNotifier{})
	if cfg.Notifiers.SMTP != nil {
		rt.notifiers = append(rt.notifiers, notify.NewMailNotifier(*cfg.Notifiers.SMTP))
	}

	if cfg.History.Enabled {
		hist, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is an audit aid; a broken store must not stop a booking.
			log.Warn().Err(err).Str("path", cfg.History.Path).Msg("attempt history disabled")
		} else {
			rt.hist = hist
		}
	}
	return rt, nil
}

func secretsStore() (*secrets.Store, error) {
	hash, block, err := cfg.SecretKeys()
	if err != nil {
		return nil, err
	}
	if hash != nil {
		return secrets.New(cfg.Secrets.Path, hash, block), nil
	}
	return secrets.NewFromPassword(cfg.Secrets.Path, cfg.Parkanizer.Password), nil
}

// attach registers every notifier and the history recorder on an
// action's event registry.
func (r *runtime) attach(ev *actions.Events) {
	for _, n := range r.notifiers {
		ev.Register(n.Notify)
	}
	if r.hist != nil {
		ev.Register(r.hist.Listener())
	}
}

func (r *runtime) close() {
	if r.hist != nil {
		if err := r.hist.Close(); err != nil {
			log.Warn().Err(err).Msg("closing history store")
		}
	}
}

// emit prints the rendered result. An error status makes the command
// exit non-zero; a plain failure is a normal outcome and does not.
func emit(result actions.Result) error {
	fmt.Print(notify.Format(result))
	if result.Status() == actions.StatusError {
		return fmt.Errorf("%s finished with an error", result.Kind())
	}
	return nil
}
