package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yamadatarousan/ticket-manager/internal/api"
	"github.com/yamadatarousan/ticket-manager/internal/authgate"
	"github.com/yamadatarousan/ticket-manager/internal/credstore"
	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// runtime wires the per-invocation object graph: credential store, API
// client, and session manager, with the client's 401 hook routed into the
// manager.
type runtime struct {
	cfg      *Config
	store    credstore.Store
	client   *api.Client
	sessions *session.Manager
}

func newRuntime() (*runtime, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, errors.New("no configuration loaded")
	}

	credPath, err := credstore.DefaultPath()
	if err != nil {
		return nil, err
	}
	store := credstore.NewFileStore(credPath)

	client := api.NewClient(cfg.ServerURL, store)
	sessions := session.NewManager(client, store)
	client.OnUnauthorized(sessions.HandleUnauthorized)

	return &runtime{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: sessions,
	}, nil
}

// navigate validates the stored credential and then runs the authorization
// gate for the named screen. It returns true when the screen may render.
// Redirect outcomes are rendered here: a login redirect prints the login hint
// and fails the command; a default redirect prints a notice and renders the
// landing screen instead.
func (rt *runtime) navigate(ctx context.Context, screen string) (bool, error) {
	route, ok := authgate.Lookup(screen)
	if !ok {
		return false, fmt.Errorf("unknown screen: %s", screen)
	}

	// application-start credential validation; settles the session out of
	// authenticating before the gate runs
	if err := rt.sessions.CheckSession(ctx); err != nil {
		return false, err
	}

	snap := rt.sessions.Snapshot()
	switch authgate.Evaluate(snap, route) {
	case authgate.OutcomeAllow:
		return true, nil

	case authgate.OutcomeRedirectLogin:
		errorLabel.Fprintln(os.Stderr, "You need to log in first: ticketctl login --email <email> --password <password>")
		return false, ErrAlreadyHandled

	case authgate.OutcomeRedirectDefault:
		if route.AuthScreen && snap.User != nil {
			fmt.Printf("Already logged in as %s.\n", snap.User.Name)
		} else {
			fmt.Printf("You don't have access to %s.\n", route.Name)
		}
		fmt.Printf("Taking you to %s instead.\n\n", rt.cfg.DefaultRoute())
		if err := rt.renderDefault(ctx); err != nil {
			return false, err
		}
		return false, nil

	case authgate.OutcomePending:
		// CheckSession settles before the gate runs, so this is unreachable
		// in practice; render nothing rather than flash a login redirect.
		fmt.Println("Validating session; try again in a moment.")
		return false, nil
	}
	return false, nil
}

// renderDefault renders the user's landing screen after a soft redirect.
func (rt *runtime) renderDefault(ctx context.Context) error {
	switch rt.cfg.DefaultRoute() {
	case "projects":
		return renderProjectList(ctx, rt, 0, 0)
	default:
		return renderTicketList(ctx, rt, api.TicketFilter{})
	}
}
