// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/rhizanet/rhiza/app/services/node/handlers/v1/private"
	"github.com/rhizanet/rhiza/app/services/node/handlers/v1/public"
	"github.com/rhizanet/rhiza/foundation/dag/state"
	"github.com/rhizanet/rhiza/foundation/events"
	"github.com/rhizanet/rhiza/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/balances/list/:account", pbl.Balance)
	app.Handle(http.MethodGet, version, "/tips/list", pbl.Tips)
	app.Handle(http.MethodGet, version, "/tips/select", pbl.SelectParents)
	app.Handle(http.MethodGet, version, "/tx/list", pbl.Transactions)
	app.Handle(http.MethodGet, version, "/tx/status/:id", pbl.TransactionStatus)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitWalletTransaction)
	app.Handle(http.MethodGet, version, "/relay/stats", pbl.RelayStats)
	app.Handle(http.MethodGet, version, "/relay/stats/:account", pbl.RelayStats)
	app.Handle(http.MethodGet, version, "/audit/weights", pbl.AuditWeights)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodGet, version, "/node/tx/list", prv.Transactions)
	app.Handle(http.MethodPost, version, "/node/tx/submit", prv.SubmitNodeTransaction)
	app.Handle(http.MethodPost, version, "/node/relay/proof", prv.SubmitRelayProof)
	app.Handle(http.MethodPost, version, "/node/peers", prv.AddPeer)
	app.Handle(http.MethodPost, version, "/node/truncate", prv.Truncate)
}
