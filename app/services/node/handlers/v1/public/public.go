// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/rhizanet/rhiza/business/web/errs"
	"github.com/rhizanet/rhiza/foundation/dag/digest"
	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/state"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
	"github.com/rhizanet/rhiza/foundation/events"
	"github.com/rhizanet/rhiza/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Balance returns the effective balance for the specified account. The
// account is identified by its hex encoded public key.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pub, err := keys.PublicKeyFromString(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	bal := balance{
		Account: pub.String(),
		Address: wallet.NewAddress(pub).String(),
		Balance: h.State.QueryBalance(pub),
	}

	return web.Respond(ctx, w, bal, http.StatusOK)
}

// Tips returns the current approval frontier.
func (h Handlers) Tips(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tips := h.State.QueryTips()
	return web.Respond(ctx, w, tips, http.StatusOK)
}

// SelectParents returns two tips for a new transaction to approve.
func (h Handlers) SelectParents(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	parents := h.State.QuerySelectParents()
	return web.Respond(ctx, w, parents, http.StatusOK)
}

// Transactions returns the full set of ledger transactions with their
// confirmation details.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	all, err := h.State.QueryAllTransactions()
	if err != nil {
		return err
	}

	txs := make([]tx, 0, len(all))
	for _, t := range all {
		v, err := h.State.QueryTransaction(t.ID)
		if err != nil {
			continue
		}
		txs = append(txs, toTx(v))
	}

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// TransactionStatus returns the confirmation status of a transaction.
func (h Handlers) TransactionStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := digest.FromString(web.Param(r, "id"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	status := h.State.QueryStatus(id)

	return web.Respond(ctx, w, status, http.StatusOK)
}

// SubmitWalletTransaction accepts a signed transaction from a wallet.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx transaction.Tx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit wallet tran", "traceid", v.TraceID, "tx", tx)
	if err := h.State.SubmitWalletTransaction(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string        `json:"status"`
		ID     digest.Digest `json:"id"`
	}{
		Status: "transaction accepted",
		ID:     tx.ID,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RelayStats returns relay activity counters, either network wide or for
// one account.
func (h Handlers) RelayStats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	relays, rewards := h.State.QueryRelayTotals()

	resp := struct {
		Account      string `json:"account,omitempty"`
		RelayCount   uint64 `json:"relay_count,omitempty"`
		NextReward   uint64 `json:"next_reward,omitempty"`
		TotalRelays  uint64 `json:"total_relays"`
		TotalRewards uint64 `json:"total_rewards"`
	}{
		TotalRelays:  relays,
		TotalRewards: rewards,
	}

	if account != "" {
		pub, err := keys.PublicKeyFromString(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		resp.Account = pub.String()
		resp.RelayCount = h.State.QueryRelayCount(pub)
		resp.NextReward = h.State.QueryNextReward(pub)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// AuditWeights recomputes all cumulative weights from scratch and reports
// whether the incremental values agree.
func (h Handlers) AuditWeights(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}{
		Status: "consistent",
	}

	if err := h.State.AuditWeights(); err != nil {
		resp.Status = "inconsistent"
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
