// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"net/http"

	"github.com/rhizanet/rhiza/business/sys/validate"
	"github.com/rhizanet/rhiza/business/web/errs"
	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/peer"
	"github.com/rhizanet/rhiza/foundation/dag/state"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
	"github.com/rhizanet/rhiza/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := peer.PeerStatus{
		Tips:       h.State.QueryTips(),
		Depth:      h.State.QueryDepth(),
		KnownPeers: h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Transactions returns every ledger transaction in insertion order so a
// syncing peer can replay them with parents first.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs, err := h.State.QueryAllTransactions()
	if err != nil {
		return err
	}

	if len(txs) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// SubmitNodeTransaction adds a transaction gossiped by a peer node to
// the ledger.
func (h Handlers) SubmitNodeTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx transaction.Tx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add node tran", "traceid", v.TraceID, "tx", tx)
	if err := h.State.SubmitNodeTransaction(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction accepted",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitRelayProof credits a peer's relay activity after verifying the
// attestation signature.
func (h Handlers) SubmitRelayProof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var proof consensus.Proof
	if err := web.Decode(r, &proof); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	reward, err := h.State.SubmitRelayProof(proof)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		Reward uint64 `json:"reward"`
	}{
		Status: "relay recorded",
		Reward: reward,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Truncate drops the in-memory ledger and the persisted copy so the node
// can resync from its peers. The peer worker repopulates the ledger on its
// next pull since every peer now reports a greater depth.
func (h Handlers) Truncate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("truncate ledger", "traceid", v.TraceID)
	if err := h.State.Truncate(); err != nil {
		return err
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "ledger truncated",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// AddPeer registers a node as a known peer.
func (h Handlers) AddPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var p peer.Peer
	if err := web.Decode(r, &p); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(p); err != nil {
		return err
	}

	added := h.State.AddKnownPeer(p)

	resp := struct {
		Status string `json:"status"`
		Added  bool   `json:"added"`
	}{
		Status: "peer registered",
		Added:  added,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
