package worker

import (
	"errors"

	"github.com/rhizanet/rhiza/foundation/dag/peer"
)

// peerOperations handles finding new peers.
func (w *Worker) peerOperations() {
	w.evHandler("worker: peerOperations: G started")
	defer w.evHandler("worker: peerOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runPeersOperation()
			}
		case <-w.shut:
			w.evHandler("worker: peerOperations: received shut signal")
			return
		}
	}
}

// runPeersOperation updates the peer list and pulls any transactions this
// ledger is missing.
func (w *Worker) runPeersOperation() {
	w.evHandler("worker: runPeersOperation: started")
	defer w.evHandler("worker: runPeersOperation: completed")

	for _, peer := range w.state.RetrieveKnownPeers() {

		// Retrieve the status of this peer.
		peerStatus, err := w.state.NetRequestPeerStatus(peer)
		if err != nil {
			w.evHandler("worker: runPeersOperation: queryPeerStatus: %s: ERROR: %s", peer.Host, err)
			w.state.RemoveKnownPeer(peer)
			continue
		}

		// Add new peers to this nodes list.
		w.addNewPeers(peerStatus.KnownPeers)

		// If this peer is deeper than us, pull what we are missing.
		if peerStatus.Depth > w.state.QueryDepth() {
			w.evHandler("worker: runPeersOperation: %s: depth[%d]", peer.Host, peerStatus.Depth)
			if err := w.state.NetRequestPeerTransactions(peer); err != nil {
				w.evHandler("worker: runPeersOperation: retrievePeerTransactions: %s: ERROR: %s", peer.Host, err)
			}
		}
	}

	// Get the latest peers and let them know this node is available to chat.
	for _, peer := range w.state.RetrieveKnownPeers() {
		if err := w.state.NetRequestAddPeer(peer); err != nil {
			w.evHandler("worker: runPeersOperation: addPeer: %s: ERROR: %s", peer.Host, err)
		}
	}
}

// addNewPeers takes the list of known peers and makes sure they are included
// in the nodes list of know peers.
func (w *Worker) addNewPeers(knownPeers []peer.Peer) error {
	w.evHandler("worker: runPeersOperation: addNewPeers: started")
	defer w.evHandler("worker: runPeersOperation: addNewPeers: completed")

	for _, peer := range knownPeers {

		// Don't add this running node to the known peer list.
		if peer.Match(w.state.RetrieveHost()) {
			return errors.New("already exists")
		}

		if w.state.AddKnownPeer(peer) {
			w.evHandler("worker: runPeersOperation: addNewPeers: adding peer-node %s", peer)
		}
	}

	return nil
}
