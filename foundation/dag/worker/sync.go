package worker

// Sync updates the peer list and the ledger.
func (w *Worker) Sync() {
	w.evHandler("worker: sync: started")
	defer w.evHandler("worker: sync: completed")

	for _, peer := range w.state.RetrieveKnownPeers() {

		// Retrieve the status of this peer.
		peerStatus, err := w.state.NetRequestPeerStatus(peer)
		if err != nil {
			w.evHandler("worker: sync: queryPeerStatus: %s: ERROR: %s", peer.Host, err)
			continue
		}

		// Add new peers to this nodes list.
		w.addNewPeers(peerStatus.KnownPeers)

		// If this peer has transactions we don't have, we need to add them.
		if peerStatus.Depth > w.state.QueryDepth() || w.state.QueryLedgerSize() == 0 {
			w.evHandler("worker: sync: retrievePeerTransactions: %s: depth[%d]", peer.Host, peerStatus.Depth)

			if err := w.state.NetRequestPeerTransactions(peer); err != nil {
				w.evHandler("worker: sync: retrievePeerTransactions: %s: ERROR %s", peer.Host, err)
			}
		}
	}
}
