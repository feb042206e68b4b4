package worker

import (
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

// maxTxShareRequests represents the max number of pending tx network share
// requests that can be outstanding before share requests are dropped. To keep
// this simple, a buffered channel of this arbitrary number is being used. If
// the channel does become full, requests for new transactions to be shared
// will not be accepted.
const maxTxShareRequests = 100

// =============================================================================

// shareTxOperations handles sharing new transactions.
func (w *Worker) shareTxOperations() {
	w.evHandler("worker: shareTxOperations: G started")
	defer w.evHandler("worker: shareTxOperations: G completed")

	for {
		select {
		case tx := <-w.txSharing:
			if !w.isShutdown() {
				w.runShareTxOperation(tx)
			}
		case <-w.shut:
			w.evHandler("worker: shareTxOperations: received shut signal")
			return
		}
	}
}

// runShareTxOperation shares a new transaction with the known peers and
// claims the relay credit for doing so. Reward claims are themselves
// transactions and get shared the same way, but never claim credit again.
func (w *Worker) runShareTxOperation(tx transaction.Tx) {
	w.evHandler("worker: runShareTxOperation: started")
	defer w.evHandler("worker: runShareTxOperation: completed")

	w.state.NetSendTxToPeers(tx)

	// Relaying a reward claim is unpaid work. Without this rule every
	// claim would mint another claim and the ledger would never go quiet.
	if tx.Data.TxType == transaction.TypeRelayReward {
		return
	}

	proof := w.state.BuildRelayProof(tx.ID, 1)
	w.state.NetSendRelayProofToPeers(proof)

	rewardTx, reward, err := w.state.RecordLocalRelay(tx.ID)
	if err != nil {
		w.evHandler("worker: runShareTxOperation: relay claim: ERROR: %s", err)
		return
	}

	if reward > 0 {
		w.state.NetSendTxToPeers(rewardTx)
	}
}
