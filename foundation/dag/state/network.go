package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rhizanet/rhiza/foundation/dag/consensus"
	"github.com/rhizanet/rhiza/foundation/dag/peer"
	"github.com/rhizanet/rhiza/foundation/dag/transaction"
)

const baseURL = "http://%s/v1/node"

// NetSendTxToPeers shares a new transaction with the known peers.
func (s *State) NetSendTxToPeers(tx transaction.Tx) {
	s.evHandler("state: NetSendTxToPeers: started")
	defer s.evHandler("state: NetSendTxToPeers: completed")

	for _, peer := range s.RetrieveKnownPeers() {
		url := fmt.Sprintf("%s/tx/submit", fmt.Sprintf(baseURL, peer.Host))
		if err := send(http.MethodPost, url, tx, nil); err != nil {
			s.evHandler("state: NetSendTxToPeers: WARNING: %s", err)
		}
	}
}

// NetSendRelayProofToPeers announces a relay attestation to the known peers
// so they credit this node's relay count.
func (s *State) NetSendRelayProofToPeers(proof consensus.Proof) {
	s.evHandler("state: NetSendRelayProofToPeers: started")
	defer s.evHandler("state: NetSendRelayProofToPeers: completed")

	for _, peer := range s.RetrieveKnownPeers() {
		url := fmt.Sprintf("%s/relay/proof", fmt.Sprintf(baseURL, peer.Host))
		if err := send(http.MethodPost, url, proof, nil); err != nil {
			s.evHandler("state: NetSendRelayProofToPeers: WARNING: %s", err)
		}
	}
}

// NetRequestPeerStatus asks a known node for its current tips, depth and
// peer list.
func (s *State) NetRequestPeerStatus(pr peer.Peer) (peer.PeerStatus, error) {
	s.evHandler("state: NetRequestPeerStatus: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerStatus: completed: %s", pr)

	url := fmt.Sprintf("%s/status", fmt.Sprintf(baseURL, pr.Host))

	var ps peer.PeerStatus
	if err := send(http.MethodGet, url, nil, &ps); err != nil {
		return peer.PeerStatus{}, err
	}

	s.evHandler("state: NetRequestPeerStatus: peer-node[%s]: depth[%d]: peer-list[%s]", pr, ps.Depth, ps.KnownPeers)

	return ps, nil
}

// NetRequestPeerTransactions pulls the peer's full transaction list and
// admits anything this ledger is missing. Peers serve the list in
// insertion order so parents always arrive before children.
func (s *State) NetRequestPeerTransactions(pr peer.Peer) error {
	s.evHandler("state: NetRequestPeerTransactions: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerTransactions: completed: %s", pr)

	url := fmt.Sprintf("%s/tx/list", fmt.Sprintf(baseURL, pr.Host))

	var txs []transaction.Tx
	if err := send(http.MethodGet, url, nil, &txs); err != nil {
		return err
	}

	var added int
	for _, tx := range txs {
		if err := s.acceptTransaction(tx); err != nil {
			if isDuplicate(err) {
				continue
			}
			return err
		}
		added++
	}

	s.evHandler("state: NetRequestPeerTransactions: peer[%s] pulled[%d] added[%d]", pr, len(txs), added)

	return nil
}

// NetRequestAddPeer tells the peer this node exists and is available.
func (s *State) NetRequestAddPeer(pr peer.Peer) error {
	s.evHandler("state: NetRequestAddPeer: started: %s", pr)
	defer s.evHandler("state: NetRequestAddPeer: completed: %s", pr)

	url := fmt.Sprintf("%s/peers", fmt.Sprintf(baseURL, pr.Host))

	return send(http.MethodPost, url, peer.New(s.host), nil)
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(method string, url string, dataSend any, dataRecv any) error {
	var req *http.Request

	switch {
	case dataSend != nil:
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		req, err = http.NewRequest(method, url, bytes.NewReader(data))
		if err != nil {
			return err
		}

	default:
		var err error
		req, err = http.NewRequest(method, url, nil)
		if err != nil {
			return err
		}
	}

	var client http.Client
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
