// Package anchor replicates committed ballots to an external ledger for
// audit purposes. Anchoring is strictly best-effort: the ballot box in
// Postgres remains the source of truth and a failed anchor never rolls back
// a vote.
package anchor

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"voting-api/model"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Ledger anchors a single ballot. Implementations must respect ctx
// cancellation so a slow ledger cannot hang the worker.
type Ledger interface {
	AnchorBallot(ctx context.Context, ballot *model.Ballot) error
}

// NopLedger is used when no ledger endpoint is configured.
type NopLedger struct{}

func (NopLedger) AnchorBallot(context.Context, *model.Ballot) error { return nil }

// votingABI is the fragment of the election contract the anchorer calls.
const votingABI = `[{"inputs":[{"internalType":"uint256","name":"_candidateId","type":"uint256"}],"name":"vote","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

const anchorGasLimit = 200_000

// EthereumLedger submits vote(candidateId) transactions to the configured
// election contract, signed with the service's anchoring key.
type EthereumLedger struct {
	client   *ethclient.Client
	contract ethcommon.Address
	key      *ecdsa.PrivateKey
	from     ethcommon.Address
	chainID  *big.Int
	abi      abi.ABI
}

func NewEthereumLedger(rpcURL, contractAddress, privateKeyHex string, chainID int64) (*EthereumLedger, error) {
	if !ethcommon.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", contractAddress)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse anchoring private key: %w", err)
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger rpc: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(votingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse voting abi: %w", err)
	}

	return &EthereumLedger{
		client:   client,
		contract: ethcommon.HexToAddress(contractAddress),
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  big.NewInt(chainID),
		abi:      parsedABI,
	}, nil
}

func (l *EthereumLedger) AnchorBallot(ctx context.Context, ballot *model.Ballot) error {
	data, err := l.abi.Pack("vote", big.NewInt(int64(ballot.CandidateID)))
	if err != nil {
		return fmt.Errorf("failed to pack vote call: %w", err)
	}

	nonce, err := l.client.PendingNonceAt(ctx, l.from)
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := l.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, l.contract, big.NewInt(0), anchorGasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(l.chainID), l.key)
	if err != nil {
		return fmt.Errorf("failed to sign anchor transaction: %w", err)
	}

	if err := l.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send anchor transaction: %w", err)
	}
	return nil
}
