// Package grpcclient provides a pooled gRPC client for submitting farm
// transactions to a running yieldfarmd node.
package grpcclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"cosmossdk.io/math"

	farmtypes "github.com/openalpha/yield-farm/x/farm/types"
)

// Config holds gRPC client configuration
type Config struct {
	GRPCAddr      string
	ChainID       string
	AccountNumber uint64
	GasLimit      uint64
	FeeDenom      string
	PoolSize      int           // Connection pool size
	Timeout       time.Duration // Request timeout
	BatchSize     int           // Max messages per transaction
}

// DefaultConfig returns default configuration for a local node
func DefaultConfig() *Config {
	return &Config{
		GRPCAddr:      "localhost:9090",
		ChainID:       "yieldfarm-1",
		AccountNumber: 0,
		GasLimit:      200000,
		FeeDenom:      "uyield",
		PoolSize:      4,
		Timeout:       5 * time.Second,
		BatchSize:     50,
	}
}

// Client submits farm transactions over a small pool of gRPC connections.
// The account sequence is tracked locally so callers can pipeline
// transactions without waiting for each block.
type Client struct {
	config    *Config
	pool      []*grpc.ClientConn
	poolIndex uint64

	privKey  cryptotypes.PrivKey
	pubKey   cryptotypes.PubKey
	address  sdk.AccAddress
	sequence uint64
	seqMu    sync.Mutex

	txCount      uint64
	successCount uint64
	failCount    uint64
	totalLatency int64

	txConfig client.TxConfig
}

// NewClient creates a client signing with the given hex-encoded secp256k1 key.
func NewClient(config *Config, txConfig client.TxConfig, privKeyHex string) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	privKeyBytes, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	pubKey := privKey.PubKey()

	c := &Client{
		config:   config,
		pool:     make([]*grpc.ClientConn, config.PoolSize),
		privKey:  privKey,
		pubKey:   pubKey,
		address:  sdk.AccAddress(pubKey.Address()),
		txConfig: txConfig,
	}

	for i := 0; i < config.PoolSize; i++ {
		conn, err := grpc.Dial(
			config.GRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(1024*1024*10),
				grpc.MaxCallSendMsgSize(1024*1024*10),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to gRPC: %w", err)
		}
		c.pool[i] = conn
	}

	return c, nil
}

// Address returns the bech32 address the client signs with.
func (c *Client) Address() string {
	return c.address.String()
}

// getConn returns a connection from the pool (round-robin)
func (c *Client) getConn() *grpc.ClientConn {
	idx := atomic.AddUint64(&c.poolIndex, 1) % uint64(len(c.pool))
	return c.pool[idx]
}

// SyncSequence refreshes the cached account number and sequence from chain
// state. Call it once at startup and after any failed broadcast.
func (c *Client) SyncSequence(ctx context.Context) error {
	authClient := authtypes.NewQueryClient(c.getConn())
	res, err := authClient.AccountInfo(ctx, &authtypes.QueryAccountInfoRequest{
		Address: c.address.String(),
	})
	if err != nil {
		return fmt.Errorf("query account: %w", err)
	}

	c.seqMu.Lock()
	c.config.AccountNumber = res.Info.AccountNumber
	c.sequence = res.Info.Sequence
	c.seqMu.Unlock()
	return nil
}

func (c *Client) nextSequence() uint64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	seq := c.sequence
	c.sequence++
	return seq
}

// TxResult contains the outcome of a broadcast
type TxResult struct {
	TxHash  string
	Success bool
	Latency time.Duration
	Error   error
}

// Stake submits a single stake message.
func (c *Client) Stake(ctx context.Context, poolID, amount string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgStake{
		Staker: c.address.String(),
		PoolID: poolID,
		Amount: amount,
	})
}

// Unstake submits a single unstake message.
func (c *Client) Unstake(ctx context.Context, poolID, amount string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgUnstake{
		Staker: c.address.String(),
		PoolID: poolID,
		Amount: amount,
	})
}

// Harvest claims the settled reward from one pool.
func (c *Client) Harvest(ctx context.Context, poolID string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgHarvest{
		Staker: c.address.String(),
		PoolID: poolID,
	})
}

// HarvestAll claims from several pools in a single transaction.
func (c *Client) HarvestAll(ctx context.Context, poolIDs []string) *TxResult {
	if len(poolIDs) == 0 {
		return &TxResult{Error: fmt.Errorf("no pools to harvest")}
	}
	if len(poolIDs) > c.config.BatchSize {
		return &TxResult{Error: fmt.Errorf("batch size %d exceeds max %d", len(poolIDs), c.config.BatchSize)}
	}

	msgs := make([]sdk.Msg, len(poolIDs))
	for i, id := range poolIDs {
		msgs[i] = &farmtypes.MsgHarvest{
			Staker: c.address.String(),
			PoolID: id,
		}
	}
	return c.broadcastMulti(ctx, msgs)
}

// ApplyBoost attaches an NFT from the given class as boost collateral.
func (c *Client) ApplyBoost(ctx context.Context, poolID, classID, tokenID string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgApplyBoost{
		Staker:   c.address.String(),
		PoolID:   poolID,
		Kind:     farmtypes.CollateralKindInline,
		ClassID:  classID,
		TokenID:  tokenID,
		Quantity: 1,
	})
}

// RemoveBoost detaches the attached boost collateral.
func (c *Client) RemoveBoost(ctx context.Context, poolID string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgRemoveBoost{
		Staker: c.address.String(),
		PoolID: poolID,
	})
}

// EmergencyUnstake exits a position while the pool is in emergency mode.
func (c *Client) EmergencyUnstake(ctx context.Context, poolID string) *TxResult {
	return c.broadcast(ctx, &farmtypes.MsgEmergencyUnstake{
		Staker: c.address.String(),
		PoolID: poolID,
	})
}

func (c *Client) broadcast(ctx context.Context, msg sdk.Msg) *TxResult {
	return c.broadcastMulti(ctx, []sdk.Msg{msg})
}

func (c *Client) broadcastMulti(ctx context.Context, msgs []sdk.Msg) *TxResult {
	start := time.Now()
	result := &TxResult{}

	atomic.AddUint64(&c.txCount, 1)

	seq := c.nextSequence()
	txBytes, err := c.buildSignedTx(ctx, msgs, seq)
	if err != nil {
		result.Error = err
		result.Latency = time.Since(start)
		atomic.AddUint64(&c.failCount, 1)
		return result
	}

	txClient := txtypes.NewServiceClient(c.getConn())
	resp, err := txClient.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	})

	result.Latency = time.Since(start)
	atomic.AddInt64(&c.totalLatency, int64(result.Latency))

	if err != nil {
		result.Error = err
		atomic.AddUint64(&c.failCount, 1)
		return result
	}

	if resp.TxResponse.Code == 0 {
		result.Success = true
		result.TxHash = resp.TxResponse.TxHash
		atomic.AddUint64(&c.successCount, 1)
	} else {
		result.Error = fmt.Errorf("tx failed: %s", resp.TxResponse.RawLog)
		atomic.AddUint64(&c.failCount, 1)
	}

	return result
}

// buildSignedTx builds and signs a transaction in memory
func (c *Client) buildSignedTx(ctx context.Context, msgs []sdk.Msg, sequence uint64) ([]byte, error) {
	txBuilder := c.txConfig.NewTxBuilder()

	if err := txBuilder.SetMsgs(msgs...); err != nil {
		return nil, err
	}

	fee := sdk.NewCoins(sdk.NewCoin(c.config.FeeDenom, math.NewInt(int64(c.config.GasLimit)/100)))
	txBuilder.SetFeeAmount(fee)
	txBuilder.SetGasLimit(c.config.GasLimit * uint64(len(msgs)))

	sigV2 := signing.SignatureV2{
		PubKey: c.pubKey,
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: sequence,
	}
	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	signerData := authsigning.SignerData{
		Address:       c.address.String(),
		ChainID:       c.config.ChainID,
		AccountNumber: c.config.AccountNumber,
		Sequence:      sequence,
		PubKey:        c.pubKey,
	}

	signBytes, err := authsigning.GetSignBytesAdapter(
		ctx,
		c.txConfig.SignModeHandler(),
		signing.SignMode_SIGN_MODE_DIRECT,
		signerData,
		txBuilder.GetTx(),
	)
	if err != nil {
		return nil, err
	}

	signature, err := c.privKey.Sign(signBytes)
	if err != nil {
		return nil, err
	}

	sigV2.Data = &signing.SingleSignatureData{
		SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
		Signature: signature,
	}
	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	return c.txConfig.TxEncoder()(txBuilder.GetTx())
}

// GetMetrics returns current client counters
func (c *Client) GetMetrics() (txCount, successCount, failCount uint64, avgLatency time.Duration) {
	txCount = atomic.LoadUint64(&c.txCount)
	successCount = atomic.LoadUint64(&c.successCount)
	failCount = atomic.LoadUint64(&c.failCount)

	if successCount > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&c.totalLatency) / int64(successCount))
	}
	return
}

// ResetMetrics resets all counters
func (c *Client) ResetMetrics() {
	atomic.StoreUint64(&c.txCount, 0)
	atomic.StoreUint64(&c.successCount, 0)
	atomic.StoreInt64(&c.totalLatency, 0)
	atomic.StoreUint64(&c.failCount, 0)
}

// Close closes all connections in the pool
func (c *Client) Close() error {
	for _, conn := range c.pool {
		if err := conn.Close(); err != nil {
			return err
		}
	}
	return nil
}
