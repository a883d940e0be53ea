package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// Store key prefixes
var (
	PoolKeyPrefix  = []byte{0x01}
	StakeKeyPrefix = []byte{0x02}
	ParamsKey      = []byte{0x03}
)

// BankKeeper defines the expected custody interface of the bank module.
// The farm module account is the escrow for staked principal and reward
// liquidity; only keeper code can move it.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// NFTKeeper defines the expected NFT custody interface for boost
// collateral.
type NFTKeeper interface {
	GetOwner(ctx context.Context, classID, nftID string) sdk.AccAddress
	Transfer(ctx context.Context, classID, nftID string, receiver sdk.AccAddress) error
}

// EmergencyGuard supplies the process-wide emergency switch. The keeper
// reads it on every gate check but never writes it.
type EmergencyGuard interface {
	GlobalEmergencyActive(ctx sdk.Context) bool
}

// Keeper manages the farm module state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	nftKeeper  NFTKeeper
	guard      EmergencyGuard
	logger     log.Logger
	authority  string
	moduleAddr sdk.AccAddress
}

// NewKeeper creates a new farm keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	nftKeeper NFTKeeper,
	guard EmergencyGuard,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		nftKeeper:  nftKeeper,
		guard:      guard,
		authority:  authority,
		logger:     logger.With("module", "x/"+types.ModuleName),
		moduleAddr: authtypes.NewModuleAddress(types.ModuleName),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Pool Storage ============

func poolKey(poolID string) []byte {
	return append(PoolKeyPrefix, []byte(poolID)...)
}

// SetPool saves a pool to the store
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(poolKey(pool.PoolID), bz)
}

// GetPool retrieves a pool from the store
func (k *Keeper) GetPool(ctx sdk.Context, poolID string) *types.Pool {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(poolID))
	if bz == nil {
		return nil
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// HasPool reports whether a pool exists for the id
func (k *Keeper) HasPool(ctx sdk.Context, poolID string) bool {
	return k.GetStore(ctx).Has(poolKey(poolID))
}

// GetAllPools returns all pools
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// ============ Stake Storage ============

// stakeKey generates the key for one staker's position in one pool.
// Denoms and bech32 owners never contain "|", so the segments of
// poolID + "|" + owner decompose unambiguously.
func stakeKey(poolID, owner string) []byte {
	return append(StakeKeyPrefix, []byte(poolID+"|"+owner)...)
}

func poolStakesPrefix(poolID string) []byte {
	return append(StakeKeyPrefix, []byte(poolID+"|")...)
}

// SetStake saves a user stake to the store
func (k *Keeper) SetStake(ctx sdk.Context, stake *types.UserStake) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(stake)
	store.Set(stakeKey(stake.PoolID, stake.Owner), bz)
}

// GetStake retrieves a user stake, nil if the user never staked
func (k *Keeper) GetStake(ctx sdk.Context, poolID, owner string) *types.UserStake {
	store := k.GetStore(ctx)
	bz := store.Get(stakeKey(poolID, owner))
	if bz == nil {
		return nil
	}
	var stake types.UserStake
	if err := json.Unmarshal(bz, &stake); err != nil {
		return nil
	}
	return &stake
}

// DeleteStake removes a user stake record entirely
func (k *Keeper) DeleteStake(ctx sdk.Context, poolID, owner string) {
	k.GetStore(ctx).Delete(stakeKey(poolID, owner))
}

// GetPoolStakes returns all stake records in a pool
func (k *Keeper) GetPoolStakes(ctx sdk.Context, poolID string) []*types.UserStake {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, poolStakesPrefix(poolID))
	defer iterator.Close()

	var stakes []*types.UserStake
	for ; iterator.Valid(); iterator.Next() {
		var stake types.UserStake
		if err := json.Unmarshal(iterator.Value(), &stake); err != nil {
			continue
		}
		stakes = append(stakes, &stake)
	}
	return stakes
}

// ============ Params ============

// SetParams saves module params
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(params)
	store.Set(ParamsKey, bz)
}

// GetParams returns module params, defaults if unset
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	store := k.GetStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// InitDefaultParams writes default params if none are stored yet
func (k *Keeper) InitDefaultParams(ctx sdk.Context) {
	if !k.GetStore(ctx).Has(ParamsKey) {
		k.SetParams(ctx, types.DefaultParams())
		k.logger.Info("Initialized farm params")
	}
}
