package keeper

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-farm/x/farm/types"
)

// Deterministic test accounts
var (
	creatorAddr  = testAddr(0x01)
	aliceAddr    = testAddr(0x02)
	bobAddr      = testAddr(0x03)
	emergencyAdm = testAddr(0x0e)
	treasuryAdm  = testAddr(0x0f)
)

func testAddr(b byte) string {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20)).String()
}

// mockBankKeeper tracks escrow flows per denom instead of real balances
type mockBankKeeper struct {
	pulledIn map[string]math.Int
	paidOut  map[string]math.Int
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{
		pulledIn: make(map[string]math.Int),
		paidOut:  make(map[string]math.Int),
	}
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	for _, coin := range amt {
		prev, ok := m.pulledIn[coin.Denom]
		if !ok {
			prev = math.ZeroInt()
		}
		m.pulledIn[coin.Denom] = prev.Add(coin.Amount)
	}
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		prev, ok := m.paidOut[coin.Denom]
		if !ok {
			prev = math.ZeroInt()
		}
		m.paidOut[coin.Denom] = prev.Add(coin.Amount)
	}
	return nil
}

func (m *mockBankKeeper) paid(denom string) math.Int {
	if v, ok := m.paidOut[denom]; ok {
		return v
	}
	return math.ZeroInt()
}

func (m *mockBankKeeper) pulled(denom string) math.Int {
	if v, ok := m.pulledIn[denom]; ok {
		return v
	}
	return math.ZeroInt()
}

// mockNFTKeeper keeps an in-memory ownership table
type mockNFTKeeper struct {
	owners map[string]sdk.AccAddress
}

func newMockNFTKeeper() *mockNFTKeeper {
	return &mockNFTKeeper{owners: make(map[string]sdk.AccAddress)}
}

func nftKey(classID, nftID string) string {
	return classID + "/" + nftID
}

func (m *mockNFTKeeper) mint(classID, nftID, owner string) {
	addr, _ := sdk.AccAddressFromBech32(owner)
	m.owners[nftKey(classID, nftID)] = addr
}

func (m *mockNFTKeeper) GetOwner(ctx context.Context, classID, nftID string) sdk.AccAddress {
	return m.owners[nftKey(classID, nftID)]
}

func (m *mockNFTKeeper) Transfer(ctx context.Context, classID, nftID string, receiver sdk.AccAddress) error {
	m.owners[nftKey(classID, nftID)] = receiver
	return nil
}

// mockGuard is a switchable process-wide emergency flag
type mockGuard struct {
	active bool
}

func (g *mockGuard) GlobalEmergencyActive(ctx sdk.Context) bool {
	return g.active
}

// testFixture bundles the keeper with its mocked collaborators
type testFixture struct {
	keeper *Keeper
	bank   *mockBankKeeper
	nft    *mockNFTKeeper
	guard  *mockGuard
}

// setupKeeper creates a test keeper with an in-memory store. The returned
// context starts at unix second 1000.
func setupKeeper(tb testing.TB) (*testFixture, sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	ctx = ctx.WithBlockTime(time.Unix(1000, 0))

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	f := &testFixture{
		bank:  newMockBankKeeper(),
		nft:   newMockNFTKeeper(),
		guard: &mockGuard{},
	}
	f.keeper = NewKeeper(cdc, storeKey, f.bank, f.nft, f.guard, treasuryAdm, log.NewNopLogger())

	f.keeper.SetParams(ctx, types.Params{
		EmergencyAdmin: emergencyAdm,
		TreasuryAdmin:  treasuryAdm,
	})

	return f, ctx
}

// at returns the context shifted to the given unix second
func at(ctx sdk.Context, unixSec uint64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(int64(unixSec), 0))
}

// createTestPool creates the standard fixture pool: 1,000,000 uyield over
// 10,000 seconds (rate 100/sec), staked asset ualpha, both 6 decimals.
func createTestPool(tb testing.TB, f *testFixture, ctx sdk.Context, boostCfg *types.BoostConfig) *types.Pool {
	tb.Helper()

	pool, err := f.keeper.CreatePool(
		ctx,
		creatorAddr, "ualpha", "uyield",
		6, 6,
		math.NewInt(1_000_000), 10_000,
		boostCfg,
	)
	if err != nil {
		tb.Fatalf("failed to create pool: %v", err)
	}
	return pool
}
